package commands

import (
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lotomania/internal/config"
	"lotomania/internal/logging"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "lotomania",
	Short: "Lotomania assistant: game generation, result checking and frequency analysis",
	Long: `Builds Lotomania games of 50 numbers from the frequency profile of past draws,
checks games against official results and exposes the same operations over MCP and HTTP.
Draws are random; the generated games carry no predictive claim.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logFile, err = logging.Init(logging.Options{Verbose: verbose})
		if err != nil {
			return err
		}

		cfg, err = config.Load()
		if err != nil {
			return err
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("Lotomania starting")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			_ = logFile.Close()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Version = Version
}
