package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lotomania/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP tool server over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		server, err := mcp.NewServer(a.assistant, cfg.EnableMermaidCharts)
		if err != nil {
			return err
		}
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
