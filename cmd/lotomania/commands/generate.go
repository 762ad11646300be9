package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lotomania/internal/checker"
	"lotomania/internal/generator"
	"lotomania/internal/visuals"
)

var generateOpts struct {
	games     int
	fixed     int
	mirror    bool
	strategy  string
	seed      uint64
	reference int
	target    int
	out       string
	report    bool
	open      bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a batch of 50-number games",
	Long: fmt.Sprintf(`Generate games anchored on a reference draw (the latest by default).
Strategies: %s.`, strings.Join(generator.StrategyNames(), ", ")),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := generator.ParseStrategy(generateOpts.strategy)
		if err != nil {
			return err
		}
		gc := generator.GameConfig{
			NumGames:      generateOpts.games,
			FixedNumbers:  generateOpts.fixed,
			MirrorBet:     generateOpts.mirror,
			Strategy:      st,
			TargetContest: generateOpts.target,
			Seed:          generateOpts.seed,
		}

		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		b, err := a.assistant.Generate(cmd.Context(), gc, generateOpts.reference)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, b.Analysis)
		fmt.Fprintln(w)
		for i, g := range b.Games {
			fmt.Fprintf(w, "Jogo %2d (%.1f): %s\n", i+1, b.Fitness[i], strings.Join(g, " "))
		}

		if generateOpts.out != "" {
			f, err := os.Create(generateOpts.out)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := checker.WriteExport(f, b.Games); err != nil {
				f.Close()
				return fmt.Errorf("write export file: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			log.Info().Str("path", generateOpts.out).Int("games", len(b.Games)).Msg("Games exported")
		}

		if generateOpts.report || generateOpts.open {
			path, err := visuals.WriteReport(filepath.Join(cfg.DataPath, "reports"), b)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "\nRelatório: %s\n", path)
			if generateOpts.open {
				if err := visuals.OpenReport(path); err != nil {
					log.Warn().Err(err).Msg("Could not open the report in a browser")
				}
			}
		}
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.IntVarP(&generateOpts.games, "games", "n", generator.DefaultNumGames, "number of games")
	f.IntVarP(&generateOpts.fixed, "fixed", "f", 0, "numbers of the reference draw kept in every game (0-15)")
	f.BoolVarP(&generateOpts.mirror, "mirror", "m", false, "append the mirror (n -> 99-n) of each game")
	f.StringVarP(&generateOpts.strategy, "strategy", "s", string(generator.StrategyBalanced), "closing strategy")
	f.Uint64Var(&generateOpts.seed, "seed", 0, "random seed for a reproducible batch (0 = LOTOMANIA_SEED or time)")
	f.IntVar(&generateOpts.reference, "reference", 0, "reference contest (0 = latest)")
	f.IntVar(&generateOpts.target, "target", 0, "contest the games are meant for")
	f.StringVarP(&generateOpts.out, "out", "o", "", "write the games to a file, one per line")
	f.BoolVar(&generateOpts.report, "report", false, "write an HTML report")
	f.BoolVar(&generateOpts.open, "open", false, "write the HTML report and open it in a browser")
	rootCmd.AddCommand(generateCmd)
}
