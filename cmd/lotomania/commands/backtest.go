package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lotomania/internal/generator"
	"lotomania/internal/simulation"
)

var backtestOpts struct {
	checkpoints int
	games       int
	fixed       int
	strategy    string
	seed        uint64
	trials      int
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay recent contests and compare generated games with random ones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := generator.ParseStrategy(backtestOpts.strategy)
		if err != nil {
			return err
		}
		wf := simulation.DefaultWalkForwardConfig()
		wf.Checkpoints = backtestOpts.checkpoints
		wf.Trials = backtestOpts.trials
		wf.Game.NumGames = backtestOpts.games
		wf.Game.FixedNumbers = backtestOpts.fixed
		wf.Game.Strategy = st
		wf.Game.Seed = backtestOpts.seed

		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.assistant.Backtest(cmd.Context(), wf)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, cp := range res.Checkpoints {
			fmt.Fprintf(w, "Concurso %d (ref. %d): melhor %2d, média %5.2f, premiados %d\n",
				cp.Contest, cp.Reference, cp.BestHits, cp.MeanHits, cp.Paying)
		}
		fmt.Fprintf(w, "\nGerados:   média %.2f  P50 %d  P95 %d  premiados %.1f%%\n",
			res.Generated.Mean, res.Generated.P50, res.Generated.P95, res.Generated.PayingShare*100)
		fmt.Fprintf(w, "Aleatórios: média %.2f  P50 %d  P95 %d  premiados %.1f%%\n",
			res.Baseline.Mean, res.Baseline.P50, res.Baseline.P95, res.Baseline.PayingShare*100)
		fmt.Fprintln(w, res.ValidationMessage)
		return nil
	},
}

func init() {
	def := simulation.DefaultWalkForwardConfig()
	f := backtestCmd.Flags()
	f.IntVar(&backtestOpts.checkpoints, "contests", def.Checkpoints, "recent contests to replay")
	f.IntVarP(&backtestOpts.games, "games", "n", def.Game.NumGames, "games per contest")
	f.IntVarP(&backtestOpts.fixed, "fixed", "f", 0, "fixed numbers per game (0-15)")
	f.StringVarP(&backtestOpts.strategy, "strategy", "s", string(generator.StrategyBalanced), "closing strategy")
	f.Uint64Var(&backtestOpts.seed, "seed", 0, "random seed (0 = random)")
	f.IntVar(&backtestOpts.trials, "trials", def.Trials, "random-game baseline trials")
	rootCmd.AddCommand(backtestCmd)
}
