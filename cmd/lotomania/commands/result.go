package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var resultCmd = &cobra.Command{
	Use:   "result [contest]",
	Short: "Show the result of a contest (latest when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contest := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid contest %q", args[0])
			}
			contest = n
		}

		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.assistant.Result(cmd.Context(), contest)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, d.Label())
		fmt.Fprintf(w, "Dezenas: %s\n", strings.Join(d.Formatted(), " "))
		for _, p := range d.Prizes {
			fmt.Fprintf(w, "  %2d acertos: %6d ganhadores  %s\n", p.Hits, p.Winners, p.Prize)
		}
		if d.NextJackpot != "" {
			fmt.Fprintf(w, "Estimativa próximo concurso: %s\n", d.NextJackpot)
		}
		if d.Partial {
			fmt.Fprintln(w, "Fonte indisponível: resultado do histórico local, sem premiação.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resultCmd)
}
