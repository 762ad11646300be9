package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lotomania/internal/checker"
)

var checkOpts struct {
	file    string
	contest int
	from    int
	to      int
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check games against a contest or a range of contests",
	Long: `Reads games one per line (numbers separated by commas, semicolons or spaces)
from --file, or from stdin when --file is "-" or omitted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readGames(cmd, checkOpts.file)
		if err != nil {
			return err
		}

		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		w := cmd.OutOrStdout()
		if checkOpts.from > 0 || checkOpts.to > 0 {
			to := checkOpts.to
			if to == 0 {
				to = checkOpts.from
			}
			report, err := a.assistant.CheckRange(cmd.Context(), text, checkOpts.from, to)
			if err != nil {
				return err
			}
			for _, c := range report.Contests {
				printContest(w, c)
			}
			if len(report.Missing) > 0 {
				fmt.Fprintf(w, "Concursos sem resultado: %v\n", report.Missing)
			}
			fmt.Fprintf(w, "\nTotal %d-%d\n", report.From, report.To)
			printSummary(w, report.Total)
			return nil
		}

		report, err := a.assistant.Check(cmd.Context(), text, checkOpts.contest)
		if err != nil {
			return err
		}
		printContest(w, *report)
		return nil
	},
}

func readGames(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read games: %w", err)
	}
	return string(data), nil
}

func printContest(w io.Writer, c checker.ContestReport) {
	header := fmt.Sprintf("Concurso %d", c.Contest)
	if c.Date != "" {
		header += " (" + c.Date + ")"
	}
	if c.Partial {
		header += " [dados parciais]"
	}
	fmt.Fprintln(w, header)
	for _, r := range c.Results {
		fmt.Fprintf(w, "  Jogo %2d: %2d acertos  %-14s %s\n", r.Index+1, r.Hits, r.PrizeText, strings.Join(r.HitNumbers, " "))
	}
	printSummary(w, c.Summary)
}

func printSummary(w io.Writer, s checker.Summary) {
	fmt.Fprintf(w, "  Jogos: %d  Gasto: %s  Prêmios: %s  Saldo: %s  Melhor: %d acertos\n",
		s.Games, s.SpentText(), s.WonText(), s.NetText(), s.BestHits)
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkOpts.file, "file", "", "file with one game per line (\"-\" for stdin)")
	f.IntVar(&checkOpts.contest, "contest", 0, "contest to check (0 = latest)")
	f.IntVar(&checkOpts.from, "from", 0, "first contest of a range")
	f.IntVar(&checkOpts.to, "to", 0, "last contest of a range")
	rootCmd.AddCommand(checkCmd)
}
