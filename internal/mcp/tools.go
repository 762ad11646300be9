package mcp

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"lotomania/internal/generator"
)

// GenerateInput is the argument object of generate_games.
type GenerateInput struct {
	NumGames         int    `json:"num_games,omitempty" jsonschema:"Number of 50-number games to build (default 20, max 500)"`
	FixedNumbers     int    `json:"fixed_numbers,omitempty" jsonschema:"How many numbers of the reference draw every game must contain (0-15)"`
	MirrorBet        bool   `json:"mirror_bet,omitempty" jsonschema:"Append the mirror (n -> 99-n) of each game right after it"`
	Strategy         string `json:"strategy,omitempty" jsonschema:"Closing strategy"`
	ReferenceContest int    `json:"reference_contest,omitempty" jsonschema:"Contest whose draw anchors the batch (0 = latest)"`
	TargetContest    int    `json:"target_contest,omitempty" jsonschema:"Contest the games are meant for (informational)"`
	Seed             uint64 `json:"seed,omitempty" jsonschema:"Random seed for a reproducible batch (0 = random)"`
}

// GenerateOutput is the structured result of generate_games.
type GenerateOutput struct {
	ID               string     `json:"id"`
	ReferenceContest int        `json:"reference_contest"`
	TargetContest    int        `json:"target_contest,omitempty"`
	Strategy         string     `json:"strategy"`
	Mirrored         bool       `json:"mirrored"`
	Fixed            []string   `json:"fixed"`
	KeyNumbers       []string   `json:"key_numbers"`
	Games            [][]string `json:"games"`
	Fitness          []float64  `json:"fitness"`
	Seed             uint64     `json:"seed"`
	Analysis         string     `json:"analysis"`
	Export           string     `json:"export"`
}

// CheckInput is the argument object of check_games.
type CheckInput struct {
	Games   string `json:"games" jsonschema:"Games to check, one per line, numbers separated by commas, semicolons or spaces"`
	Contest int    `json:"contest,omitempty" jsonschema:"Contest to check against (0 = latest). Ignored when from/to are set"`
	From    int    `json:"from,omitempty" jsonschema:"First contest of a range check"`
	To      int    `json:"to,omitempty" jsonschema:"Last contest of a range check"`
}

// GameOutcome is one checked game.
type GameOutcome struct {
	Index      int      `json:"index"`
	Hits       int      `json:"hits"`
	HitNumbers []string `json:"hit_numbers"`
	Prize      string   `json:"prize"`
}

// SummaryOutput totals a set of checked games.
type SummaryOutput struct {
	Games              int            `json:"games"`
	Won                string         `json:"won"`
	Spent              string         `json:"spent"`
	Net                string         `json:"net"`
	PrizeDataAvailable bool           `json:"prize_data_available"`
	Winners            int            `json:"winners"`
	BestHits           int            `json:"best_hits"`
	ByHits             map[string]int `json:"by_hits"`
}

// ContestOutcome is the check of every game against one contest.
type ContestOutcome struct {
	Contest int           `json:"contest"`
	Date    string        `json:"date,omitempty"`
	Partial bool          `json:"partial,omitempty"`
	Games   []GameOutcome `json:"games"`
	Summary SummaryOutput `json:"summary"`
}

// CheckOutput is the structured result of check_games.
type CheckOutput struct {
	Contests []ContestOutcome `json:"contests"`
	Missing  []int            `json:"missing"`
	Total    SummaryOutput    `json:"total"`
	Chart    string           `json:"chart,omitempty"`
}

// ResultInput is the argument object of get_result.
type ResultInput struct {
	Contest int `json:"contest,omitempty" jsonschema:"Contest number (0 = latest)"`
}

// PrizeOutput is one prize tier of a draw.
type PrizeOutput struct {
	Hits    int    `json:"hits"`
	Winners int    `json:"winners"`
	Prize   string `json:"prize"`
}

// ResultOutput is the structured result of get_result.
type ResultOutput struct {
	Contest     int           `json:"contest"`
	Date        string        `json:"date,omitempty"`
	Numbers     []string      `json:"numbers"`
	NextJackpot string        `json:"next_jackpot,omitempty"`
	Prizes      []PrizeOutput `json:"prizes"`
	Partial     bool          `json:"partial,omitempty"`
}

// AnalyzeInput is the argument object of analyze_frequency.
type AnalyzeInput struct {
	Window int `json:"window,omitempty" jsonschema:"Number of most recent draws to analyse (0 = whole history)"`
}

// AnalyzeOutput is the structured result of analyze_frequency.
type AnalyzeOutput struct {
	Draws       int      `json:"draws"`
	MeanCount   float64  `json:"mean_count"`
	MedianCount float64  `json:"median_count"`
	StdDev      float64  `json:"std_dev"`
	Hot         []string `json:"hot"`
	Warm        []string `json:"warm"`
	Cold        []string `json:"cold"`
	KeyNumbers  []string `json:"key_numbers"`
	Chart       string   `json:"chart,omitempty"`
}

// BacktestInput is the argument object of backtest_strategy.
type BacktestInput struct {
	Strategy     string `json:"strategy,omitempty" jsonschema:"Closing strategy to replay"`
	Checkpoints  int    `json:"checkpoints,omitempty" jsonschema:"Number of recent contests to replay (default 10)"`
	NumGames     int    `json:"num_games,omitempty" jsonschema:"Games generated per contest (default 5)"`
	FixedNumbers int    `json:"fixed_numbers,omitempty" jsonschema:"Fixed numbers per game (0-15)"`
	Seed         uint64 `json:"seed,omitempty" jsonschema:"Random seed (0 = random)"`
}

func (s *Server) registerTools() error {
	generateSchema, err := jsonschema.For[GenerateInput](nil)
	if err != nil {
		return fmt.Errorf("generate_games schema: %w", err)
	}
	strategy := generateSchema.Properties["strategy"]
	for _, name := range generator.StrategyNames() {
		strategy.Enum = append(strategy.Enum, name)
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "generate_games",
		Description: "Generate Lotomania games of 50 numbers (00-99) anchored on a reference draw. " +
			"Games are built from the frequency profile of past draws (hot/warm/cold tiers) and refined by an evolutionary search. " +
			"Strategies: 'balanced' favours consistency, 'high-tier' leans harder on hot and cold numbers, 'max-tier' concentrates on the hottest numbers. " +
			"Guidance: Present the 'analysis' text to the user as is. Lottery draws are random; NEVER claim these games raise the odds of winning.",
		InputSchema: generateSchema,
	}, s.handleGenerate)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "check_games",
		Description: "Check games against a drawn contest, or against every contest of a range, and report hits and prizes. " +
			"Lotomania pays 20, 19, 18, 17, 16, 15 and 0 hits. " +
			"Guidance: When 'prize_data_available' is false, say the prize amounts are unavailable instead of reporting zero.",
	}, s.handleCheck)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_result",
		Description: "Get the official result of a Lotomania contest: the 20 drawn numbers, prize tiers and the next jackpot estimate.",
	}, s.handleResult)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "analyze_frequency",
		Description: "Analyse how often each number was drawn and split the universe into hot, warm and cold tiers. " +
			"Key numbers are those that repeated most in the last few draws. " +
			"Guidance: Frequencies describe the past only; do not present them as predictions.",
	}, s.handleAnalyze)

	backtestSchema, err := jsonschema.For[BacktestInput](nil)
	if err != nil {
		return fmt.Errorf("backtest_strategy schema: %w", err)
	}
	for _, name := range generator.StrategyNames() {
		backtestSchema.Properties["strategy"].Enum = append(backtestSchema.Properties["strategy"].Enum, name)
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "backtest_strategy",
		Description: "Replay recent contests: for each one, generate games using only the draws before it, check them against the real draw " +
			"and compare the hit distribution with uniformly random games. " +
			"Guidance: Report 'validation_message' verbatim. Agreement in the past does not make future draws any less random.",
		InputSchema: backtestSchema,
	}, s.handleBacktest)

	return nil
}
