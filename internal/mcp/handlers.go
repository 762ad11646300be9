package mcp

import (
	"context"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"lotomania/internal/checker"
	"lotomania/internal/generator"
	"lotomania/internal/simulation"
	"lotomania/internal/visuals"
)

func (s *Server) handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, in GenerateInput) (*mcp.CallToolResult, GenerateOutput, error) {
	cfg := generator.DefaultGameConfig()
	if in.NumGames != 0 {
		cfg.NumGames = in.NumGames
	}
	cfg.FixedNumbers = in.FixedNumbers
	cfg.MirrorBet = in.MirrorBet
	cfg.TargetContest = in.TargetContest
	cfg.Seed = in.Seed
	if in.Strategy != "" {
		st, err := generator.ParseStrategy(in.Strategy)
		if err != nil {
			return nil, GenerateOutput{}, err
		}
		cfg.Strategy = st
	}

	log.Debug().Int("games", cfg.NumGames).Str("strategy", string(cfg.Strategy)).Msg("generate_games called")
	b, err := s.assistant.Generate(ctx, cfg, in.ReferenceContest)
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	return nil, GenerateOutput{
		ID:               b.ID,
		ReferenceContest: b.Reference,
		TargetContest:    b.Target,
		Strategy:         string(b.Strategy),
		Mirrored:         b.Mirrored,
		Fixed:            nonNil(b.Fixed),
		KeyNumbers:       nonNil(b.KeyNumbers),
		Games:            b.Games,
		Fitness:          b.Fitness,
		Seed:             b.Seed,
		Analysis:         b.Analysis,
		Export:           checker.Export(b.Games),
	}, nil
}

func (s *Server) handleCheck(ctx context.Context, _ *mcp.CallToolRequest, in CheckInput) (*mcp.CallToolResult, CheckOutput, error) {
	var (
		out   CheckOutput
		total checker.Summary
	)

	if in.From > 0 || in.To > 0 {
		to := in.To
		if to == 0 {
			to = in.From
		}
		report, err := s.assistant.CheckRange(ctx, in.Games, in.From, to)
		if err != nil {
			return nil, CheckOutput{}, err
		}
		for _, c := range report.Contests {
			out.Contests = append(out.Contests, contestOutcome(c))
		}
		out.Missing = report.Missing
		total = report.Total
	} else {
		report, err := s.assistant.Check(ctx, in.Games, in.Contest)
		if err != nil {
			return nil, CheckOutput{}, err
		}
		out.Contests = []ContestOutcome{contestOutcome(*report)}
		total = report.Summary
	}
	out.Total = summaryOutput(total)

	if out.Contests == nil {
		out.Contests = []ContestOutcome{}
	}
	if out.Missing == nil {
		out.Missing = []int{}
	}
	if s.charts {
		out.Chart = visuals.GenerateHitChart(total)
	}
	return nil, out, nil
}

func (s *Server) handleResult(ctx context.Context, _ *mcp.CallToolRequest, in ResultInput) (*mcp.CallToolResult, ResultOutput, error) {
	d, err := s.assistant.Result(ctx, in.Contest)
	if err != nil {
		return nil, ResultOutput{}, err
	}
	out := ResultOutput{
		Contest:     d.Contest,
		Date:        d.Date,
		Numbers:     d.Formatted(),
		NextJackpot: d.NextJackpot,
		Prizes:      make([]PrizeOutput, 0, len(d.Prizes)),
		Partial:     d.Partial,
	}
	for _, p := range d.Prizes {
		out.Prizes = append(out.Prizes, PrizeOutput{Hits: p.Hits, Winners: p.Winners, Prize: p.Prize})
	}
	return nil, out, nil
}

func (s *Server) handleAnalyze(ctx context.Context, _ *mcp.CallToolRequest, in AnalyzeInput) (*mcp.CallToolResult, AnalyzeOutput, error) {
	p, err := s.assistant.Analyze(ctx, in.Window)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}
	sum := p.Summarize()
	out := AnalyzeOutput{
		Draws:       sum.Draws,
		MeanCount:   sum.MeanCount,
		MedianCount: sum.MedianCount,
		StdDev:      sum.StdDev,
		Hot:         nonNil(sum.Hot),
		Warm:        nonNil(sum.Warm),
		Cold:        nonNil(sum.Cold),
		KeyNumbers:  nonNil(sum.KeyNumbers),
	}
	if s.charts {
		out.Chart = visuals.GenerateFrequencyChart(p)
	}
	return nil, out, nil
}

func (s *Server) handleBacktest(ctx context.Context, _ *mcp.CallToolRequest, in BacktestInput) (*mcp.CallToolResult, simulation.WalkForwardResult, error) {
	cfg := simulation.DefaultWalkForwardConfig()
	if in.Checkpoints > 0 {
		cfg.Checkpoints = in.Checkpoints
	}
	if in.NumGames > 0 {
		cfg.Game.NumGames = in.NumGames
	}
	cfg.Game.FixedNumbers = in.FixedNumbers
	cfg.Game.Seed = in.Seed
	if in.Strategy != "" {
		st, err := generator.ParseStrategy(in.Strategy)
		if err != nil {
			return nil, simulation.WalkForwardResult{}, err
		}
		cfg.Game.Strategy = st
	}

	res, err := s.assistant.Backtest(ctx, cfg)
	if err != nil {
		return nil, simulation.WalkForwardResult{}, err
	}
	return nil, res, nil
}

func contestOutcome(r checker.ContestReport) ContestOutcome {
	out := ContestOutcome{
		Contest: r.Contest,
		Date:    r.Date,
		Partial: r.Partial,
		Games:   make([]GameOutcome, 0, len(r.Results)),
		Summary: summaryOutput(r.Summary),
	}
	for _, g := range r.Results {
		out.Games = append(out.Games, GameOutcome{
			Index:      g.Index,
			Hits:       g.Hits,
			HitNumbers: nonNil(g.HitNumbers),
			Prize:      g.PrizeText,
		})
	}
	return out
}

func summaryOutput(s checker.Summary) SummaryOutput {
	byHits := make(map[string]int, len(s.ByHits))
	for h, n := range s.ByHits {
		byHits[strconv.Itoa(h)] = n
	}
	return SummaryOutput{
		Games:              s.Games,
		Won:                s.WonText(),
		Spent:              s.SpentText(),
		Net:                s.NetText(),
		PrizeDataAvailable: s.PrizeDataAvailable,
		Winners:            s.Winners,
		BestHits:           s.BestHits,
		ByHits:             byHits,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
