package simulation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lotomania/internal/generator"
	"lotomania/internal/history"
)

func newTestGenerator(t *testing.T) *generator.Generator {
	t.Helper()
	h := generator.DefaultHeuristics()
	h.Population = 8
	h.Generations = 1
	g, err := generator.New(h, generator.WithSeed(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestWalkForwardEngine_Execute(t *testing.T) {
	draws := history.Synthetic(20, 4)
	engine := NewWalkForwardEngine(newTestGenerator(t), draws)

	cfg := DefaultWalkForwardConfig()
	cfg.Checkpoints = 3
	cfg.Game.NumGames = 2
	cfg.Game.Seed = 99
	cfg.Trials = 200

	res, err := engine.Execute(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(res.Checkpoints) != 3 {
		t.Fatalf("Expected 3 checkpoints, got %d", len(res.Checkpoints))
	}
	// Oldest checkpoint first, each generated from the contest right before it.
	for i, cp := range res.Checkpoints {
		if want := 18 + i; cp.Contest != want {
			t.Errorf("Checkpoint %d: expected contest %d, got %d", i, want, cp.Contest)
		}
		if cp.Reference != cp.Contest-1 {
			t.Errorf("Checkpoint %d: expected reference %d, got %d", i, cp.Contest-1, cp.Reference)
		}
		if cp.BestHits < 0 || cp.BestHits > 20 {
			t.Errorf("Checkpoint %d: best hits %d out of range", i, cp.BestHits)
		}
	}
	if res.Generated.Games != 6 {
		t.Errorf("Expected 6 generated games, got %d", res.Generated.Games)
	}
	if res.Baseline.Games != 200 {
		t.Errorf("Expected 200 baseline trials, got %d", res.Baseline.Games)
	}
	if res.Strategy != "balanced" {
		t.Errorf("Expected balanced strategy, got %s", res.Strategy)
	}
	if !strings.Contains(res.ValidationMessage, "3 contests, 6 games") {
		t.Errorf("Unexpected validation message: %s", res.ValidationMessage)
	}
}

func TestWalkForwardEngine_Reproducible(t *testing.T) {
	draws := history.Synthetic(15, 2)
	cfg := DefaultWalkForwardConfig()
	cfg.Checkpoints = 2
	cfg.Game.NumGames = 1
	cfg.Game.Seed = 5
	cfg.Trials = 50

	a, err := NewWalkForwardEngine(newTestGenerator(t), draws).Execute(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewWalkForwardEngine(newTestGenerator(t), draws).Execute(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Checkpoints {
		if a.Checkpoints[i] != b.Checkpoints[i] {
			t.Errorf("Checkpoint %d differs: %+v vs %+v", i, a.Checkpoints[i], b.Checkpoints[i])
		}
	}
}

func TestWalkForwardEngine_InsufficientHistory(t *testing.T) {
	engine := NewWalkForwardEngine(newTestGenerator(t), history.Synthetic(MinCorpus, 1))
	_, err := engine.Execute(context.Background(), DefaultWalkForwardConfig())
	if !errors.Is(err, ErrInsufficientHistory) {
		t.Errorf("Expected ErrInsufficientHistory, got %v", err)
	}
}

func TestWalkForwardEngine_CapsCheckpoints(t *testing.T) {
	engine := NewWalkForwardEngine(newTestGenerator(t), history.Synthetic(MinCorpus+2, 1))
	cfg := DefaultWalkForwardConfig()
	cfg.Checkpoints = 50
	cfg.Game.NumGames = 1
	cfg.Trials = 10

	res, err := engine.Execute(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Checkpoints) != 2 {
		t.Errorf("Expected 2 checkpoints, got %d", len(res.Checkpoints))
	}
}

func TestWalkForwardEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	engine := NewWalkForwardEngine(newTestGenerator(t), history.Synthetic(20, 1))
	if _, err := engine.Execute(ctx, DefaultWalkForwardConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
