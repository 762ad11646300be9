package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"lotomania/internal/history"
)

func main() {
	out := flag.String("out", "./.data/history.jsonl", "History file to write (JSONL, appended)")
	count := flag.Int("count", 200, "Number of draws to generate")
	seed := flag.Uint64("seed", 1, "Random seed")
	flag.Parse()

	fmt.Printf("Generating %d synthetic draws (seed %d) into %s...\n", *count, *seed, *out)

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		fmt.Printf("Failed to create output directory: %v\n", err)
		os.Exit(1)
	}
	store, err := history.OpenFile(*out)
	if err != nil {
		fmt.Printf("Failed to open history: %v\n", err)
		os.Exit(1)
	}
	added, err := store.Append(context.Background(), history.Synthetic(*count, *seed)...)
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. %d new draws.\n", added)
}
