package main

import (
	"fmt"
	"time"

	"github.com/lox/mahjong-cli/internal/fileutil"
	"github.com/lox/mahjong-cli/internal/sim"
)

// SimCmd plays AI-only games as fast as possible and prints the aggregate
// outcomes. Useful for checking the rules engine and the seat balance.
type SimCmd struct {
	Games      int    `kong:"default='1000',help='Number of games to play'"`
	Workers    int    `kong:"default='0',help='Worker count (0 for GOMAXPROCS)'"`
	Seed       int64  `kong:"help='Base seed for reproducible batches (0 for random)'"`
	WriteStats string `kong:"help='Write the summary to a file when the batch completes'"`
}

func (c *SimCmd) Run() error {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	fmt.Printf("Simulating %d games (seed: %d)\n\n", c.Games, c.Seed)

	report, err := sim.Run(sim.Options{
		Games:   c.Games,
		Workers: c.Workers,
		Seed:    c.Seed,
	})
	if err != nil {
		return err
	}

	fmt.Print(report.Summary())

	if c.WriteStats != "" {
		header := fmt.Sprintf("Simulated %d games (seed: %d)\n\n", c.Games, c.Seed)
		if err := fileutil.WriteFileAtomic(c.WriteStats, []byte(header+report.Summary()), 0644); err != nil {
			return fmt.Errorf("failed to write stats file: %w", err)
		}
		fmt.Printf("\nStats written to %s\n", c.WriteStats)
	}
	return nil
}
