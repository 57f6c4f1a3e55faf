package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/wordquiz/internal/mode"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer statistics from the local journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		modes, err := s.EventRepo().ModeSummaries(ctx)
		if err != nil {
			return fmt.Errorf("query mode summaries: %w", err)
		}
		if len(modes) == 0 {
			fmt.Println("No answers recorded yet.")
			return nil
		}

		fmt.Println("Answers by Mode")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-16s  %8s  %8s  %8s\n", "Mode", "Answers", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 48))

		var totalAttempts, totalCorrect int
		for _, m := range modes {
			fmt.Printf("%-16s  %8d  %8d  %7.0f%%\n",
				modeLabel(m.Mode), m.Attempts, m.Correct, percent(m.Correct, m.Attempts))
			totalAttempts += m.Attempts
			totalCorrect += m.Correct
		}
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-16s  %8d  %8d  %7.0f%%\n",
			"TOTAL", totalAttempts, totalCorrect, percent(totalCorrect, totalAttempts))

		missed, err := s.EventRepo().MostMissed(ctx, limit)
		if err != nil {
			return fmt.Errorf("query most missed: %w", err)
		}
		if len(missed) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println("Most Missed Words")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-20s  %6s  %8s  %10s\n", "Word", "Missed", "Answers", "Last seen")
		fmt.Println(strings.Repeat("─", 48))
		for _, w := range missed {
			fmt.Printf("%-20s  %6d  %8d  %10s\n",
				truncate(w.Word, 20), w.Misses, w.Attempts, w.LastSeen.Local().Format("2006-01-02"))
		}
		return nil
	},
}

func modeLabel(wire string) string {
	if spec, ok := mode.Lookup(mode.Mode(wire)); ok {
		return spec.Label
	}
	return wire
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of most missed words to show")
}
