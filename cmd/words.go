package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/wordquiz/internal/api"
	"github.com/spf13/cobra"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage the word list on the server",
}

var wordsAddCmd = &cobra.Command{
	Use:   "add <word> <meaning>",
	Short: "Add a word with its meaning",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *api.Client) error {
			msg, err := c.AddWord(ctx, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return fmt.Errorf("add word: %w", err)
			}
			fmt.Println(msg)
			return nil
		})
	},
}

var wordsDeleteCmd = &cobra.Command{
	Use:   "delete <word>",
	Short: "Delete a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *api.Client) error {
			msg, err := c.DeleteWord(ctx, args[0])
			if err != nil {
				return fmt.Errorf("delete word: %w", err)
			}
			fmt.Println(msg)
			return nil
		})
	},
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all words",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		return withClient(cmd, func(ctx context.Context, c *api.Client) error {
			set, err := c.Words(ctx)
			if err != nil {
				return fmt.Errorf("list words: %w", err)
			}
			if len(set) == 0 {
				fmt.Println("No words found.")
				return nil
			}

			fmt.Printf("%-5s  %-20s  %-14s  %s\n", "#", "Word", "Category", "Meaning")
			fmt.Println(strings.Repeat("─", 80))
			shown := 0
			for i, w := range set {
				if category != "" && !strings.EqualFold(w.Category, category) {
					continue
				}
				shown++
				fmt.Printf("%-5d  %-20s  %-14s  %s\n",
					i+1, truncate(w.Word, 20), truncate(w.Category, 14), w.Meaning)
			}
			fmt.Println(strings.Repeat("─", 80))
			fmt.Printf("%d words\n", shown)
			return nil
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List word categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *api.Client) error {
			cats, err := c.Categories(ctx)
			if err != nil {
				return fmt.Errorf("list categories: %w", err)
			}
			if len(cats) == 0 {
				fmt.Println("No categories found.")
				return nil
			}
			for _, cat := range cats {
				fmt.Println(cat)
			}
			return nil
		})
	},
}

// withClient loads config, logs in and runs fn with a bounded context.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, c *api.Client) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := newClient(ctx, cfg, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Server.Timeout)
	defer cancel()
	return fn(ctx, client)
}

func init() {
	wordsListCmd.Flags().StringP("category", "c", "", "Only list words in this category")

	wordsCmd.AddCommand(wordsAddCmd)
	wordsCmd.AddCommand(wordsDeleteCmd)
	wordsCmd.AddCommand(wordsListCmd)
}
