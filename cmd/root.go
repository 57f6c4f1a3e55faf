package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/wordquiz/internal/api"
	"github.com/abhisek/wordquiz/internal/config"
	"github.com/abhisek/wordquiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wordquiz",
	Short: "Vocabulary quiz for the terminal",
	Long:  "WordQuiz is a terminal vocabulary trainer backed by a word server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides WORDQUIZ_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite journal file (overrides WORDQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("server", "", "Backend base URL (overrides WORDQUIZ_SERVER_URL env var)")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if s, _ := cmd.Flags().GetString("server"); s != "" {
		cfg.Server.BaseURL = s
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Journal.Path = p
	}
	return cfg, nil
}

// resolveDBPath returns the journal path from config (which --db and
// WORDQUIZ_DB feed), then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.Journal.Path != "" {
		return cfg.Journal.Path, store.EnsureDir(cfg.Journal.Path)
	}
	return store.DefaultDBPath()
}

// openStore opens the journal database.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newClient builds the backend client and logs in when a username is
// configured.
func newClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*api.Client, error) {
	client, err := api.New(cfg.Server.BaseURL,
		api.WithTimeout(cfg.Server.Timeout),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	if cfg.Auth.Username == "" {
		return client, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Server.Timeout)
	defer cancel()
	if err := client.Login(ctx, cfg.Auth.Username, cfg.Auth.Password, true); err != nil {
		return nil, fmt.Errorf("login as %s: %w", cfg.Auth.Username, err)
	}
	return client, nil
}
