package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/wordquiz/internal/api"
	"github.com/abhisek/wordquiz/internal/app"
	"github.com/abhisek/wordquiz/internal/audio"
	"github.com/abhisek/wordquiz/internal/config"
	"github.com/abhisek/wordquiz/internal/llm"
	"github.com/abhisek/wordquiz/internal/mode"
	"github.com/abhisek/wordquiz/internal/practice"
	"github.com/abhisek/wordquiz/internal/screen"
	"github.com/abhisek/wordquiz/internal/screens/home"
	"github.com/abhisek/wordquiz/internal/screens/quiz"
	"github.com/abhisek/wordquiz/internal/selfupdate"
	"github.com/abhisek/wordquiz/internal/session"
	"github.com/abhisek/wordquiz/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "", "Start directly in a mode (words, ed, yb, numbers, ai)")
	cmd.Flags().StringP("category", "c", "", "Initial category for new word groups")
}

func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if c, _ := cmd.Flags().GetString("category"); c != "" {
		cfg.Session.Category = c
	}
	var start mode.Mode
	if name, _ := cmd.Flags().GetString("mode"); name != "" {
		if start, err = parseModeFlag(name); err != nil {
			return err
		}
	}

	logger, closeLog, err := app.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	client, err := newClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// The journal is optional; the quiz runs without it.
	var journal store.EventRepo
	if !cfg.Journal.Disabled {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		journal = st.EventRepo()
	}

	coach, err := newCoach(ctx, cfg, client, journal)
	if err != nil {
		return err
	}

	player, err := newPlayer(cfg, client, logger)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger.Info("starting wordquiz", "run_id", runID, "server", cfg.Server.BaseURL, "version", version)

	newQuiz := func(m mode.Mode) screen.Screen {
		return quiz.New(quiz.Deps{
			Backend: client,
			Editor:  client,
			Player:  player,
			Coach:   coach,
			Journal: journal,
			RunID:   runID,
			Options: session.Options{
				AutoAdvance: max(cfg.Session.AutoAdvance, 0),
				Category:    cfg.Session.Category,
				Logger:      logger,
			},
			Mode:    m,
			Timeout: cfg.Server.Timeout,
			Logger:  logger,
		})
	}

	var initial screen.Screen
	if start != "" {
		initial = newQuiz(start)
	} else {
		initial = home.New(newQuiz, journal)
	}

	checker := selfupdate.NewChecker(selfupdate.WithTimeout(5 * time.Second))
	return app.Run(app.Options{
		Initial: initial,
		CheckUpdate: func(ctx context.Context) (string, error) {
			return checker.Latest(ctx, version)
		},
		Logger: logger,
	})
}

// parseModeFlag accepts a wire name or a mode label, case-insensitively.
func parseModeFlag(name string) (mode.Mode, error) {
	for _, m := range mode.All() {
		if strings.EqualFold(name, string(m)) || strings.EqualFold(name, m.Label()) {
			return m, nil
		}
	}
	names := make([]string, 0, len(mode.All()))
	for _, m := range mode.All() {
		names = append(names, strings.ToLower(string(m)))
	}
	return "", fmt.Errorf("unknown mode %q (want one of %s)", name, strings.Join(names, ", "))
}

// newCoach selects the AI practice coach. The LLM coach logs its requests
// to the journal when one is open.
func newCoach(ctx context.Context, cfg *config.Config, client *api.Client, journal store.EventRepo) (practice.Coach, error) {
	if cfg.Practice.Coach != config.CoachLLM {
		return practice.NewServerCoach(client), nil
	}
	llmCfg, ok := llm.Resolve()
	if !ok {
		return nil, errors.New("practice coach is llm but no LLM provider is configured")
	}
	var reqLog llm.RequestLog
	if journal != nil {
		reqLog = journal
	}
	provider, err := llm.NewProvider(ctx, llmCfg, reqLog)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return practice.NewLLMCoach(provider, practice.DefaultConfig()), nil
}

// newPlayer builds the pronunciation player. Without a usable command,
// pronunciation falls back to text.
func newPlayer(cfg *config.Config, client *api.Client, logger *slog.Logger) (audio.Player, error) {
	if cfg.Audio.Mute {
		return audio.TextOnly{}, nil
	}
	command := cfg.Audio.Command
	if command == "" {
		command = audio.DefaultCommand()
	}
	if command == "" {
		logger.Warn("no audio player found, pronunciation is text only")
		return audio.TextOnly{}, nil
	}

	dir, err := cfg.Audio.AudioCacheDir()
	if err != nil {
		return nil, err
	}
	cache, err := audio.NewCache(dir)
	if err != nil {
		return nil, err
	}
	return audio.NewCommandPlayer(client, cache, command, audio.WithLogger(logger)), nil
}
