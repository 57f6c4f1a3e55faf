package cmd

import (
	"github.com/abhisek/wordquiz/internal/app"
	"github.com/abhisek/wordquiz/internal/screens/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past quiz runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closeLog, err := app.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		defer func() { _ = closeLog() }()

		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		return app.Run(app.Options{
			Initial: history.New(s.EventRepo()),
			Logger:  logger,
		})
	},
}
