package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/cprcoach/internal/app"
	"github.com/abhisek/cprcoach/internal/coach"
	"github.com/abhisek/cprcoach/internal/config"
	"github.com/abhisek/cprcoach/internal/llm"
	"github.com/abhisek/cprcoach/internal/progress"
	"github.com/abhisek/cprcoach/internal/store"
)

// runApp resolves configuration, wires the optional journal and coach, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := config.NewLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	ps := progress.NewStore(
		progress.WithSettings(cfg.Settings),
		progress.WithLogger(logger),
	)
	opts := app.Options{Store: ps, Logger: logger}

	var rec llm.RequestRecorder
	if cfg.DBPath != "" {
		if err := store.EnsureDir(cfg.DBPath); err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		journal := store.NewJournal(st, logger)
		restored := restoreProgress(ctx, journal, ps, cfg, logger)
		logger.Info("journal opened",
			slog.String("path", cfg.DBPath), slog.Bool("restored", restored))
		detach := journal.Attach(ps)
		defer detach()

		opts.Journal = journal
		rec = journal.Events()
	}

	if cfg.Coach {
		llmCfg, ok, err := llm.ResolveConfig()
		switch {
		case err != nil:
			fmt.Fprintln(os.Stderr, "LLM provider misconfigured:", err)
			fmt.Fprintln(os.Stderr, "Coach feedback will be unavailable.")
		case ok:
			provider, err := llm.NewProvider(ctx, llmCfg, rec, logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, "LLM provider not available:", err)
				fmt.Fprintln(os.Stderr, "Coach feedback will be unavailable.")
				break
			}
			opts.Coach = coach.NewService(provider, coach.DefaultConfig())
		}
	}

	return app.Run(opts)
}

// restoreProgress loads the last snapshot into ps, then re-applies the
// settings the user configured so they override the saved ones.
func restoreProgress(ctx context.Context, j *store.Journal, ps *progress.Store, cfg config.Config, logger *slog.Logger) bool {
	restored, err := j.Restore(ctx, ps)
	if err != nil {
		logger.Warn("restore progress failed", slog.String("error", err.Error()))
	}
	cfg.ApplySettings(ps)
	return restored
}
