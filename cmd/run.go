package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/medborger/internal/analytics"
	"github.com/abhisek/medborger/internal/app"
	"github.com/abhisek/medborger/internal/exam"
	"github.com/abhisek/medborger/internal/explain"
	"github.com/abhisek/medborger/internal/history"
	"github.com/abhisek/medborger/internal/i18n"
	"github.com/abhisek/medborger/internal/screen"
	"github.com/abhisek/medborger/internal/selfupdate"
	"github.com/abhisek/medborger/internal/session"
	"github.com/abhisek/medborger/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if fi, err := os.Stat(cfg.BanksDir); err != nil || !fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Exam banks not found in %q; only exams with readable files will load.\n", cfg.BanksDir)
		logger.Warn("exam banks directory missing", "dir", cfg.BanksDir)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	reporter := analytics.New(cfg.Analytics, logger)
	deps, err := buildDeps(ctx, st, reporter)
	if err != nil {
		return err
	}

	opts := app.Options{}
	if version != "(devel)" {
		opts.CheckUpdate = checkForUpdate
	}
	runErr := app.Run(deps, opts)

	waitCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	reporter.Wait(waitCtx)
	return runErr
}

// buildDeps wires the quiz components over st.
func buildDeps(ctx context.Context, st *store.Store, reporter *analytics.Reporter) (*screen.Deps, error) {
	kv := st.KV()
	catalog := exam.DefaultCatalog()
	hist := history.NewStore(kv, logger)
	countdown := session.NewCountdown()

	machine := session.NewMachine(catalog, hist, countdown,
		session.WithLogger(logger),
		session.WithHooks(session.Hooks{
			OnBegin:  func(string) { reporter.Track(analytics.ActionStartQuiz) },
			OnFinish: func(history.Attempt) { reporter.Track(analytics.ActionSubmitQuiz) },
		}),
	)

	t, err := translator(ctx, kv)
	if err != nil {
		return nil, err
	}

	return &screen.Deps{
		Catalog:   catalog,
		Loader:    exam.NewLoader(catalog, os.DirFS(cfg.BanksDir), exam.WithLogger(logger)),
		History:   hist,
		Machine:   machine,
		Countdown: countdown,
		Explain:   explain.FromConfig(ctx, cfg.LLM, st.EventRepo(), kv, logger),
		KV:        kv,
		T:         t,
		Logger:    logger,
	}, nil
}

// translator picks the language from --lang, the saved preference, or English.
func translator(ctx context.Context, kv store.KV) (*i18n.Translator, error) {
	t, err := i18n.New(i18n.Resolve(ctx, kv, cfg.Lang))
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	return t, nil
}

// checkForUpdate returns the newer release version, or "" on any failure.
func checkForUpdate(ctx context.Context) string {
	res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		logger.Debug("update check failed", "err", err)
		return ""
	}
	if !res.UpdateAvailable {
		return ""
	}
	return res.LatestVersion
}
