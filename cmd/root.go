package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/medborger/internal/config"
	"github.com/abhisek/medborger/internal/store"
)

var (
	cfg     *config.Config
	logger  = slog.Default()
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "medborger",
	Short: "Practice the Danish citizenship test",
	Long: "Medborger is a terminal trainer for medborgerskabsprøven. Take past exams or a random mix " +
		"against the clock, review your mistakes, and ask an AI to explain them.",
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assigned here rather than in the literal: setup refers to rootCmd.
	rootCmd.PersistentPreRunE = setup

	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides MEDBORGER_DB env var)")
	pf.String("banks-dir", "exams", "Directory holding the exam bank files")
	pf.String("lang", "", "Interface language (en, zh, vi); overrides the saved preference")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(examsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(langCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// setup resolves the configuration and installs the logger. The TUI owns
// the terminal, so it logs to a file; subcommands log to stderr.
func setup(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv(logger)

	c, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	cfg = c

	var out io.Writer = os.Stderr
	if cmd == rootCmd {
		out = io.Discard
		if err := store.EnsureDir(cfg.LogFile); err == nil {
			if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				logFile = f
				out = f
			}
		}
	}

	opts := &slog.HandlerOptions{Level: config.ParseLevel(cfg.LogLevel)}
	var h slog.Handler = slog.NewTextHandler(out, opts)
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(out, opts)
	}
	logger = slog.New(h)
	slog.SetDefault(logger)
	return nil
}

// openStore opens the database named by --db, MEDBORGER_DB, or the default
// XDG path.
func openStore() (*store.Store, error) {
	p := cfg.DBPath
	var err error
	if p != "" {
		err = store.EnsureDir(p)
	} else {
		p, err = store.DefaultDBPath()
	}
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
