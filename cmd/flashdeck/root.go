package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"flashdeck/internal/config"
	"flashdeck/internal/deck"
	"flashdeck/internal/storage"
	"flashdeck/internal/telemetry"
	"flashdeck/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the wiring shared by all subcommands.
type app struct {
	v          *viper.Viper
	configFile string
	envFile    string

	cfg     config.Config
	logger  *slog.Logger
	kv      storage.KV
	ctrl    *deck.Controller
	closers []func(context.Context) error
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "flashdeck",
		Short: "Build flashcard decks in the terminal",
		Long: "flashdeck lets you type question/answer pairs, preview them as a\n" +
			"flippable card and save the deck under a name in local storage.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default $FLASHDECK_DATA_DIR/config.yaml)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.String("storage", storage.BackendFile, "storage backend: file, sqlite or memory")
	flags.String("data-dir", "", "data directory (default ~/.flashdeck)")
	flags.String("dsn", "", "SQLite database path (default <data-dir>/flashdeck.db)")
	flags.String("storage-key", storage.DefaultKey, "key the deck table is stored under")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-file", "", "log file for the interactive UI (default <data-dir>/flashdeck.log)")
	flags.Duration("feedback-delay", 0, "how long status messages stay visible (default 3s)")

	bindings := map[string]string{
		config.KeyStorage:       "storage",
		config.KeyDataDir:       "data-dir",
		config.KeyDSN:           "dsn",
		config.KeyStorageKey:    "storage-key",
		config.KeyLogLevel:      "log-level",
		config.KeyLogFile:       "log-file",
		config.KeyFeedbackDelay: "feedback-delay",
	}
	for key, flag := range bindings {
		// Only bound flags the user actually set override file/env values.
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(newDecksCmd(a), newAddCmd(a))
	return root, a
}

// execute runs root and then releases whatever setup opened. Cobra skips
// post-run hooks when a command fails, so closing happens here instead.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	err := root.ExecuteContext(ctx)
	if cerr := a.close(ctx); err == nil {
		err = cerr
	}
	return err
}

// setup resolves config and opens storage, logging and tracing.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	interactive := cmd.Root() == cmd
	logger, closeLog, err := newLogger(cfg, interactive, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	a.closers = append(a.closers, closeLog)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}
	a.closers = append(a.closers, shutdown)

	kv, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	a.kv = kv
	a.closers = append(a.closers, func(context.Context) error { return kv.Close() })

	a.ctrl = deck.NewController(
		storage.NewTableStore(kv, cfg.StorageKey),
		deck.WithLogger(logger),
	)
	logger.Debug("storage ready", "backend", cfg.Storage, "data_dir", cfg.DataDir, "key", cfg.StorageKey)
	return nil
}

func (a *app) close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var firstErr error
	// Reverse order: storage, tracing, then the log file.
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *app) runTUI() error {
	model := ui.NewAppModel(a.ctrl, a.cfg.FeedbackDelay).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	if n := a.ctrl.Len(); n > 0 {
		a.logger.Warn("exited with unsaved cards", "cards", n)
	}
	return nil
}

// newLogger writes to the log file when the TUI owns the terminal, and to
// stderr for headless subcommands.
func newLogger(cfg config.Config, interactive bool, stderr io.Writer) (*slog.Logger, func(context.Context) error, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	noop := func(context.Context) error { return nil }
	if !interactive {
		h := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
		return slog.New(h), noop, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), func(context.Context) error { return f.Close() }, nil
}
