package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kanban-cli/internal/config"
	"kanban-cli/internal/format"
	"kanban-cli/internal/session"
	"kanban-cli/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type App struct {
	ConfigDir  string
	Backend    string
	Path       string
	PrettyJSON bool
	Format     string
	Verbose    bool

	cfg config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "kanban",
		Short:        "Kanban board CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  kanban

  # Scriptable commands
  kanban lists add --title Doing
  kanban cards add --list list-... --title "Buy milk"
  kanban cards move card-... --to list-... --index 0

  # Direct card lookup (shortcut for: kanban cards show <card-id>)
  kanban card-1f0c...
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive board.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal, so its logs go to a file.
		toFile := cmd == cmd.Root() || cmd.Name() == "tui"
		return app.setup(toFile)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("KANBAN_CONFIG_DIR", ""), "Directory holding config.yaml and local boards (default ~/.kanban)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("KANBAN_BACKEND", ""), "Storage backend (file|sqlite|redis|memory); overrides storage.backend")
	cmd.PersistentFlags().StringVar(&app.Path, "path", envOr("KANBAN_PATH", ""), "Board file or database path; overrides storage.path")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("KANBAN_FORMAT", "json"), "Output format (json|edn|yaml)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging")

	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newCardsCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// setup resolves the config dir, loads config.yaml, applies flag overrides and builds the logger.
func (app *App) setup(logToFile bool) error {
	if strings.TrimSpace(app.ConfigDir) == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		app.ConfigDir = dir
	}
	cfg, err := config.Load(app.ConfigDir)
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(app.Backend); v != "" {
		cfg.Storage.Backend = v
	}
	if v := strings.TrimSpace(app.Path); v != "" {
		cfg.Storage.Path = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.cfg = cfg

	logFile := ""
	if logToFile {
		logFile = config.ResolvePath(app.ConfigDir, cfg.Log.File)
	}
	log, err := newLogger(cfg.Log.Level, app.Verbose, logFile)
	if err != nil {
		return err
	}
	app.log = log
	return nil
}

func newLogger(level string, verbose bool, file string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	zc.Level = lvl
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, err
		}
		zc.OutputPaths = []string{file}
		zc.ErrorOutputPaths = []string{file}
	}
	return zc.Build()
}

// board is one open board: the gateway over the configured slot and a session on top of it.
type board struct {
	gw   *store.Gateway
	sess *session.Session
}

func (b *board) Close() error {
	b.sess.Close()
	return b.gw.Close()
}

func openBoard(ctx context.Context, app *App, onChange func()) (*board, error) {
	slot, err := openSlot(ctx, app)
	if err != nil {
		return nil, err
	}
	gw := store.NewGateway(slot, app.log)
	sess := session.Open(gw, session.Options{
		Debounce:               time.Duration(app.cfg.Filter.Debounce),
		LockCardsWhileFiltered: app.cfg.Drag.LockCardsWhileFiltered,
		OnChange:               onChange,
		Logger:                 app.log,
	})
	app.log.Debug("board opened",
		zap.String("backend", app.cfg.Storage.Backend),
		zap.String("path", app.cfg.StoragePath(app.ConfigDir)),
	)
	return &board{gw: gw, sess: sess}, nil
}

func openSlot(ctx context.Context, app *App) (store.Slot, error) {
	st := app.cfg.Storage
	switch st.Backend {
	case config.BackendMemory:
		return store.NewMemorySlot(nil), nil
	case config.BackendFile:
		return store.FileSlot{Path: app.cfg.StoragePath(app.ConfigDir)}, nil
	case config.BackendSQLite:
		s, err := store.OpenSQLiteSlot(ctx, app.cfg.StoragePath(app.ConfigDir), st.Key)
		if err != nil {
			return nil, fmt.Errorf("open sqlite board: %w", err)
		}
		return s, nil
	case config.BackendRedis:
		client, err := store.DialRedis(ctx, st.RedisURL)
		if err != nil {
			return nil, err
		}
		return store.NewRedisSlot(client, st.Key), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", st.Backend)
	}
}

// withBoard opens the board for the duration of fn.
func withBoard(cmd *cobra.Command, app *App, fn func(b *board) error) error {
	b, err := openBoard(cmd.Context(), app, nil)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = b.Close() }()
	if err := fn(b); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
