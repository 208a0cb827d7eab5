package cliutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wandb/timechart/internal/config"
	"github.com/wandb/timechart/internal/observability"
)

// Version is set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// AddRuntimeFlags registers the flags read by NewEnv.
func AddRuntimeFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Settings file (default $TIMECHART_CONFIG)")
	flags.StringArray("set", nil, "Override a setting, e.g. --set springs.zoom_ratio=0.01")
	flags.String("debug-log", "", "Write a JSON debug log to this file (default $TIMECHART_DEBUG_LOG)")
	flags.BoolP("verbose", "v", false, "Log to stderr")
	flags.String("sentry-dsn", "", "Report errors to this Sentry project (default $TIMECHART_SENTRY_DSN)")
	_ = flags.MarkHidden("sentry-dsn")
}

// Env holds what every command needs: a logger, the settings, and the
// filesystem datasets are read from.
type Env struct {
	Logger *observability.CoreLogger
	Config *config.Manager
	Fs     afero.Fs

	hub     *sentry.Hub
	closers []io.Closer
}

// NewEnv sets up logging, error reporting and settings from the runtime
// flags.
//
// Logs go to the debug log file if one is given, otherwise to stderr with
// --verbose, otherwise nowhere.
func NewEnv(cmd *cobra.Command) (*Env, error) {
	env := &Env{Fs: afero.NewOsFs()}

	writer := io.Discard
	var handler slog.Handler
	if path := GetString(cmd, "debug-log"); path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening debug log: %w", err)
		}
		env.closers = append(env.closers, f)
		writer = f
	} else if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		handler = charmlog.NewWithOptions(cmd.ErrOrStderr(), charmlog.Options{
			Level:           charmlog.DebugLevel,
			ReportTimestamp: true,
			Prefix:          "timechart",
		})
	}
	if handler == nil {
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	hub, err := observability.NewSentryHub(observability.SentryParams{
		DSN:         GetString(cmd, "sentry-dsn"),
		Release:     Version,
		Environment: os.Getenv(EnvPrefix + "ENVIRONMENT"),
	})
	if err != nil {
		// Reporting is best effort.
		slog.New(handler).Warn("sentry: disabled", "error", err)
	}
	env.hub = hub

	env.Logger = observability.NewCoreLogger(
		slog.New(handler),
		&observability.CoreLoggerParams{
			Tags:   observability.Tags{"command": cmd.Name()},
			Sentry: hub,
		},
	)

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.Path()
	}
	env.Config = config.NewManager(env.Fs, configPath, env.Logger)

	sets, _ := cmd.Flags().GetStringArray("set")
	overrides, err := ParseOverrides(sets)
	if err != nil {
		env.Close()
		return nil, err
	}
	if err := env.Config.Apply(overrides); err != nil {
		env.Close()
		return nil, err
	}

	return env, nil
}

// Close flushes error reports and closes the debug log.
func (e *Env) Close() {
	if e.hub != nil {
		e.hub.Flush(2 * time.Second)
	}
	for _, c := range e.closers {
		_ = c.Close()
	}
	e.closers = nil
}
