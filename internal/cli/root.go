// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/allie-tui/internal/config"
	"github.com/jeranaias/allie-tui/internal/logging"
	"github.com/jeranaias/allie-tui/internal/session"
	"github.com/jeranaias/allie-tui/internal/suggest"
	"github.com/jeranaias/allie-tui/internal/transport"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// annotationOwnsTerminal marks commands that draw full screen; their logs
// go to a file only.
const annotationOwnsTerminal = "allie/owns-terminal"

// annotationSkipConfig marks commands that must work with a broken config
// file; they start from defaults.
const annotationSkipConfig = "allie/skip-config"

// =============================================================================
// APP
// =============================================================================

// App holds the streams and resolved settings of one invocation.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Flags
	configPath string
	endpoint   string
	logLevel   string
	logFile    string
	seed       uint64
	verbose    bool

	// Resolved in PersistentPreRunE
	Config *config.Config
	Log    zerolog.Logger
	closer io.Closer

	// newSender builds the transport; tests replace it
	newSender func(cfg *config.Config, log *zerolog.Logger) session.Sender
}

// NewApp creates an App bound to the process streams.
func NewApp() *App {
	return &App{
		In:        os.Stdin,
		Out:       os.Stdout,
		Err:       os.Stderr,
		Log:       zerolog.Nop(),
		newSender: defaultSender,
	}
}

func defaultSender(cfg *config.Config, log *zerolog.Logger) session.Sender {
	return transport.NewClient(&transport.Config{
		URL:               cfg.Endpoint.URL,
		Timeout:           cfg.Endpoint.Timeout(),
		RequestsPerMinute: cfg.Endpoint.RequestsPerMinute,
		Logger:            log,
	})
}

// newController starts a session from the resolved configuration.
func (a *App) newController() *session.Controller {
	cfg := a.Config
	var sampler suggest.Sampler
	if cfg.Assistant.Seed != 0 {
		sampler = suggest.NewSeededPool(cfg.Catalog(), cfg.Assistant.Seed)
	} else {
		sampler = suggest.NewPool(cfg.Catalog(), nil)
	}
	return session.New(session.Options{
		Sender:          a.newSender(cfg, &a.Log),
		Sampler:         sampler,
		SuggestionCount: cfg.Assistant.SuggestionCount,
		FallbackText:    cfg.Assistant.FallbackText,
		Logger:          &a.Log,
	})
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "allie",
		Short: "Allie, Allora's AI assistant in your terminal",
		Long: `Allie answers questions about the Allora network.

Run without a command to open the assistant widget. Answers come from the
configured chat endpoint and may cite the documents they were drawn from.

Quick Start:
  allie                                  # Open the widget
  allie ask "What is Allora?"            # One question, printed answer
  allie chat                             # Line-based conversation
  allie render notes.md --format html    # Render assistant markdown`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{annotationOwnsTerminal: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTUI(cmd.Context())
		},
	}

	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Msg: err.Error()}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "config file (default ~/.allie/config.toml)")
	flags.StringVar(&app.endpoint, "endpoint", "", "chat endpoint URL")
	flags.StringVar(&app.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, disabled")
	flags.StringVar(&app.logFile, "log-file", "", "append JSON logs to this file")
	flags.Uint64Var(&app.seed, "seed", 0, "seed for suggestion sampling (0 = random)")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "print info logs to stderr")

	root.AddCommand(
		newTUICommand(app),
		newAskCommand(app),
		newChatCommand(app),
		newRenderCommand(app),
		newSuggestCommand(app),
		newConfigCommand(app),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *App) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if cmd.Annotations[annotationSkipConfig] != "true" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return &ConfigError{Err: err}
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint.URL = a.endpoint
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = a.logFile
	}
	if flags.Changed("seed") {
		cfg.Assistant.Seed = a.seed
	}
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Err: errors.Wrap(err, "invalid settings")}
	}
	a.Config = cfg

	opts := logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File}
	if ownsTerminal(cmd) {
		if opts.File == "" {
			path, err := config.DefaultLogPath()
			if err != nil {
				return &ConfigError{Err: err}
			}
			opts.File = path
		}
	} else {
		opts.Console = a.Err
		opts.NoColor = !colorEnabled(a.Err)
		if !a.verbose {
			opts.ConsoleLevel = "warn"
		}
	}

	log, closer, err := logging.New(opts)
	if err != nil {
		return &ConfigError{Err: err}
	}
	a.Log = log.With().Str("command", cmd.Name()).Logger()
	a.closer = closer
	a.Log.Debug().Str("endpoint", cfg.Endpoint.URL).Msg("configuration loaded")
	return nil
}

func (a *App) teardown() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}

func ownsTerminal(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationOwnsTerminal] == "true"
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	app := NewApp()
	defer app.teardown()
	root := NewRootCommand(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(app.Err, "Error: %v\n", err)
		return ExitCode(err)
	}
	return ExitSuccess
}
