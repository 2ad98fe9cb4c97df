// Package app wires the generator engine, sessions, persistence, sharing
// and the display server into the promptgen command.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"promptgen.arpa/app/config"
	"promptgen.arpa/app/content"
	"promptgen.arpa/app/engine"
	apphttp "promptgen.arpa/app/http"
	"promptgen.arpa/app/session"
	"promptgen.arpa/app/share"
	"promptgen.arpa/app/slack"
	"promptgen.arpa/app/store"
	"promptgen.arpa/logger"
	"promptgen.arpa/tools/random"
)

type App struct {
	BuildOpts config.BuildOpts
	// Stdout receives generated text; logs go to Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Clipboard overrides the clipboard share fallback.
	Clipboard share.Sink

	logger     logger.Logger
	log        *zap.Logger
	config     config.Config
	rnd        *random.Random
	store      store.Store
	engine     *engine.Engine
	sessions   *session.Manager
	watcher    *content.Watcher
	slack      *slack.Slack
	sharer     *share.Sharer
	httpServer *apphttp.Server
	render     *Renderer
}

func NewApp(buildOpts config.BuildOpts) *App {
	return &App{
		BuildOpts: buildOpts,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

func (s *App) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error
	s.config = s.BuildOpts.MakeConfig(cmd)

	isProd := s.config.Environment == config.EnvironmentProduction
	s.logger, err = logger.NewLogger(logger.LoggerOpts{
		Level:        s.config.LogLevel,
		IsProduction: isProd,
		JSONConsole:  isProd,
		Output:       s.Stderr,
	})
	if err != nil {
		return ctx, err
	}
	s.log = s.logger.Get()

	catalog := content.Builtin()
	if s.config.DictionaryFile != "" {
		catalog, err = content.LoadFile(catalog, s.config.DictionaryFile)
		if err != nil {
			return ctx, fmt.Errorf("load dictionary: %w", err)
		}
	}

	s.rnd = random.New(s.config.Seed)
	s.log.Debug("Random source seeded.", zap.Int64("seed", s.rnd.Seed()))
	s.engine = engine.NewEngine(s.log, catalog, s.rnd)

	s.store, err = store.Open(s.log, s.config.Store, s.config.DataDir)
	if err != nil {
		return ctx, fmt.Errorf("open %s store: %w", s.config.Store, err)
	}
	s.log.Debug("Store opened.", zap.Stringer("kind", s.config.Store), zap.String("dataDir", s.config.DataDir))

	s.sessions = session.NewManager(s.log, s.engine, s.store, session.Options{
		HistorySize: s.config.HistorySize,
	})

	var primary share.Sink
	if s.config.Slack.Enabled() {
		s.slack = slack.NewSlack(s.log, s.config.Slack)
		primary = share.NewSlack(s.slack)
	}
	clipboard := s.Clipboard
	if clipboard == nil {
		clipboard = share.NewClipboard()
	}
	s.sharer = share.NewSharer(s.log, primary, clipboard, s.config.SiteURL)

	s.httpServer = apphttp.NewServer(s.log, s.config.Server, s.sessions, s.sharer)
	s.render = NewRenderer(s.Stdout)

	return ctx, nil
}

// startSlack connects the share client. Failures are logged and sharing
// falls back to the clipboard.
func (s *App) startSlack(ctx context.Context) {
	if s.slack == nil {
		return
	}
	if err := s.slack.Start(ctx); err != nil {
		s.log.Warn("Slack sharing unavailable.", zap.Error(err))
	}
}

func (s *App) Run(runCtx context.Context) error {
	if s.config.DictionaryFile != "" {
		var err error
		s.watcher, err = content.NewWatcher(s.log, content.Builtin(), s.config.DictionaryFile)
		if err != nil {
			return fmt.Errorf("watch dictionary: %w", err)
		}
		s.watcher.AddCallback("engine", s.engine.Swap)
		if err := s.watcher.Start(runCtx); err != nil {
			return fmt.Errorf("start dictionary watcher: %w", err)
		}
	}

	s.startSlack(runCtx)

	return s.httpServer.Run(runCtx)
}

func (s *App) BeginShutdown(ctx context.Context) error {
	if err := s.httpServer.BeginShutdown(ctx); err != nil {
		return fmt.Errorf("begin shutdown http server: %w", err)
	}
	return nil
}

// Shutdown resources in reverse order of the Setup/Run
func (s *App) Shutdown(ctx context.Context) error {
	var errs error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = errors.Join(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if err := s.Close(); err != nil {
		errs = errors.Join(errs, err)
	}
	return errs
}

func (s *App) ForceShutdown(ctx context.Context) error {
	return nil
}

// Close releases the store and flushes the logger. Commands that do not
// start the server call it once they finish.
func (s *App) Close() error {
	var errs error
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("close store: %w", err))
		}
		s.store = nil
	}
	// Sync throws an error when logging to console (sync is for buffered file logging)
	// `sync /dev/stderr: inappropriate ioctl for device`
	// https://github.com/uber-go/zap/issues/880
	if s.log != nil {
		if err := s.log.Sync(); err != nil && !errors.Is(err, syscall.ENOTTY) && !errors.Is(err, syscall.EINVAL) {
			errs = errors.Join(errs, fmt.Errorf("sync logger: %w", err))
		}
	}
	return errs
}

func (s *App) Logger() *zap.Logger {
	return s.logger.Get()
}
