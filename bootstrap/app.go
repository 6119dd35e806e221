package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/restkit/component"
	"github.com/kbukum/restkit/headers"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/metrics"
	"github.com/kbukum/restkit/notify"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/rest"
	"github.com/kbukum/restkit/restclient"
	"github.com/kbukum/restkit/scoped"
)

// App is a configured restkit service.
type App struct {
	Name       string
	Version    string
	Cfg        *Config
	Logger     *logger.Logger
	Components *component.Registry

	// Handler dispatches requests through the configured stack.
	Handler *rest.Handler
	// Scoped binds dispatches to form state.
	Scoped *scoped.Handler
	// Client is the verb client rooted at Cfg.BaseURI.
	Client *restclient.Client
	// Location is the path tracker handed to the handler when no
	// WithLocation option was given.
	Location *rest.PathTracker
	// Metrics is nil when Cfg.Metrics.Enabled is false.
	Metrics *metrics.Collector
	// Notify is nil when WithPublisher replaced it.
	Notify *notify.Component

	summary         *Summary
	out             io.Writer
	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
}

// NewApp applies defaults, validates cfg and wires the dispatch stack.
// Nothing is started until Start.
func NewApp(cfg *Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	o := resolveOptions(opts)

	log := o.logger
	if log == nil {
		log = logger.New(&cfg.Logging, cfg.Name)
		logger.SetGlobalLogger(log)
	}

	app := &App{
		Name:            cfg.Name,
		Version:         cfg.Version,
		Cfg:             cfg,
		Logger:          log,
		Components:      component.NewRegistry(log),
		out:             os.Stdout,
		gracefulTimeout: o.gracefulTimeout,
	}

	chain, err := buildChain(cfg.Headers, o.mappers)
	if err != nil {
		return nil, err
	}

	if err := app.Components.Register(observability.NewComponent(cfg.Tracing, cfg.Meter)); err != nil {
		return nil, err
	}

	transport := o.transport
	if transport == nil {
		hc := httpclient.NewComponent(cfg.HTTP, httpclient.WithLogger(log))
		if err := app.Components.Register(hc); err != nil {
			return nil, err
		}
		transport = hc
	}

	publisher := o.publisher
	if publisher == nil {
		app.Notify = notify.NewComponent(cfg.Notify, log)
		if err := app.Components.Register(app.Notify); err != nil {
			return nil, err
		}
		publisher = app.Notify
	}

	location := o.location
	if location == nil {
		app.Location = rest.NewPathTracker("")
		location = app.Location
	}

	handlerOpts := []rest.Option{
		rest.WithHeaders(chain),
		rest.WithPublisher(publisher),
		rest.WithLocation(location),
		rest.WithLogger(log),
	}
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.New(cfg.Metrics, o.registry)
		transport = app.Metrics.Track(transport)
		handlerOpts = append(handlerOpts, rest.WithObserver(app.Metrics))
	}
	if cfg.Tracing.Enabled || cfg.Meter.Enabled {
		obs, err := observability.NewObserver(observability.Tracer(), observability.Meter())
		if err != nil {
			return nil, err
		}
		handlerOpts = append(handlerOpts, rest.WithObserver(obs))
	}
	for _, obs := range o.observers {
		handlerOpts = append(handlerOpts, rest.WithObserver(obs))
	}

	app.Handler = rest.NewHandler(transport, handlerOpts...)
	app.Scoped = scoped.NewHandler(app.Handler)
	app.Client = restclient.New(transport, restclient.WithBaseURI(cfg.BaseURI))
	app.summary = &Summary{
		service: cfg.Name,
		version: cfg.Version,
		baseURI: cfg.BaseURI,
		mappers: chain.Len(),
	}
	return app, nil
}

// buildChain registers static defaults, then the request id, then the
// signed token, then extra mappers.
func buildChain(cfg HeadersConfig, extra []headers.Mapper) (*headers.Chain, error) {
	chain := headers.NewChain()
	if len(cfg.Defaults) > 0 {
		chain.Register(headers.Static(cfg.Defaults))
	}
	if cfg.RequestIDHeader != "" {
		chain.Register(headers.RequestID(cfg.RequestIDHeader))
	}
	if cfg.JWT != nil {
		m, err := headers.SignedJWT(*cfg.JWT)
		if err != nil {
			return nil, fmt.Errorf("headers.jwt: %w", err)
		}
		chain.Register(m)
	}
	for _, m := range extra {
		chain.Register(m)
	}
	return chain, nil
}

// SetOutput redirects the startup summary.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Start starts every component, runs OnStart hooks and prints the summary.
// Unhealthy components are logged, not fatal.
func (a *App) Start(ctx context.Context) error {
	begin := time.Now()
	a.Logger.Info("starting application", logger.Fields(
		"name", a.Name,
		"version", a.Version,
	))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}

	a.summary.duration = time.Since(begin)
	a.summary.Write(ctx, a.out, a.Components)
	return nil
}

// ReadyCheck reports the unhealthy components, if any.
func (a *App) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Healthy() {
			continue
		}
		detail := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			detail += "(" + h.Message + ")"
		}
		unhealthy = append(unhealthy, detail)
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Stop runs OnStop hooks and stops components within the graceful timeout.
func (a *App) Stop() error {
	a.Logger.Info("shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("onStop hook error", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("application shutdown complete")
	return shutdownErr
}

// Run starts the application, blocks until SIGINT, SIGTERM or ctx is done,
// then stops it.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	a.WaitForSignal(ctx)
	return a.Stop()
}

// RunTask starts the application, runs task and stops. A signal cancels the
// task's context. The task's error takes precedence over a stop error.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx)
	if stopErr := a.Stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// WaitForSignal blocks until SIGINT, SIGTERM or ctx is done.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
		return nil
	}
}
