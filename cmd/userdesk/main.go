// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/userdesk/internal/backend"
	"github.com/olegiv/userdesk/internal/cache"
	"github.com/olegiv/userdesk/internal/config"
	"github.com/olegiv/userdesk/internal/console"
	"github.com/olegiv/userdesk/internal/handler"
	"github.com/olegiv/userdesk/internal/logging"
	"github.com/olegiv/userdesk/internal/middleware"
	"github.com/olegiv/userdesk/internal/render"
	"github.com/olegiv/userdesk/internal/scheduler"
	"github.com/olegiv/userdesk/internal/session"
	"github.com/olegiv/userdesk/internal/version"
	"github.com/olegiv/userdesk/web"
)

// maxBackendCalls is the most sequential backend calls one request makes: a
// dispatch on an expired console loads roles and users, then a submit saves
// and reloads.
const maxBackendCalls = 4

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "userdesk - user and role admin console\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  USERDESK_BACKEND_URL      Backend origin, e.g. http://localhost:8080 (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  USERDESK_SESSION_SECRET   Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  USERDESK_SERVER_PORT      Server port (default: 8081)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  USERDESK_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  USERDESK_FORWARD_COOKIES  Cookies relayed to the backend (default: JSESSIONID)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  USERDESK_REDIS_URL        Redis URL for console state (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Printf("userdesk %s\n", versionInfo)
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.SlogLevel())
	slog.SetDefault(logger)

	// Console state and sessions share one store
	store, usingRedis, err := cache.New(cache.Config{
		RedisURL:         cfg.RedisURL,
		Prefix:           cfg.StatePrefix,
		DefaultTTL:       cfg.StateTTL,
		FallbackToMemory: cfg.IsDevelopment(),
	}, logger)
	if err != nil {
		return fmt.Errorf("creating state store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("error closing state store", "error", err)
		}
	}()
	slog.Info("state store initialized", "redis", usingRedis)

	states := console.NewStateStore(store, cfg.StateTTL)
	sessionManager := session.New(session.NewCacheStore(store), cfg.IsDevelopment(), cfg.StateTTL)

	api := backend.New(backend.Options{
		BaseURL: cfg.BackendURL,
		Token:   cfg.BackendToken,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
	slog.Info("backend client initialized", "url", cfg.BackendURL)

	renderer, err := render.New(render.Config{
		TemplatesFS: web.Templates,
		IsDev:       cfg.IsDevelopment(),
		Version:     versionInfo.Version,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	dispatchLimiter := middleware.NewDispatchRateLimiter(cfg.DispatchRPS, cfg.DispatchBurst, func(r *http.Request) string {
		return sessionManager.GetString(r.Context(), handler.SessionKeyConsoleID)
	})

	sched := scheduler.New(cfg.SweepSchedule, logger)
	if sw, ok := store.(cache.Sweeper); ok {
		sched.Register("state-store", sw)
	}
	sched.Register("dispatch-limiters", dispatchLimiter)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	consoleHandler := handler.NewConsoleHandler(handler.ConsoleConfig{
		Renderer:       renderer,
		SessionManager: sessionManager,
		API:            api,
		States:         states,
		RolePrefix:     cfg.RolePrefix,
		BannerTTL:      cfg.BannerTTL,
		Logger:         logger,
	})
	currentUserHandler := handler.NewCurrentUserHandler(renderer,
		console.NewCurrentUserViewController(api, cfg.RolePrefix, logger))

	var storePinger handler.Pinger
	if p, ok := store.(handler.Pinger); ok && usingRedis {
		storePinger = p
	}
	healthHandler := handler.NewHealthHandler(api, storePinger, versionInfo.Version, cfg.IsDevelopment())

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.RedirectSlashes)
	requestTimeout := maxBackendCalls*cfg.RequestTimeout + 5*time.Second
	r.Use(middleware.Timeout(requestTimeout, logger))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	slog.Info("security headers middleware initialized", "hsts", !cfg.IsDevelopment())

	// Health check routes (no session)
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}
	r.Handle(handler.RouteStatic+"/*", http.StripPrefix(handler.RouteStatic+"/", http.FileServer(http.FS(staticFS))))

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerPort))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(csrfMiddleware)
		r.Use(middleware.ForwardCredentials(cfg.ForwardCookies))

		r.Get(handler.RouteRoot, func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, handler.RouteAdmin, http.StatusSeeOther)
		})
		r.Get(handler.RouteAdmin, consoleHandler.Page)
		r.Get(handler.RouteConsole, consoleHandler.View)
		r.Get(handler.RouteConsoleJSON, consoleHandler.ViewJSON)
		r.With(dispatchLimiter.Middleware()).Post(handler.RouteDispatch, consoleHandler.Dispatch)
		r.Get(handler.RouteUser, currentUserHandler.Show)
	})
	slog.Info("dispatch rate limiter initialized", "rate", cfg.DispatchRPS, "burst", cfg.DispatchBurst)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      requestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	}

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
