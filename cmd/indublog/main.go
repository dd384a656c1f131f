// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Command indublog runs the IndubLog platform server: the public JSON
// content API and the admin moderation surface behind it.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/vkwebcraft/indublog/internal/cache"
	"github.com/vkwebcraft/indublog/internal/config"
	"github.com/vkwebcraft/indublog/internal/handler/api"
	"github.com/vkwebcraft/indublog/internal/logging"
	"github.com/vkwebcraft/indublog/internal/middleware"
	"github.com/vkwebcraft/indublog/internal/rbac"
	"github.com/vkwebcraft/indublog/internal/scheduler"
	"github.com/vkwebcraft/indublog/internal/service"
	"github.com/vkwebcraft/indublog/internal/session"
	"github.com/vkwebcraft/indublog/internal/store"
	"github.com/vkwebcraft/indublog/internal/version"
)

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
		_, _ = fmt.Fprintf(os.Stderr, "IndubLog - Blogging Platform Server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INDUBLOG_DB_PATH        SQLite database path (default: ./data/indublog.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INDUBLOG_SERVER_PORT    Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INDUBLOG_ENV            Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INDUBLOG_LOG_LEVEL      Log level: debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INDUBLOG_REDIS_URL      Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INDUBLOG_DEMO_SEED      Seed demo content on startup (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Println(version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime})
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logLevel := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR records to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if cfg.DemoSeed {
		if err := store.SeedDemo(ctx, db); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
		slog.Info("demo content seeded")
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	// Cache for the public feed: Redis when configured, memory otherwise
	cacheType := "memory"
	if cfg.UseRedisCache() {
		cacheType = "redis"
	}
	cacher, err := cache.NewCache(cache.Config{
		Type:            cacheType,
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacher.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	feedCache := cache.NewFeedCache(cacher, store.New(db), time.Duration(cfg.CacheTTL)*time.Second)
	slog.Info("cache initialized", "type", cacheType)

	sched := scheduler.New(db, logger, feedCache.Invalidate)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	eventService := service.NewEventService(db)
	apiHandler := api.NewHandler(db, sessionManager, loginProtection, feedCache)

	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadAdmin(sessionManager, db))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", apiHandler.Status)

		// Auth
		r.With(loginProtection.Middleware()).Post("/auth/login", apiHandler.Login)
		r.Post("/auth/logout", apiHandler.Logout)
		r.Get("/auth/me", apiHandler.Me)

		// Public content
		r.Get("/posts", apiHandler.ListPosts)
		r.Get("/posts/{id}", apiHandler.GetPost)
		r.Get("/categories", apiHandler.ListCategories)
		r.Get("/authors", apiHandler.ListAuthors)
		r.Post("/newsletter/subscribe", apiHandler.Subscribe)
		r.Delete("/newsletter/unsubscribe/{token}", apiHandler.Unsubscribe)

		// Writer surface: any authenticated account
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))
			r.Post("/posts", apiHandler.CreatePost)
			r.Get("/posts/mine", apiHandler.MyPosts)
			r.Post("/posts/{id}/submit", apiHandler.SubmitPost)
		})

		// Admin surface: session plus per-route role allow-lists. The
		// moderation layer re-checks roles, so a gap here cannot widen
		// what a role may do.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(rbac.RolesFor(rbac.CapViewDashboard), eventService))
				r.Get("/stats", apiHandler.Dashboard)
				r.Get("/blogs", apiHandler.ListPosts)
				r.Get("/users", apiHandler.ListUsers)
				r.Get("/authors", apiHandler.ListAuthors)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(rbac.RolesFor(rbac.CapManageContent), eventService))
				r.Post("/blogs/{id}/approve", apiHandler.ApprovePost)
				r.Post("/blogs/{id}/reject", apiHandler.RejectPost)
				r.Delete("/blogs/{id}", apiHandler.DeletePost)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(rbac.RolesFor(rbac.CapManageUsers), eventService))
				r.Post("/users/{id}/suspend", apiHandler.SuspendUser)
				r.Post("/users/{id}/activate", apiHandler.ActivateUser)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(rbac.RolesFor(rbac.CapManageAuthors), eventService))
				r.Post("/authors/{id}/verify", apiHandler.VerifyAuthor)
				r.Post("/authors/{id}/suspend", apiHandler.SuspendAuthor)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(rbac.RolesFor(rbac.CapManageAdminUsers), eventService))
				r.Get("/admin-users", apiHandler.ListAdminUsers)
				r.Post("/admin-users", apiHandler.CreateAdminUser)
				r.Post("/admin-users/{id}/ban", apiHandler.BanAdminUser)
				r.Post("/admin-users/{id}/unban", apiHandler.UnbanAdminUser)
				r.Get("/events", apiHandler.RecentEvents)
			})
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server",
			"addr", cfg.ServerAddr(),
			"env", cfg.Env,
			"version", versionInfo.Version,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
