// cmd/api/main.go
//
// Storefront API – HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load env vars (system-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load and validate config (YAML + env overlays + Vault secrets).
//
//  4. Open the process-wide DB pool and fail fast on a dead server.
//
//  5. Build the session manager (janitor runs for the process lifetime).
//
//  6. Mount /metrics and the API pipeline:
//     wrap → CORS → access log → session → JSON body → router.
//
//  7. Serve until SIGINT/SIGTERM, then drain connections.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/oakharbor/storefront/internal/api"
	"github.com/oakharbor/storefront/internal/config"
	"github.com/oakharbor/storefront/internal/database"
	"github.com/oakharbor/storefront/internal/logger"
	"github.com/oakharbor/storefront/internal/requestinfo"
	"github.com/oakharbor/storefront/internal/server"
	"github.com/oakharbor/storefront/internal/session"
)

const serverEnvPath = "/usr/local/etc/storefront/global.env"

// loadEnv prefers the system-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load(ctx)
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Database pool ───────────────────────────────────────────────
	//
	logOut.Infow("connecting to database")
	db, err := database.Open(cfg.Database.ResolvedDSN())
	if err != nil {
		logOut.Fatalf("connect database: %v", err)
	}
	defer db.Close()
	logOut.Infow("database online")

	//
	// ── 3.  Optional geo lookups for the access log ─────────────────────
	//
	if cfg.Geo.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
			logOut.Warnw("geo database unavailable", "path", cfg.Geo.DBPath, "err", err)
		}
	}

	//
	// ── 4.  Sessions + pipeline ─────────────────────────────────────────
	//
	sessions := session.NewManager(
		cfg.Session.CookieName, cfg.Session.CookiePath, cfg.Session.IdleTTL)

	handlers := api.New(db, sessions)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handlers.Pipeline(cfg))

	srv := server.New(cfg.HTTP.ListenAddr, mux)

	//
	// ── 5.  Serve until signalled ───────────────────────────────────────
	//
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logOut.Infow("shutting down")
		drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(drainCtx)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
	logOut.Infow("bye")
}
