package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Hudson5577/Hackathon-2025/cache"
	"github.com/Hudson5577/Hackathon-2025/cliparse"
	"github.com/Hudson5577/Hackathon-2025/db"
	"github.com/Hudson5577/Hackathon-2025/handlers"
	"github.com/Hudson5577/Hackathon-2025/middleware"
	"github.com/Hudson5577/Hackathon-2025/router"
)

func main() {
	var err error

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Open database and run migrations
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	err = db.Seed(ctx, dbConn, db.SeedConfig{
		AdminUsername:  cfg.AdminUsername,
		AdminPassword:  cfg.AdminPassword,
		SeedCandidates: cfg.SeedCandidates,
	})
	if err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	// Results cache is optional
	var resultsCache handlers.ResultsCache
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		resultsCache = cache.NewResultsCache(rdb, cfg.ResultsCacheTTL)
		slog.Info("Results cache enabled", "ttl", cfg.ResultsCacheTTL)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, resultsCache)

	// Create server
	server := &http.Server{
		Handler:           middleware.CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.Port))
	if err != nil {
		slog.Error("listen failed", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	if err := serve(server, ln, ctrlc, shutdownGrace); err != nil {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

const shutdownGrace = 10 * time.Second

// serve runs srv on ln until stop fires, then returns only after in-flight
// requests have finished or grace has elapsed.
func serve(srv *http.Server, ln net.Listener, stop <-chan os.Signal, grace time.Duration) error {
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		// Wait for Ctrl-C signal
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			srv.Close()
		}
	}()

	err := srv.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}
