// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/keyring-vote/server/cliparse"
	"github.com/keyring-vote/server/db"
	"github.com/keyring-vote/server/identity"
	"github.com/keyring-vote/server/middleware"
	"github.com/keyring-vote/server/router"
	"github.com/keyring-vote/server/storage"
)

func main() {
	var err error

	// Load .env if present (dev convenience; real deployments set env vars)
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "postgres"
	if cfg.DatabaseType == "sqlite" {
		driver = "sqlite"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Fetch the identity provider's signing keys; the verifier keeps them
	// fresh for the life of the process
	keyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	verifier, err := identity.NewVerifier(keyCtx, cfg.JWKSURL, cfg.Issuer, cfg.Audience)
	cancel()
	if err != nil {
		slog.Error("signing key fetch failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Signing keys ready", "jwks_url", cfg.JWKSURL)

	// Create router
	store := storage.NewStore(dbConn)
	mux := router.NewRouter(store, verifier, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
