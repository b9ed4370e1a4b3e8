// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/Hudson5577/Hackathon-2025/auth"
	"github.com/Hudson5577/Hackathon-2025/cliparse"
	"github.com/Hudson5577/Hackathon-2025/handlers"
	"github.com/Hudson5577/Hackathon-2025/middleware"
)

// NewRouter wires every endpoint. rc may be nil to disable result caching.
func NewRouter(db *sql.DB, cfg cliparse.Config, rc handlers.ResultsCache) *http.ServeMux {
	mux := http.NewServeMux()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, tokens)
	votingHandler := handlers.NewVotingHandler(db, cfg, rc)
	resultsHandler := handlers.NewResultsHandler(db, cfg, rc)
	adminHandler := handlers.NewAdminHandler(db, cfg, rc)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication (public)
	mux.HandleFunc("POST /api/login", middleware.WithLogging(authHandler.Login))

	// Voting (bearer token)
	mux.HandleFunc("GET /api/candidates", middleware.WithLogging(middleware.RequireAuth(tokens, votingHandler.ListCandidates)))
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(middleware.RequireAuth(tokens, votingHandler.Vote)))
	mux.HandleFunc("GET /api/results", middleware.WithLogging(middleware.RequireAuth(tokens, resultsHandler.GetResults)))

	// Administration (admin role)
	mux.HandleFunc("GET /api/admin/users", middleware.WithLogging(middleware.RequireAdmin(tokens, adminHandler.ListUsers)))
	mux.HandleFunc("POST /api/admin/add_user", middleware.WithLogging(middleware.RequireAdmin(tokens, adminHandler.AddUser)))
	mux.HandleFunc("POST /api/admin/reset_votes", middleware.WithLogging(middleware.RequireAdmin(tokens, adminHandler.ResetVotes)))
	mux.HandleFunc("POST /api/admin/add_candidate", middleware.WithLogging(middleware.RequireAdmin(tokens, adminHandler.AddCandidate)))
	mux.HandleFunc("GET /api/admin/votes", middleware.WithLogging(middleware.RequireAdmin(tokens, adminHandler.ListVotes)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hackathon Voting API v1"))
	})

	return mux
}
