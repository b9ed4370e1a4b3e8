// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Hudson5577/Hackathon-2025/auth"
	"github.com/Hudson5577/Hackathon-2025/cliparse"
	"github.com/Hudson5577/Hackathon-2025/middleware"
	"github.com/Hudson5577/Hackathon-2025/models"
)

type VotingHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	cache ResultsCache
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, cache ResultsCache) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, cache: cache}
}

// ListCandidates handles GET /api/candidates
func (h *VotingHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, name, description, team_members, project_title, votes_count
		FROM candidates
		ORDER BY name, id
	`)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.TeamMembers, &c.ProjectTitle, &c.VotesCount); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Vote handles POST /api/vote
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	// Login-time snapshot; castVote re-checks the store
	if claims.HasVoted {
		middleware.ErrorResponse(w, http.StatusBadRequest, "You have already voted")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidateID := strings.TrimSpace(req.CandidateID)
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate ID required")
		return
	}

	voteID, err := castVote(r.Context(), h.db, ballot{
		UserID:      claims.UserID,
		CandidateID: candidateID,
		IPHash:      auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
		UserAgent:   r.UserAgent(),
	})

	switch {
	case errors.Is(err, errCandidateNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	case errors.Is(err, errAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusBadRequest, "You have already voted")
		return
	case errors.Is(err, errUnknownUser):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "User no longer exists")
		return
	case err != nil:
		slog.Error("failed to record vote", "error", err, "user_id", claims.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error recording vote")
		return
	}

	invalidateResults(r.Context(), h.cache)

	slog.Info("vote recorded", "vote_id", voteID, "user_id", claims.UserID, "candidate_id", candidateID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Vote recorded successfully",
	})
}
