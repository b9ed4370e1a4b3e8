// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Hudson5577/Hackathon-2025/auth"
	"github.com/Hudson5577/Hackathon-2025/cliparse"
	"github.com/Hudson5577/Hackathon-2025/db"
	"github.com/Hudson5577/Hackathon-2025/middleware"
	"github.com/Hudson5577/Hackathon-2025/models"
)

const maxUsernameLength = 50

type AdminHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	cache ResultsCache
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, cache ResultsCache) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, cache: cache}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, username, role, has_voted, created_at
		FROM users
		ORDER BY created_at DESC, username
	`)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.HasVoted, &u.CreatedAt); err != nil {
			slog.Error("failed to scan user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// AddUser handles POST /api/admin/add_user
func (h *AdminHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req models.AddUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username and password required")
		return
	}
	if len(username) > maxUsernameLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username must be 50 characters or less")
		return
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = auth.RoleVoter
	}
	if !auth.ValidRole(role) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid role")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	userID := auth.NewID()
	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO users (id, username, password_hash, role, has_voted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, username, hash, role, false, time.Now().UTC())
	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Username already exists")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("user added", "user_id", userID, "username", username, "role", role)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{
		ID:      userID,
		Message: "User added successfully",
	})
}

// ResetVotes handles POST /api/admin/reset_votes
func (h *AdminHandler) ResetVotes(w http.ResponseWriter, r *http.Request) {
	deleted, err := resetElection(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to reset votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error resetting votes")
		return
	}

	invalidateResults(r.Context(), h.cache)

	var adminName string
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		adminName = claims.Username
	}
	slog.Info("votes reset", "deleted", deleted, "by", adminName)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "All votes reset successfully",
	})
}

// AddCandidate handles POST /api/admin/add_candidate
func (h *AdminHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate name required")
		return
	}

	candidateID := auth.NewID()
	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO candidates (id, name, description, team_members, project_title, votes_count, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6)
	`, candidateID, name, req.Description, req.TeamMembers, req.ProjectTitle, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	invalidateResults(r.Context(), h.cache)

	slog.Info("candidate added", "candidate_id", candidateID, "name", name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{
		ID:      candidateID,
		Message: "Candidate added successfully",
	})
}

// ListVotes handles GET /api/admin/votes
// Audit view of the ledger; ip hash and user agent stay server-side.
func (h *AdminHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT v.id, v.user_id, u.username, v.candidate_id, c.name, v.voted_at
		FROM votes v
		JOIN users u ON u.id = v.user_id
		JOIN candidates c ON c.id = v.candidate_id
		ORDER BY v.voted_at DESC, v.id
	`)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	votes := []models.VoteRecord{}
	for rows.Next() {
		var v models.VoteRecord
		if err := rows.Scan(&v.ID, &v.UserID, &v.Username, &v.CandidateID, &v.CandidateName, &v.VotedAt); err != nil {
			slog.Error("failed to scan vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}
