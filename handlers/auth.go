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

type AuthHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	tokens *auth.TokenManager
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, tokens: tokens}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Username and password required")
		return
	}

	var user models.User
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, username, password_hash, role, has_voted
		FROM users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.HasVoted)

	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		slog.Info("login rejected", "username", username)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, _, err := h.tokens.Issue(user.ID, user.Username, user.Role, user.HasVoted)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "role", user.Role)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User: models.UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			HasVoted: user.HasVoted,
		},
	})
}
