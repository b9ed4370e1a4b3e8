// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Hudson5577/Hackathon-2025/auth"
	"github.com/Hudson5577/Hackathon-2025/cliparse"
	"github.com/Hudson5577/Hackathon-2025/db"
	"github.com/Hudson5577/Hackathon-2025/middleware"
	"github.com/Hudson5577/Hackathon-2025/models"
)

// SetupTestDB creates a fresh sqlite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            5000,
		DatabaseURL:     "test.db",
		DatabaseType:    db.TypeSQLite,
		JWTSecret:       "test-jwt-secret",
		TokenTTL:        24 * time.Hour,
		IPHashSalt:      "test-ip-salt",
		AdminUsername:   "admin",
		AdminPassword:   "admin123",
		ResultsCacheTTL: 30 * time.Second,
	}
}

// CreateTestUser inserts a user with a bcrypt-hashed password
// role should be "admin" or "voter"
func CreateTestUser(t *testing.T, conn *sql.DB, username, password, role string) models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	u := models.User{
		ID:           auth.NewID(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = conn.Exec(`
		INSERT INTO users (id, username, password_hash, role, has_voted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Username, u.PasswordHash, u.Role, false, u.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return u
}

// CreateTestCandidate adds a candidate with zero votes and returns its ID
func CreateTestCandidate(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO candidates (id, name, description, team_members, project_title, votes_count, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6)
	`, id, name, name+" description", "Alice, Bob", name+" Project", time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return id
}

// IssueTestToken signs a token for u using the test config secret
func IssueTestToken(t *testing.T, cfg cliparse.Config, u models.User) string {
	t.Helper()

	token, _, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL).Issue(u.ID, u.Username, u.Role, u.HasVoted)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}

	return token
}

// BearerHeader returns request headers carrying token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AuthedRequest creates a request carrying verified claims in its context,
// for calling handlers directly without the auth middleware
func AuthedRequest(t *testing.T, cfg cliparse.Config, u models.User, method, path string, body interface{}) *http.Request {
	t.Helper()

	claims, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL).Verify(IssueTestToken(t, cfg, u))
	if err != nil {
		t.Fatalf("Failed to verify test token: %v", err)
	}

	req := MakeRequest(method, path, body, nil)
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

// Tally returns the stored votes_count of a candidate
func Tally(t *testing.T, conn *sql.DB, candidateID string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT votes_count FROM candidates WHERE id = $1`, candidateID).Scan(&n); err != nil {
		t.Fatalf("Failed to read tally: %v", err)
	}
	return n
}

// LedgerCount returns the number of ledger rows, optionally for one candidate
func LedgerCount(t *testing.T, conn *sql.DB, candidateID string) int {
	t.Helper()

	var n int
	var err error
	if candidateID == "" {
		err = conn.QueryRow(`SELECT COUNT(*) FROM votes`).Scan(&n)
	} else {
		err = conn.QueryRow(`SELECT COUNT(*) FROM votes WHERE candidate_id = $1`, candidateID).Scan(&n)
	}
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// HasVoted returns the stored has_voted flag of a user
func HasVoted(t *testing.T, conn *sql.DB, userID string) bool {
	t.Helper()

	var voted bool
	if err := conn.QueryRow(`SELECT has_voted FROM users WHERE id = $1`, userID).Scan(&voted); err != nil {
		t.Fatalf("Failed to read has_voted: %v", err)
	}
	return voted
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
