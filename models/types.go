package models

import "time"

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type VoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

type AddUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AddCandidateRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	TeamMembers  string `json:"team_members"`
	ProjectTitle string `json:"project_title"`
}

// Response types

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	HasVoted bool   `json:"has_voted"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type ResultsResponse struct {
	Results    []CandidateResult `json:"results"`
	TotalVotes int               `json:"total_votes"`
}

type CandidateResult struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ProjectTitle string  `json:"project_title"`
	VotesCount   int     `json:"votes_count"`
	Percentage   float64 `json:"percentage"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	HasVoted     bool      `json:"has_voted"`
	CreatedAt    time.Time `json:"created_at"`
}

type Candidate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	TeamMembers  string `json:"team_members"`
	ProjectTitle string `json:"project_title"`
	VotesCount   int    `json:"votes_count"`
}

// VoteRecord is one ledger entry, joined with names for the audit view
type VoteRecord struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	CandidateID   string    `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	VotedAt       time.Time `json:"voted_at"`
	IPHash        *string   `json:"-"` // Never expose in JSON
	UserAgent     *string   `json:"-"` // Never expose in JSON
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
