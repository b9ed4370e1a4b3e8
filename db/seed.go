// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Hudson5577/Hackathon-2025/auth"
	"github.com/Hudson5577/Hackathon-2025/models"
)

// SeedConfig controls startup seeding
type SeedConfig struct {
	AdminUsername  string
	AdminPassword  string
	SeedCandidates bool
}

// SampleCandidates are inserted when the candidates table is empty
var SampleCandidates = []models.AddCandidateRequest{
	{Name: "Team Alpha", Description: "AI-powered learning platform", TeamMembers: "John, Jane, Bob", ProjectTitle: "EduAI Assistant"},
	{Name: "Team Beta", Description: "Blockchain voting system", TeamMembers: "Alice, Charlie, David", ProjectTitle: "SecureVote"},
	{Name: "Team Gamma", Description: "Environmental monitoring app", TeamMembers: "Eve, Frank, Grace", ProjectTitle: "EcoWatch"},
	{Name: "Team Delta", Description: "Healthcare chatbot", TeamMembers: "Henry, Iris, Jack", ProjectTitle: "MediBot"},
}

// Seed inserts the admin account if missing and, when enabled, the sample
// candidates if no candidate exists yet. Safe to call on every startup.
func Seed(ctx context.Context, db *sql.DB, cfg SeedConfig) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("admin username and password are required for seeding")
	}

	// Hash outside the transaction; bcrypt is slow
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var adminExists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)
	`, cfg.AdminUsername).Scan(&adminExists)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}

	if !adminExists {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (id, username, password_hash, role, has_voted, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, auth.NewID(), cfg.AdminUsername, hash, auth.RoleAdmin, false, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("insert admin user: %w", err)
		}
		slog.Info("seeded admin user", "username", cfg.AdminUsername)
	}

	if cfg.SeedCandidates {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&count); err != nil {
			return fmt.Errorf("count candidates: %w", err)
		}

		if count == 0 {
			now := time.Now().UTC()
			for _, c := range SampleCandidates {
				_, err = tx.ExecContext(ctx, `
					INSERT INTO candidates (id, name, description, team_members, project_title, votes_count, created_at)
					VALUES ($1, $2, $3, $4, $5, 0, $6)
				`, auth.NewID(), c.Name, c.Description, c.TeamMembers, c.ProjectTitle, now)
				if err != nil {
					return fmt.Errorf("insert sample candidate %q: %w", c.Name, err)
				}
			}
			slog.Info("seeded sample candidates", "count", len(SampleCandidates))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}
