// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Hudson5577/Hackathon-2025/auth"
	"github.com/Hudson5577/Hackathon-2025/db"
)

var (
	errCandidateNotFound = errors.New("candidate not found")
	errAlreadyVoted      = errors.New("user has already voted")
	errUnknownUser       = errors.New("user does not exist")
)

type ballot struct {
	UserID      string
	CandidateID string
	IPHash      string
	UserAgent   string
}

// castVote records one vote in a single transaction: the has_voted flag
// flips false→true by compare-and-set, the ledger gains one row and the
// candidate tally grows by one. Any failure rolls back all three.
func castVote(ctx context.Context, conn *sql.DB, b ballot) (string, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin vote: %w", err)
	}
	defer tx.Rollback()

	var candidateExists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)
	`, b.CandidateID).Scan(&candidateExists)
	if err != nil {
		return "", fmt.Errorf("check candidate: %w", err)
	}
	if !candidateExists {
		return "", errCandidateNotFound
	}

	// Only one concurrent caller can win this update
	res, err := tx.ExecContext(ctx, `
		UPDATE users SET has_voted = $1 WHERE id = $2 AND has_voted = $3
	`, true, b.UserID, false)
	if err != nil {
		return "", fmt.Errorf("mark voted: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("mark voted: %w", err)
	}
	if n == 0 {
		var userExists bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)
		`, b.UserID).Scan(&userExists)
		if err != nil {
			return "", fmt.Errorf("check user: %w", err)
		}
		if !userExists {
			return "", errUnknownUser
		}
		return "", errAlreadyVoted
	}

	voteID := auth.NewID()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO votes (id, user_id, candidate_id, voted_at, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voteID, b.UserID, b.CandidateID, time.Now().UTC(), b.IPHash, b.UserAgent)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return "", errAlreadyVoted
		}
		return "", fmt.Errorf("insert vote: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE candidates SET votes_count = votes_count + 1 WHERE id = $1
	`, b.CandidateID)
	if err != nil {
		return "", fmt.Errorf("increment tally: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit vote: %w", err)
	}
	return voteID, nil
}

// resetElection empties the ledger, zeroes every tally and clears has_voted
// for voters. Admin accounts keep their flag.
func resetElection(ctx context.Context, conn *sql.DB) (int64, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE candidates SET votes_count = 0`); err != nil {
		return 0, fmt.Errorf("zero tallies: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM votes`)
	if err != nil {
		return 0, fmt.Errorf("clear ledger: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear ledger: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET has_voted = $1 WHERE role = $2
	`, false, auth.RoleVoter)
	if err != nil {
		return 0, fmt.Errorf("clear voter flags: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit reset: %w", err)
	}
	return deleted, nil
}
