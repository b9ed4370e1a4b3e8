// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Hudson5577/Hackathon-2025/cliparse"
	"github.com/Hudson5577/Hackathon-2025/middleware"
	"github.com/Hudson5577/Hackathon-2025/models"
)

const resultsLoadTimeout = 10 * time.Second

type ResultsHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	cache ResultsCache
	sf    singleflight.Group
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config, cache ResultsCache) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg, cache: cache}
}

// GetResults handles GET /api/results
// Concurrent misses share one aggregation query.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := "results"
	useCache := h.cache != nil
	var gen int64
	if useCache {
		g, err := h.cache.Generation(ctx)
		if err != nil {
			slog.Warn("results cache generation read failed", "error", err)
			useCache = false
		} else {
			gen = g
			key = "results:" + strconv.FormatInt(g, 10)
		}
	}

	// The shared load outlives any single caller
	ch := h.sf.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resultsLoadTimeout)
		defer cancel()
		return h.results(loadCtx, useCache, gen)
	})

	select {
	case <-ctx.Done():
		slog.Info("results request cancelled", "error", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			slog.Error("failed to load results", "error", res.Err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, res.Val.(*models.ResultsResponse))
	}
}

// results serves generation gen from the cache when possible and refills
// it on a miss.
func (h *ResultsHandler) results(ctx context.Context, useCache bool, gen int64) (*models.ResultsResponse, error) {
	if useCache {
		cached, err := h.cache.GetResults(ctx, gen)
		if err != nil {
			slog.Warn("results cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	res, err := loadResults(ctx, h.db)
	if err != nil {
		return nil, err
	}

	if useCache {
		if err := h.cache.SetResults(ctx, gen, res); err != nil {
			slog.Warn("results cache write failed", "error", err)
		}
	}
	return res, nil
}

// loadResults aggregates tallies ordered by votes desc, name asc.
// Percentages are shares of the summed tallies rounded to two places.
// One statement reads tallies and the ledger count from the same snapshot.
func loadResults(ctx context.Context, conn *sql.DB) (*models.ResultsResponse, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT c.id, c.name, c.project_title, c.votes_count,
		       (SELECT COUNT(*) FROM votes) AS total_votes
		FROM candidates c
		ORDER BY c.votes_count DESC, c.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tallies: %w", err)
	}
	defer rows.Close()

	// No candidates means no ledger rows either
	total := 0
	results := []models.CandidateResult{}
	sum := 0
	for rows.Next() {
		var c models.CandidateResult
		if err := rows.Scan(&c.ID, &c.Name, &c.ProjectTitle, &c.VotesCount, &total); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		sum += c.VotesCount
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tallies: %w", err)
	}

	if sum > 0 {
		for i := range results {
			pct := float64(results[i].VotesCount) / float64(sum) * 100
			results[i].Percentage = math.Round(pct*100) / 100
		}
	}

	return &models.ResultsResponse{Results: results, TotalVotes: total}, nil
}
