// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"

	"github.com/Hudson5577/Hackathon-2025/models"
)

// ResultsCache stores the aggregated results between writes.
//
// Entries are keyed by a generation that Invalidate advances. A reader
// takes the generation before loading from the store and fills only that
// generation, so a fill that races a write lands on a key no later reader
// asks for. GetResults returns nil, nil on a miss.
type ResultsCache interface {
	Generation(ctx context.Context) (int64, error)
	GetResults(ctx context.Context, gen int64) (*models.ResultsResponse, error)
	SetResults(ctx context.Context, gen int64, res *models.ResultsResponse) error
	Invalidate(ctx context.Context) error
}

// invalidateResults drops cached results after a write. Failures are logged only.
func invalidateResults(ctx context.Context, rc ResultsCache) {
	if rc == nil {
		return
	}
	if err := rc.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate results cache", "error", err)
	}
}
