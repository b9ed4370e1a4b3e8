// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Hudson5577/Hackathon-2025/models"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ResultsCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewResultsCache(rdb, ttl), mr
}

func sampleResults() *models.ResultsResponse {
	return &models.ResultsResponse{
		Results: []models.CandidateResult{
			{ID: "b", Name: "Team Beta", ProjectTitle: "EcoTracker", VotesCount: 3, Percentage: 75},
			{ID: "a", Name: "Team Alpha", ProjectTitle: "SmartCampus", VotesCount: 1, Percentage: 25},
		},
		TotalVotes: 4,
	}
}

func TestConnectRejectsBadURL(t *testing.T) {
	tests := []string{
		"",
		"http://localhost:6379",
		"redis://localhost:6379/notadb",
	}

	for _, url := range tests {
		if _, err := Connect(context.Background(), url); err == nil {
			t.Errorf("Connect(%q) expected error", url)
		}
	}
}

func TestConnectUnreachable(t *testing.T) {
	// Port 1 is never a redis server
	if _, err := Connect(context.Background(), "redis://127.0.0.1:1/0"); err == nil {
		t.Error("expected ping failure for unreachable server")
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := Connect(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	rdb.Close()
}

func TestGetResultsMiss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	if err != nil {
		t.Fatalf("Generation() error = %v", err)
	}
	if gen != 0 {
		t.Errorf("Expected initial generation 0, got %d", gen)
	}

	res, err := c.GetResults(ctx, gen)
	if err != nil {
		t.Fatalf("GetResults() error = %v", err)
	}
	if res != nil {
		t.Errorf("Expected nil on miss, got %+v", res)
	}
}

func TestSetAndGetResults(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	want := sampleResults()
	if err := c.SetResults(ctx, 0, want); err != nil {
		t.Fatalf("SetResults() error = %v", err)
	}

	got, err := c.GetResults(ctx, 0)
	if err != nil {
		t.Fatalf("GetResults() error = %v", err)
	}
	if got == nil {
		t.Fatal("Expected cached results")
	}
	if got.TotalVotes != want.TotalVotes || len(got.Results) != len(want.Results) {
		t.Fatalf("Unexpected results: %+v", got)
	}
	for i := range want.Results {
		if got.Results[i] != want.Results[i] {
			t.Errorf("Results[%d] = %+v, want %+v", i, got.Results[i], want.Results[i])
		}
	}

	if ttl := mr.TTL(resultsKey(0)); ttl != time.Minute {
		t.Errorf("Expected TTL %v, got %v", time.Minute, ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	got, err = c.GetResults(ctx, 0)
	if err != nil {
		t.Fatalf("GetResults() after expiry error = %v", err)
	}
	if got != nil {
		t.Error("Expected miss after TTL expiry")
	}
}

func TestInvalidateAdvancesGeneration(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := c.SetResults(ctx, 0, sampleResults()); err != nil {
		t.Fatalf("SetResults() error = %v", err)
	}

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	gen, err := c.Generation(ctx)
	if err != nil {
		t.Fatalf("Generation() error = %v", err)
	}
	if gen != 1 {
		t.Fatalf("Expected generation 1, got %d", gen)
	}

	res, err := c.GetResults(ctx, gen)
	if err != nil {
		t.Fatalf("GetResults() error = %v", err)
	}
	if res != nil {
		t.Error("Expected miss for the new generation")
	}

	// A fill computed before the write lands on the old generation
	if err := c.SetResults(ctx, 0, sampleResults()); err != nil {
		t.Fatalf("SetResults() error = %v", err)
	}
	res, err = c.GetResults(ctx, gen)
	if err != nil {
		t.Fatalf("GetResults() error = %v", err)
	}
	if res != nil {
		t.Error("Late fill of an old generation must not be visible")
	}
}

func TestGetResultsCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)

	if err := mr.Set(resultsKey(0), "not json"); err != nil {
		t.Fatalf("Failed to seed redis: %v", err)
	}

	if _, err := c.GetResults(context.Background(), 0); err == nil {
		t.Error("Expected decode error for corrupt entry")
	}
}
