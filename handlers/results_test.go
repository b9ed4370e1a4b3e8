// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Hudson5577/Hackathon-2025/auth"
	"github.com/Hudson5577/Hackathon-2025/models"
	"github.com/Hudson5577/Hackathon-2025/testutil"
)

// memoryCache is an in-process ResultsCache for tests
type memoryCache struct {
	mu          sync.Mutex
	gen         int64
	entries     map[int64]*models.ResultsResponse
	gets        int
	sets        int
	invalidates int
	failGen     bool

	// Optional hooks, called before the operation takes the lock
	onGet func()
	onSet func()
}

func (c *memoryCache) Generation(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGen {
		return 0, errors.New("cache down")
	}
	return c.gen, nil
}

func (c *memoryCache) GetResults(ctx context.Context, gen int64) (*models.ResultsResponse, error) {
	if c.onGet != nil {
		c.onGet()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	return c.entries[gen], nil
}

func (c *memoryCache) SetResults(ctx context.Context, gen int64, res *models.ResultsResponse) error {
	if c.onSet != nil {
		c.onSet()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.entries == nil {
		c.entries = make(map[int64]*models.ResultsResponse)
	}
	c.entries[gen] = res
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidates++
	c.gen++
	return nil
}

func (c *memoryCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

func castTestVotes(t *testing.T, handler *VotingHandler, votes map[string]int) {
	t.Helper()

	cfg := testutil.GetTestConfig()
	n := 0
	for candidateID, count := range votes {
		for i := 0; i < count; i++ {
			n++
			voter := testutil.CreateTestUser(t, handler.db, "voter-"+auth.NewID()[:8], "pw", auth.RoleVoter)
			w := httptest.NewRecorder()
			handler.Vote(w, testutil.AuthedRequest(t, cfg, voter, "POST", "/api/vote", models.VoteRequest{CandidateID: candidateID}))
			if w.Code != http.StatusOK {
				t.Fatalf("vote %d failed: %d %s", n, w.Code, w.Body.String())
			}
		}
	}
}

func getTestResults(t *testing.T, handler *ResultsHandler) models.ResultsResponse {
	t.Helper()

	req := testutil.MakeRequest("GET", "/api/results", nil, nil)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func TestGetResultsNoVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg, nil)

	t.Run("no candidates", func(t *testing.T) {
		resp := getTestResults(t, handler)
		if resp.Results == nil || len(resp.Results) != 0 {
			t.Errorf("Expected empty results array, got %v", resp.Results)
		}
		if resp.TotalVotes != 0 {
			t.Errorf("Expected total_votes 0, got %d", resp.TotalVotes)
		}
	})

	t.Run("candidates without votes", func(t *testing.T) {
		testutil.CreateTestCandidate(t, db, "Team Beta")
		testutil.CreateTestCandidate(t, db, "Team Alpha")

		resp := getTestResults(t, handler)
		if len(resp.Results) != 2 {
			t.Fatalf("Expected 2 results, got %d", len(resp.Results))
		}
		if resp.Results[0].Name != "Team Alpha" {
			t.Errorf("Ties should order by name, got %s first", resp.Results[0].Name)
		}
		for _, r := range resp.Results {
			if r.Percentage != 0 {
				t.Errorf("Expected 0%% for %s, got %v", r.Name, r.Percentage)
			}
		}
	})
}

func TestGetResultsPercentages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	votingHandler := NewVotingHandler(db, cfg, nil)
	resultsHandler := NewResultsHandler(db, cfg, nil)

	alpha := testutil.CreateTestCandidate(t, db, "Team Alpha")
	beta := testutil.CreateTestCandidate(t, db, "Team Beta")
	gamma := testutil.CreateTestCandidate(t, db, "Team Gamma")

	castTestVotes(t, votingHandler, map[string]int{alpha: 1, beta: 1, gamma: 1})

	resp := getTestResults(t, resultsHandler)
	if resp.TotalVotes != 3 {
		t.Errorf("Expected total_votes 3, got %d", resp.TotalVotes)
	}

	sum := 0.0
	for _, r := range resp.Results {
		if r.Percentage != 33.33 {
			t.Errorf("Expected 33.33%% for %s, got %v", r.Name, r.Percentage)
		}
		sum += r.Percentage
	}
	if math.Abs(sum-100) > 0.05 {
		t.Errorf("Percentages should sum to ~100, got %v", sum)
	}
}

func TestGetResultsOrdering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	votingHandler := NewVotingHandler(db, cfg, nil)
	resultsHandler := NewResultsHandler(db, cfg, nil)

	testutil.CreateTestCandidate(t, db, "Team Alpha")
	beta := testutil.CreateTestCandidate(t, db, "Team Beta")

	castTestVotes(t, votingHandler, map[string]int{beta: 1})

	resp := getTestResults(t, resultsHandler)
	if len(resp.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(resp.Results))
	}

	first, second := resp.Results[0], resp.Results[1]
	if first.Name != "Team Beta" || first.VotesCount != 1 || first.Percentage != 100 {
		t.Errorf("Unexpected leader: %+v", first)
	}
	if second.Name != "Team Alpha" || second.VotesCount != 0 || second.Percentage != 0 {
		t.Errorf("Unexpected runner-up: %+v", second)
	}
	if first.ProjectTitle != "Team Beta Project" {
		t.Errorf("Expected project title, got %q", first.ProjectTitle)
	}
	if resp.TotalVotes != 1 {
		t.Errorf("Expected total_votes 1, got %d", resp.TotalVotes)
	}
}

func TestGetResultsCache(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	rc := &memoryCache{}
	votingHandler := NewVotingHandler(db, cfg, rc)
	resultsHandler := NewResultsHandler(db, cfg, rc)

	alpha := testutil.CreateTestCandidate(t, db, "Team Alpha")

	first := getTestResults(t, resultsHandler)
	if rc.sets != 1 {
		t.Fatalf("Expected cache fill on miss, got %d sets", rc.sets)
	}
	if first.TotalVotes != 0 {
		t.Errorf("Expected 0 votes, got %d", first.TotalVotes)
	}

	// Served from cache even if the store changes underneath
	if _, err := db.Exec(`UPDATE candidates SET votes_count = 7 WHERE id = $1`, alpha); err != nil {
		t.Fatalf("Failed to update tally: %v", err)
	}
	cached := getTestResults(t, resultsHandler)
	if cached.Results[0].VotesCount != 0 {
		t.Errorf("Expected cached tally 0, got %d", cached.Results[0].VotesCount)
	}
	if rc.sets != 1 {
		t.Errorf("Cache hit should not refill, got %d sets", rc.sets)
	}
	if _, err := db.Exec(`UPDATE candidates SET votes_count = 0 WHERE id = $1`, alpha); err != nil {
		t.Fatalf("Failed to restore tally: %v", err)
	}

	// A vote drops the cached results
	castTestVotes(t, votingHandler, map[string]int{alpha: 1})
	if rc.invalidates != 1 {
		t.Errorf("Expected 1 invalidation, got %d", rc.invalidates)
	}

	fresh := getTestResults(t, resultsHandler)
	if fresh.TotalVotes != 1 || fresh.Results[0].VotesCount != 1 {
		t.Errorf("Expected fresh results after vote, got %+v", fresh)
	}
}

func TestGetResultsCacheFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	rc := &memoryCache{failGen: true}
	handler := NewResultsHandler(db, cfg, rc)

	testutil.CreateTestCandidate(t, db, "Team Alpha")

	resp := getTestResults(t, handler)
	if len(resp.Results) != 1 {
		t.Errorf("Expected results from the store when cache fails, got %d", len(resp.Results))
	}
	if rc.setCount() != 0 {
		t.Error("Cache must be bypassed when its generation is unknown")
	}
}

// TestGetResultsIgnoresStaleFill verifies that a load which read the store
// before a vote committed cannot hide that vote once it fills the cache
func TestGetResultsIgnoresStaleFill(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	rc := &memoryCache{}
	votingHandler := NewVotingHandler(db, cfg, rc)
	resultsHandler := NewResultsHandler(db, cfg, rc)

	alpha := testutil.CreateTestCandidate(t, db, "Team Alpha")
	voter := testutil.CreateTestUser(t, db, "alice", "pw", auth.RoleVoter)

	fillStarted := make(chan struct{})
	releaseFill := make(chan struct{})
	var once sync.Once
	rc.onSet = func() {
		once.Do(func() {
			close(fillStarted)
			<-releaseFill
		})
	}

	readerDone := make(chan struct{})
	reader := httptest.NewRecorder()
	go func() {
		defer close(readerDone)
		resultsHandler.GetResults(reader, testutil.MakeRequest("GET", "/api/results", nil, nil))
	}()

	// The reader has loaded zero votes and is about to fill the cache
	<-fillStarted

	w := httptest.NewRecorder()
	votingHandler.Vote(w, testutil.AuthedRequest(t, cfg, voter, "POST", "/api/vote", models.VoteRequest{CandidateID: alpha}))
	testutil.AssertStatus(t, w, http.StatusOK)

	close(releaseFill)
	<-readerDone
	testutil.AssertStatus(t, reader, http.StatusOK)

	resp := getTestResults(t, resultsHandler)
	if resp.TotalVotes != 1 {
		t.Errorf("Expected total_votes 1 after committed vote, got %d", resp.TotalVotes)
	}
	if len(resp.Results) != 1 || resp.Results[0].VotesCount != 1 {
		t.Errorf("Expected tally 1 after committed vote, got %+v", resp.Results)
	}
}

// TestGetResultsSurvivesCancelledCaller verifies that a caller going away
// does not fail the load shared with other callers
func TestGetResultsSurvivesCancelledCaller(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	rc := &memoryCache{}
	handler := NewResultsHandler(db, cfg, rc)

	testutil.CreateTestCandidate(t, db, "Team Alpha")

	entered := make(chan struct{}, 4)
	release := make(chan struct{})
	rc.onGet = func() {
		entered <- struct{}{}
		<-release
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		req := testutil.MakeRequest("GET", "/api/results", nil, nil).WithContext(firstCtx)
		handler.GetResults(httptest.NewRecorder(), req)
	}()
	<-entered

	second := httptest.NewRecorder()
	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		handler.GetResults(second, testutil.MakeRequest("GET", "/api/results", nil, nil))
	}()

	// Give the second request time to join the in-flight load
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	<-firstDone
	close(release)
	<-secondDone

	testutil.AssertStatus(t, second, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, second, &resp)
	if len(resp.Results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(resp.Results))
	}
	if rc.setCount() == 0 {
		t.Error("Expected the shared load to complete and fill the cache")
	}
}

func TestLoadResultsTotalMatchesLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	votingHandler := NewVotingHandler(db, cfg, nil)

	res, err := loadResults(context.Background(), db)
	if err != nil {
		t.Fatalf("loadResults() error = %v", err)
	}
	if res.TotalVotes != 0 || res.Results == nil || len(res.Results) != 0 {
		t.Errorf("Expected empty results with zero total, got %+v", res)
	}

	alpha := testutil.CreateTestCandidate(t, db, "Team Alpha")
	beta := testutil.CreateTestCandidate(t, db, "Team Beta")
	castTestVotes(t, votingHandler, map[string]int{alpha: 2, beta: 1})

	res, err = loadResults(context.Background(), db)
	if err != nil {
		t.Fatalf("loadResults() error = %v", err)
	}

	sum := 0
	for _, r := range res.Results {
		sum += r.VotesCount
	}
	if res.TotalVotes != 3 || sum != res.TotalVotes {
		t.Errorf("Expected total_votes 3 matching tallies, got total=%d sum=%d", res.TotalVotes, sum)
	}
	if got := testutil.LedgerCount(t, db, ""); got != res.TotalVotes {
		t.Errorf("total_votes %d does not match ledger %d", res.TotalVotes, got)
	}
}
