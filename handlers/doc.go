// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Hackathon Voting API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Credential login and token issue
  - VotingHandler: Candidate listing and vote casting
  - ResultsHandler: Aggregated results with optional caching
  - AdminHandler: User and candidate management, election reset, ledger audit

Handlers are created via constructor functions:

	votingHandler := handlers.NewVotingHandler(db, cfg, resultsCache)

The cache argument may be nil; results are then always computed from the
database.

# Voting Flow

	POST /api/login → Login (returns bearer token)
	GET  /api/candidates → ListCandidates
	POST /api/vote → Vote (one per user)
	GET  /api/results → GetResults

A vote is one transaction: the user's has_voted flag is flipped from false
to true with a conditional update, a ledger row is inserted and the
candidate tally is incremented. If any step fails nothing is kept. Two
concurrent votes from the same user produce exactly one success.

# Reset

ResetVotes zeroes every tally, deletes the ledger and clears has_voted for
voters in one transaction. Admin accounts are left unchanged.

# Error Handling

All handlers return JSON errors via middleware.ErrorResponse:

	{"error": "Bad Request", "message": "You have already voted"}
*/
package handlers
