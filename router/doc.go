// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Hackathon Voting API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, resultsCache)

Pass a nil cache to always compute results from the database.

# Endpoints

Health:

	GET /health
	GET /

Authentication (public):

	POST /api/login - Exchange credentials for a bearer token

Voting (requires Authorization: Bearer <token>):

	GET  /api/candidates - List candidates
	POST /api/vote       - Cast the caller's single vote
	GET  /api/results    - Tallies and percentages

Administration (requires an admin token):

	GET  /api/admin/users         - List users, newest first
	POST /api/admin/add_user      - Create a user
	POST /api/admin/reset_votes   - Clear the election
	POST /api/admin/add_candidate - Create a candidate
	GET  /api/admin/votes         - Ledger audit view

Every API route is wrapped with middleware.WithLogging. CORS is applied
around the whole mux by main.
*/
package router
