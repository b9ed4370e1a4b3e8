// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# Authentication

RequireAuth verifies the "Authorization: Bearer <token>" header and stores
the claims in the request context; RequireAdmin additionally demands the
admin role and answers 403 otherwise:

	mux.HandleFunc("POST /api/vote", middleware.RequireAuth(tokens, h.Vote))
	claims, _ := middleware.ClaimsFromContext(r.Context())

# CORS Middleware

	server := http.Server{Handler: middleware.CORS(mux)}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	err := middleware.ParseJSONBody(r, &req)

Bodies are capped at 1 MiB.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Used for the hashed IP stored with each ledger entry.
*/
package middleware
