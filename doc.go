// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Hackathon Voting API server.

Registered judges log in, cast exactly one vote for a hackathon team and
view live results. Administrators manage users and candidates and can
reset the election.

# Starting the Server

The server reads environment variables (and an optional .env file), then
CLI flags:

	JWT_SECRET=... ADMIN_PASSWORD=... go run .

Or with flags:

	go run . -p 5000 -jwt-secret dev -admin-password admin123

# Configuration

Required settings:

  - JWT_SECRET (-jwt-secret): Token signing secret
  - ADMIN_PASSWORD (-admin-password): Password of the seeded admin

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): sqlite file path or postgres URL (default: voting_system.db)
  - TOKEN_TTL (-token-ttl): Token lifetime (default: 24h)
  - ADMIN_USERNAME (-admin-user): Seeded admin name (default: admin)
  - SEED_CANDIDATES (-seed-candidates): Seed sample teams (default: true)
  - REDIS_URL (-redis): Enable the results cache
  - RESULTS_CACHE_TTL (-cache-ttl): Cache lifetime (default: 30s)
  - IP_HASH_SALT (-ip-salt): Salt for ledger IP hashes (default: JWT secret)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, voting, results, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Bearer auth, CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Password hashing, signed claim tokens, IDs
  - db: Connection, goose migrations, seed data
  - cache: Redis-backed results cache
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
