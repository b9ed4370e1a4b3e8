// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Environment variables are read first with caarlos0/env; CLI flags then
override them, using the environment values as their defaults.

# CLI Flags and Environment Variables

	PORT              → -p              (default 5000)
	DATABASE_URL      → -d              (default voting_system.db)
	DATABASE_TYPE     → -t              (sqlite or postgres)
	JWT_SECRET        → -jwt-secret     (required)
	TOKEN_TTL         → -token-ttl      (default 24h)
	IP_HASH_SALT      → -ip-salt        (default JWT_SECRET)
	ADMIN_USERNAME    → -admin-user     (default admin)
	ADMIN_PASSWORD    → -admin-password (required)
	SEED_CANDIDATES   → -seed-candidates
	REDIS_URL         → -redis
	RESULTS_CACHE_TTL → -cache-ttl      (default 30s)

# Validation

ParseFlags returns an error if:

  - the port is outside 1-65535
  - DATABASE_URL is empty or DATABASE_TYPE is not sqlite/postgres
  - JWT_SECRET or ADMIN_PASSWORD is missing
  - TOKEN_TTL is not positive
*/
package cliparse
