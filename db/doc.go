// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the store, applies migrations and seeds startup data.

# Opening

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

Both SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq) are supported.
All queries use $N placeholders, which both drivers accept. SQLite is
limited to one open connection.

# Migrations

Migrations are embedded SQL files applied with goose on every Open.

# Tables

  - users: credentials, role, has_voted flag
  - candidates: candidate details and votes_count tally
  - votes: the ledger, one row per voter (UNIQUE user_id)

# Relationships

	users 1──0..1 votes *──1 candidates

# Seeding

	err := db.Seed(ctx, conn, db.SeedConfig{...})

Inserts the admin account if its username is free and four sample
candidates if the candidates table is empty.
*/
package db
