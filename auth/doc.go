// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential hashing, claim tokens and ID generation.

# Passwords

Credentials are stored as bcrypt hashes:

	hash, err := auth.HashPassword(plain)
	err = auth.CheckPassword(hash, plain) // ErrInvalidCredentials on mismatch

# Claim Tokens

A TokenManager signs HS256 JWTs carrying user id, username, role and the
has_voted flag as it was at login:

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	token, expiresAt, err := tokens.Issue(user.ID, user.Username, user.Role, user.HasVoted)
	claims, err := tokens.Verify(token) // ErrInvalidToken or ErrExpiredToken

There is no server-side session. Every call re-verifies signature and expiry.
The has_voted claim is a snapshot; the store stays authoritative.

# Bearer Header

	token, err := auth.BearerToken(r.Header.Get("Authorization"))

# IDs and IP Hashing

	id := auth.NewID()              // UUIDv4 string
	hash := auth.HashIP(ip, salt)   // 16 hex chars of HMAC-SHA256
*/
package auth
