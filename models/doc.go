// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - LoginRequest: username, password
  - VoteRequest: candidate_id
  - AddUserRequest: username, password, role
  - AddCandidateRequest: name, description, team_members, project_title

# Response Types

  - LoginResponse: token, user
  - ResultsResponse: results, total_votes
  - MessageResponse / CreatedResponse
  - ErrorResponse: error, message

# Domain Types

  - User: account with role and has_voted flag
  - Candidate: candidate with running tally
  - VoteRecord: one ledger entry

Fields tagged json:"-" (password hash, ip hash, user agent) never leave
the server.
*/
package models
