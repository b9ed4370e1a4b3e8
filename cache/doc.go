// Package cache keeps a Redis copy of the election results.
//
// The cache is optional. Handlers treat a nil cache as disabled and
// never fail a request because Redis is unavailable.
package cache
