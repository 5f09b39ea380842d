// Package token holds the authentication credential model and the machinery
// that keeps it fresh: an in-memory store for the single current token, a
// change-detecting refresher driven by a fixed-interval loop, and decoding
// of refresh-endpoint responses (JSON payloads or compact JWTs).
//
// # Token format
//
// A token is an expiry marker plus an ordered claim list. Change detection
// compares expiry markers only; claims are never deep-compared. Absence of a
// token (anonymous) is a valid state, modeled by an empty [Store].
//
// # Architecture boundaries
//
// This package owns token state and refresh scheduling. What a token change
// or an unmet claim means for navigation is decided by the root package.
//
// # What this package must NOT do
//
//   - Import navguard (no import cycles).
//   - Verify token signatures; the refresh endpoint is the trust boundary
//     for its own response body.
//   - Retry or back off beyond the fixed refresh cadence.
package token
