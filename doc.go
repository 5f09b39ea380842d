// Package navguard assembles a client-application shell: module dependency
// names, ordered config/run callbacks, named navigation states, a periodic
// token-refresh loop, and a navigation guard that allows, blocks, or
// redirects every transition based on the target state's authentication flag
// and its ordered claim requirements.
//
// The host framework (router, browser-like location, document) is an
// external collaborator supplied through small interfaces at build time.
// Shell methods are safe to call from multiple goroutines after
// initialization through [Builder.Build].
//
// # Architecture boundaries
//
// navguard is the public surface. It exposes [Builder], [Shell], [Guard],
// [StateAnnotator], [Config], and value types (State, ClaimRequirement,
// MetricsSnapshot, etc.). Token storage, refresh scheduling, and payload
// decoding live in the token subpackage; audit dispatching lives under
// internal/ and is never exported directly.
//
// # What this package must NOT do
//
//   - Implement routing, view rendering, or dependency injection; those
//     belong to the host framework behind [Router], [Location], [Document].
//   - Perform I/O outside of Shell.Run and the refresh loop (construction
//     via Builder is allocation-only until Build).
//   - Verify token signatures or issue credentials; the shell only reads
//     expiry and claims from what the refresh endpoint returns.
package navguard
