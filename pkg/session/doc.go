// Package session provides opaque login tokens and the Redis-backed session
// store behind them.
//
// A session maps `user:login:<token>` to the JSON-serialized identity of the
// logged-in user. The token is the sole credential for resuming an identity:
// it is a 32-character random hex string with no decodable structure. Expiry
// is two-phase: login writes the session with a long initial TTL, and the
// auth middleware renews it with a short sliding idle window on every
// authenticated request. A renew against an already-expired key is a no-op,
// never a resurrection.
package session
