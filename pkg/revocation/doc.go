// Package revocation keeps the blacklist of refresh tokens revoked before
// their natural expiry.
//
// Entries are keyed by a fingerprint of the raw token, never the token itself,
// and live for exactly the token's issued lifetime. Two cache backends are
// provided: MemoryCache for a single process and RedisCache for a cache shared
// between processes.
package revocation
