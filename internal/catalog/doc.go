// Package catalog implements the remote movie-catalog HTTP client.
//
// The client wraps the TMDB v3 API: popular, trending, full-text search,
// and the per-movie detail/credits/similar/videos lookups. Every response
// shape is normalized into [models.Movie] before leaving this package, so no
// other component ever sees raw API payloads.
//
// Failure surface:
//   - [shared.ErrMissingAPIKey] before any request when no credential is configured
//   - [shared.ErrAPIRequest] for transport failures and non-2xx statuses
//   - [shared.ErrDecode] for unexpected response shapes
//
// Requests are throttled with a golang.org/x/time/rate limiter to stay under
// the catalog's rate limits.
package catalog
