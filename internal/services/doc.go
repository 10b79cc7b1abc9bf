// Package services defines the [Searcher] interface for video search providers and implements it for the YouTube Data API.
//
// # YouTube Implementation
//
// [YouTubeService] issues GET {base}/search?part=snippet&type=video&q=...&key=...&maxResults=...
// and maps each result snippet to a [models.Video]. Queries get the configured suffix appended ("music video" by default).
//
// Outgoing requests are spaced by a [rate.Limiter] so rapid re-searches can't burn through the daily quota.
// There are no retries and no caching.
//
// # Error Handling
//
// Three failure kinds are kept distinguishable:
//   - [shared.ErrMissingCredentials] : no key, or the example config placeholder; no request is sent
//   - [*APIError] : the service answered with an error object (bad key, quota exceeded, ...)
//   - [shared.ErrTransport] : the request never completed or the body could not be decoded
package services
