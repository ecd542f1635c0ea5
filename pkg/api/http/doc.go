// Package http provides the HTTP API implementation.
//
// The HTTP server exposes endpoints for:
//   - The static greeting on /
//   - Uppercasing the text query parameter on /uppercase (GET and POST)
//   - Health checks
//   - Prometheus metrics
//
// Responses on the text routes are plain text.
package http
