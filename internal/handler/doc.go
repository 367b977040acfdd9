// Package handler implements the HTTP API for the stackmap diagram.
//
// # Routes
//
// The view endpoints under /api drive the single diagram session: layout
// switching, node drags, scenario selection, animation, reset, export and
// import. Edge payloads and the theme have their own endpoints. /events
// streams render commands over Server-Sent Events, /metrics exposes
// Prometheus metrics and / serves the embedded page.
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes.
// Error responses return JSON with {error, details} structure; the status is
// chosen from the error kind by statusFor.
package handler
