// Package epic is the HTTP client for the Earth-image backend.
//
// # Overview
//
// The backend owns all interaction with NASA's EPIC archive. It downloads the
// newest frame, stores it, and publishes a small JSON record describing it.
// This package only consumes that record:
//
//	GET {BASE}/api/latest   -> Record
//	GET {BASE}{image_local} -> image bytes
//
// BASE may be empty, which means same-origin. A terminal has no page origin,
// so relative URLs resolve against Options.Origin (default DefaultOrigin).
//
// # Errors
//
// Every failure collapses to *FetchError: DNS, connection refused, timeouts,
// 4xx/5xx and malformed bodies. There is no retry and no error
// classification; callers turn the message into view state.
//
//	rec, err := client.FetchLatest(ctx)
//	if err != nil {
//		store.Settle(ticket, epic.Record{}, err) // shows "API error: <message>"
//	}
package epic
