// Package app is the composition root for epicview.
//
// # Overview
//
// Run wires configuration, logging, the epic client and the shared
// state.Store, then starts one of two front ends:
//
//  1. Load ~/.config/epicview/config.toml and apply command-line overrides
//  2. Build the logger (text to the log file for the TUI, JSON to stderr when serving)
//  3. Create the epic client for BASE and the store with the configured policy
//  4. Either run the Bubble Tea UI, or serve the HTML page with the
//     auto-refresh loop under an errgroup until the context is cancelled
//
// # Components
//
//   - app.go: Run, front-end selection and reverse-proxy target
//   - logging.go: logrus setup per front end
//   - refresh.go: auto-refresh loop for serve mode; reloads from ready only
package app
