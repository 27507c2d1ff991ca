// Package config loads epicview's TOML configuration.
//
// # Resolution order
//
// BASE, the prefix for every API and image request, is resolved once at
// startup:
//
//  1. a command-line flag (Overrides.APIBase)
//  2. api_base in ~/.config/epicview/config.toml
//  3. BuildAPIBase, set with -ldflags at build time
//  4. "" (same-origin)
//
// The resulting Config is an immutable value handed to constructors. No
// package-level state is consulted after Load returns.
//
// # TOML format
//
//	api_base = "https://epic-backend.example"
//	origin = "http://127.0.0.1:5000"
//	request_timeout = "10s"
//	refresh_every = "3h"
//	discard_stale = false
//	listen = "127.0.0.1:8080"
//	log_file = "~/.local/state/epicview/epicview.log"
//
// Every field is optional. A missing file is not an error.
//
// # Defaults
//
//   - origin: http://127.0.0.1:5000, the backend's local dev address. Relative
//     URLs resolve against it when BASE is empty or relative.
//   - request_timeout: none; a hung backend keeps the view loading.
//   - refresh_every: off.
//   - listen: 127.0.0.1:8080 (only used with -serve).
//   - log_file: ~/.local/state/epicview/epicview.log
package config
