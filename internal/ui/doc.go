// Package ui provides the terminal front end for epicview, built on Bubble Tea.
//
// # Architecture Overview
//
// Model is a single view controller over a state.Store. It renders exactly one
// of three branches, chosen by the store phase:
//
//   - loading: a spinner and the loading text
//   - error: the API error message and a refresh control, never record fields
//   - content: title, date line, image preview, image URL and the link to the
//     original NASA image
//
// # Event Flow
//
//  1. Init begins a load and issues the fetch command
//  2. The refresh key calls Store.Begin inside Update, so the returned model is
//     already loading, then issues another fetch
//  3. fetchedMsg settles the store on the update loop
//  4. On a new image path a preview fetch runs; the decoded image is scaled
//     and drawn as half-block cells
//  5. With RefreshEvery set, ticks refresh from the ready state only
//
// In-flight fetches are never cancelled or de-duplicated. Whether an older
// response may overwrite a newer one is decided by the store policy.
//
// # Key Bindings
//
//   - r / F5: Refresh
//   - o: Open the original image in the browser
//   - l: Toggle the log view
//   - T: Cycle theme (saved to prefs)
//   - h / ?: Toggle help
//   - q, e or Ctrl+C: Quit
package ui
