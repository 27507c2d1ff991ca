// Package logtail reads the tail of epicview's own log file for the TUI log
// view.
//
// Read keeps a ring buffer of maxLines entries, so memory stays O(maxLines)
// regardless of file size and the file is scanned once:
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// LevelOf classifies a logrus line so the view can color it. Both the text
// formatter (level=warning) and the JSON formatter ("level":"warning") are
// understood.
package logtail
