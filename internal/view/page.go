// Package view turns a state.View into a render model shared by the terminal
// and HTML front ends. Everything here is a pure function of its inputs.
package view

import (
	"github.com/five82/epicview/internal/epic"
	"github.com/five82/epicview/internal/state"
)

const (
	Title       = "NASA EPIC — Live Earth Image"
	LoadingText = "Loading latest Earth data…"
	ErrorPrefix = "API error: "
	ImageAlt    = "EPIC Earth"
	LinkText    = "View original on NASA EPIC"
	RefreshText = "Refresh"

	captionSeparator = " — "
)

// Content is the ready-state branch.
type Content struct {
	Title    string
	DateLine string
	ImageSrc string
	ImageAlt string
	LinkHref string
	LinkText string
}

// Page has exactly one populated branch, selected by Phase.
type Page struct {
	Phase   state.Phase
	Loading string
	Error   string
	Content Content
}

// IsLoading, IsFailed and IsReady select the branch in templates.
func (p Page) IsLoading() bool { return p.Phase == state.PhaseLoading }
func (p Page) IsFailed() bool  { return p.Phase == state.PhaseFailed }
func (p Page) IsReady() bool   { return p.Phase == state.PhaseReady }

// DateLine renders the record date, followed by the caption separator and
// caption when one is present.
func DateLine(rec epic.Record) string {
	if !rec.HasCaption() {
		return rec.Date
	}
	return rec.Date + captionSeparator + rec.Caption
}

// Build maps v to a Page. The error branch short-circuits before any record
// field is read.
func Build(v state.View, base string) Page {
	switch v.Phase {
	case state.PhaseFailed:
		return Page{Phase: state.PhaseFailed, Error: ErrorPrefix + v.Message}
	case state.PhaseReady:
		return Page{
			Phase: state.PhaseReady,
			Content: Content{
				Title:    Title,
				DateLine: DateLine(v.Record),
				ImageSrc: epic.ImageSource(base, v.Record.ImageLocal),
				ImageAlt: ImageAlt,
				LinkHref: v.Record.ImageURL,
				LinkText: LinkText,
			},
		}
	default:
		return Page{Phase: state.PhaseLoading, Loading: LoadingText}
	}
}
