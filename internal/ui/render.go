package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/epicview/internal/state"
	"github.com/five82/epicview/internal/view"
)

const previewUnavailable = "preview unavailable"

// renderMain renders the branch selected by the current phase, then the key
// hints. Exactly one branch is rendered.
func (m Model) renderMain() string {
	var body string
	switch m.view.Phase {
	case state.PhaseFailed:
		body = m.renderError()
	case state.PhaseReady:
		body = m.renderContent()
	default:
		body = m.renderLoading()
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(m.theme.Styles().WarningText.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderLoading() string {
	return m.spinner.View() + " " + m.theme.Styles().MutedText.Render(view.LoadingText)
}

// renderError never reads the record.
func (m Model) renderError() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render("❌ " + view.ErrorPrefix + m.view.Message))
	b.WriteString("\n\n")
	b.WriteString(m.refreshControl())
	return b.String()
}

func (m Model) renderContent() string {
	styles := m.theme.Styles()
	rec := m.view.Record

	var b strings.Builder
	b.WriteString(styles.Title.Render("🌍 " + view.Title))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Date: ") + styles.Text.Render(view.DateLine(rec)))
	b.WriteString("\n\n")
	b.WriteString(m.refreshControl())
	b.WriteString("\n\n")

	b.WriteString(m.renderPreview())
	b.WriteString("\n")

	imageURL := rec.ImageLocal
	if m.backend != nil {
		imageURL = m.backend.ImageURL(rec.ImageLocal)
	}
	urlWidth := 0
	if m.width > 0 {
		urlWidth = maxInt(m.width-8, 16)
	}
	b.WriteString(styles.FaintText.Render("Image: " + truncateMiddle(imageURL, urlWidth)))
	b.WriteString("\n")
	b.WriteString(hyperlink(rec.ImageURL, styles.LinkText.Render(view.LinkText)))
	return b.String()
}

func (m Model) refreshControl() string {
	return m.theme.Styles().Button.Render("[r] 🔄 " + view.RefreshText)
}

func (m Model) renderPreview() string {
	styles := m.theme.Styles()

	var inner string
	switch {
	case m.preview.loading:
		inner = styles.FaintText.Render("fetching image…")
	case m.preview.err != "":
		inner = styles.WarningText.Render(previewUnavailable)
	case len(m.preview.rows) > 0:
		inner = strings.Join(m.preview.rows, "\n")
	default:
		inner = styles.FaintText.Render(view.ImageAlt)
	}

	return styles.Card.
		BorderBackground(lipgloss.Color(m.theme.Background)).
		Render(inner)
}
