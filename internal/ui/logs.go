package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/epicview/internal/logtail"
)

// logFetchLimit caps how many trailing lines the log view reads.
const logFetchLimit = 500

// logView holds log-overlay state.
type logView struct {
	visible bool
	lines   []string
	err     string
}

type logsMsg struct {
	lines []string
	err   error
}

func (l *logView) apply(msg logsMsg) {
	if msg.err != nil {
		l.err = msg.err.Error()
		l.lines = nil
		return
	}
	l.err = ""
	l.lines = msg.lines
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logsMsg{}
		}
		lines, err := logtail.Read(path, logFetchLimit)
		return logsMsg{lines: lines, err: err}
	}
}

// renderLogs renders the tail of the log file, newest at the bottom.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	var b strings.Builder
	title := "Logs"
	if m.logFile != "" {
		title += " " + truncateMiddle(m.logFile, maxInt(m.width-8, 20))
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.logs.err != "":
		b.WriteString(styles.DangerText.Render("log read failed: " + m.logs.err))
		b.WriteString("\n")
	case m.logFile == "":
		b.WriteString(styles.FaintText.Render("logging is disabled"))
		b.WriteString("\n")
	case len(m.logs.lines) == 0:
		b.WriteString(styles.FaintText.Render("no log lines yet"))
		b.WriteString("\n")
	default:
		lines := m.logs.lines
		if visible := m.height - 5; visible > 0 && len(lines) > visible {
			lines = lines[len(lines)-visible:]
		}
		for _, line := range lines {
			if m.width > 0 {
				line = truncate(line, m.width)
			}
			b.WriteString(m.logLineStyle(line).Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("l: back  r: refresh  q: quit"))
	return b.String()
}

func (m Model) logLineStyle(line string) lipgloss.Style {
	styles := m.theme.Styles()
	switch logtail.LevelOf(line) {
	case logtail.LevelError:
		return styles.DangerText
	case logtail.LevelWarn:
		return styles.WarningText
	case logtail.LevelDebug:
		return styles.FaintText
	default:
		return styles.Text
	}
}
