package ui

import (
	"context"
	"errors"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/epicview/internal/epic"
	"github.com/five82/epicview/internal/prefs"
	"github.com/five82/epicview/internal/state"
)

// Backend is what the terminal view controller needs from the epic client.
type Backend interface {
	epic.LatestFetcher
	epic.ImageFetcher
	ImageURL(imageLocal string) string
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Store        *state.Store
	Backend      Backend
	Logger       logrus.FieldLogger
	LogFile      string
	PrefsPath    string
	ThemeName    string
	RefreshEvery time.Duration
	// OpenURL opens a link in a new browsing context. Nil disables the open key.
	OpenURL func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	store        *state.Store
	backend      Backend
	log          logrus.FieldLogger
	logFile      string
	prefsPath    string
	refreshEvery time.Duration
	openURL      func(string) error

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	width    int
	height   int
	showHelp bool
	notice   string

	// Data state
	view    state.View
	preview preview
	logs    logView
}

// New creates a new Bubble Tea model. The store is already Loading when New
// returns; the first fetch is issued by Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := opts.Store
	if store == nil {
		store = state.NewStore(state.LastWriteWins)
	}

	log := opts.Logger
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	theme := GetTheme(themeName)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Styles().AccentText

	return Model{
		ctx:          ctx,
		store:        store,
		backend:      opts.Backend,
		log:          log,
		logFile:      opts.LogFile,
		prefsPath:    opts.PrefsPath,
		refreshEvery: opts.RefreshEvery,
		openURL:      opts.OpenURL,
		theme:        theme,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		spinner:      sp,
		view:         store.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	ticket := m.store.Begin()
	cmds := []tea.Cmd{
		m.loadCmd(ticket),
		m.spinner.Tick,
	}
	if m.refreshEvery > 0 {
		cmds = append(cmds, tickCmd(m.refreshEvery))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.preview.render(previewBounds(m.width, m.height))
		return m, nil

	case fetchedMsg:
		return m.handleFetched(msg)

	case previewMsg:
		m.handlePreview(msg)
		return m, nil

	case logsMsg:
		m.logs.apply(msg)
		return m, nil

	case tickMsg:
		// Auto-refresh never retries a failure.
		var cmd tea.Cmd
		if m.store.Snapshot().Phase == state.PhaseReady {
			m, cmd = m.refresh()
		}
		return m, tea.Batch(cmd, tickCmd(m.refreshEvery))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.logs.visible {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		next, cmd := m.refresh()
		return next, cmd

	case key.Matches(msg, m.keys.Open):
		return m.openOriginal()

	case key.Matches(msg, m.keys.ToggleLogs):
		m.logs.visible = !m.logs.visible
		if m.logs.visible {
			return m, readLogsCmd(m.logFile)
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = m.theme.Styles().AccentText
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.log.WithError(err).Warn("save prefs failed")
			}
		}
		return m, nil
	}

	return m, nil
}

// refresh enters Loading before returning, so the next View already shows
// the loading branch. In-flight loads are left alone.
func (m Model) refresh() (Model, tea.Cmd) {
	ticket := m.store.Begin()
	m.view = m.store.Snapshot()
	m.notice = ""
	return m, m.loadCmd(ticket)
}

func (m Model) handleFetched(msg fetchedMsg) (tea.Model, tea.Cmd) {
	applied := m.store.Settle(msg.ticket, msg.record, msg.err)
	m.view = m.store.Snapshot()

	entry := m.log.WithField("seq", uint64(msg.ticket))
	switch {
	case !applied:
		entry.Debug("stale response discarded")
		return m, nil
	case msg.err != nil:
		entry.WithField("phase", state.PhaseFailed.String()).Warnf("latest record failed: %s", epic.Message(msg.err))
		return m, nil
	}
	entry.WithFields(logrus.Fields{"phase": state.PhaseReady.String(), "date": msg.record.Date}).Info("latest record loaded")

	local := m.view.Record.ImageLocal
	if local == "" || local == m.preview.path {
		return m, nil
	}
	m.preview = preview{path: local, loading: true}
	return m, m.previewCmd(local)
}

func (m *Model) handlePreview(msg previewMsg) {
	// A preview for a record that is no longer current is dropped.
	if msg.path != m.preview.path {
		return
	}
	m.preview.loading = false
	if msg.err != nil {
		m.preview.err = msg.err.Error()
		m.log.WithField("image_local", msg.path).Warnf("image preview failed: %v", msg.err)
		return
	}
	m.preview.img = msg.img
	m.preview.render(previewBounds(m.width, m.height))
}

func (m Model) openOriginal() (tea.Model, tea.Cmd) {
	if m.view.Phase != state.PhaseReady || m.view.Record.ImageURL == "" || m.openURL == nil {
		return m, nil
	}
	if err := m.openURL(m.view.Record.ImageURL); err != nil {
		m.notice = "could not open browser: " + err.Error()
		m.log.WithError(err).Warn("open original failed")
	}
	return m, nil
}

// Messages

type tickMsg time.Time

type fetchedMsg struct {
	ticket state.Ticket
	record epic.Record
	err    error
}

type previewMsg struct {
	path string
	img  image.Image
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadCmd(ticket state.Ticket) tea.Cmd {
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		if backend == nil {
			return fetchedMsg{ticket: ticket, err: &epic.FetchError{Message: "client is nil"}}
		}
		rec, err := backend.FetchLatest(ctx)
		return fetchedMsg{ticket: ticket, record: rec, err: err}
	}
}

func (m Model) previewCmd(path string) tea.Cmd {
	ctx := m.ctx
	backend := m.backend
	return func() tea.Msg {
		data, _, err := backend.FetchImage(ctx, path)
		if err != nil {
			return previewMsg{path: path, err: err}
		}
		img, err := decodeImage(data)
		return previewMsg{path: path, img: img, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	teaOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		teaOpts = append(teaOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, teaOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		// Cancelled from outside, e.g. SIGTERM.
		return nil
	}
	return err
}
