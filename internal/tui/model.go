package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is what keystrokes currently drive.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeConfirm
)

// Refresher controls a tab's reloads.
type Refresher interface {
	FireNow()
	DismissBanner()
}

type pendingAction struct {
	action Action
	id     string
	tab    int
}

// Model holds the dashboard state. Tabs are shared by pointer; every
// mutation happens on the bubbletea goroutine.
type Model struct {
	ctx        context.Context
	theme      themes.Theme
	keymap     KeyMap
	help       help.Model
	spinner    spinner.Model
	search     textinput.Model
	config     Config
	tabs       []*Tab
	refreshers []Refresher
	pending    *pendingAction
	flash      string
	flashErr   bool
	flashSeq   int
	unread     int
	active     int
	width      int
	height     int
	mode       Mode
	busy       bool
	spinning   bool
	quitting   bool
}

// NewModel builds the dashboard model. refreshers is parallel to tabs and
// may hold nil entries.
func NewModel(tabs []*Tab, refreshers []Refresher, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cfg.Theme.Title

	input := textinput.New()
	input.Placeholder = "Search..."
	input.Prompt = "/ "
	input.CharLimit = 100

	return Model{
		ctx:        cfg.Context,
		theme:      cfg.Theme,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		spinner:    s,
		search:     input,
		config:     cfg,
		tabs:       tabs,
		refreshers: refreshers,
		width:      cfg.Width,
		height:     cfg.Height,
		spinning:   true,
	}
}

// Init starts the spinner; data arrives from the refresh goroutines.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.working() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case recordsLoadedMsg:
		if tab := m.tab(msg.tab); tab != nil {
			tab.setRecords(msg.records, msg.pagination)
		}
		return m, nil

	case refreshStateMsg:
		if tab := m.tab(msg.tab); tab != nil {
			tab.state = msg.state
		}
		cmd := m.ensureSpinner()
		return m, cmd

	case unreadCountMsg:
		m.unread = msg.count
		return m, nil

	case newNotificationsMsg:
		n := msg.cur - msg.prev
		noun := "notification"
		if n != 1 {
			noun += "s"
		}
		cmd := m.setFlash(fmt.Sprintf("%d new %s", n, noun), false)
		return m, cmd

	case actionDoneMsg:
		m.busy = false
		if msg.err != nil {
			text := fmt.Sprintf("Failed to %s %s: %s", lower(msg.action.Verb), msg.action.Noun, common.Describe(msg.err))
			cmd := m.setFlash(text, true)
			return m, cmd
		}
		if r := m.refresher(msg.tab); r != nil {
			r.FireNow()
		}
		cmd := m.setFlash(msg.action.Success, false)
		return m, cmd

	case flashExpiredMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
			m.flashErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	}

	tab := m.current()
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(1)
	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(-1)
	case key.Matches(msg, m.keymap.Refresh):
		if r := m.refresher(m.active); r != nil {
			r.FireNow()
		}
	case key.Matches(msg, m.keymap.Dismiss):
		m.dismiss()
	case tab == nil:
		return m, nil
	case key.Matches(msg, m.keymap.Search):
		m.mode = ModeSearch
		m.search.SetValue(tab.search)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keymap.Up):
		tab.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		tab.moveCursor(1)
	case key.Matches(msg, m.keymap.PrevPage):
		tab.prevPage()
	case key.Matches(msg, m.keymap.NextPage):
		tab.nextPage()
	case key.Matches(msg, m.keymap.PrevColumn):
		tab.moveColumn(-1)
	case key.Matches(msg, m.keymap.NextColumn):
		tab.moveColumn(1)
	case key.Matches(msg, m.keymap.Sort):
		tab.sortColumn()
	case key.Matches(msg, m.keymap.CycleFilter):
		tab.cycleFilter()
	case key.Matches(msg, m.keymap.NextFilter):
		tab.nextDim()
	case key.Matches(msg, m.keymap.ClearFilter):
		tab.clearFilter()
	default:
		if action, ok := tab.actionFor(msg); ok {
			return m.requestAction(action)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeBrowse
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = ModeBrowse
		m.search.Blur()
		m.search.SetValue("")
		if tab := m.current(); tab != nil {
			tab.setSearch("")
		}
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if tab := m.current(); tab != nil && tab.search != m.search.Value() {
		tab.setSearch(m.search.Value())
	}
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		p := *m.pending
		m.pending = nil
		m.mode = ModeBrowse
		m.busy = true
		cmd := tea.Batch(m.runAction(p), m.ensureSpinner())
		return m, cmd
	case key.Matches(msg, m.keymap.Cancel):
		m.pending = nil
		m.mode = ModeBrowse
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// requestAction asks for confirmation. Only one action runs at a time.
func (m Model) requestAction(action Action) (tea.Model, tea.Cmd) {
	if m.busy {
		cmd := m.setFlash("Please wait for the current action to finish", true)
		return m, cmd
	}
	row, ok := m.current().Selected()
	if !ok {
		return m, nil
	}
	m.pending = &pendingAction{action: action, id: row.Key, tab: m.active}
	m.mode = ModeConfirm
	return m, nil
}

func (m Model) runAction(p pendingAction) tea.Cmd {
	parent := m.ctx
	timeout := m.config.ActionTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		err := p.action.Run(ctx, p.id)
		return actionDoneMsg{err: err, action: p.action, id: p.id, tab: p.tab}
	}
}

func (m *Model) switchTab(delta int) {
	if len(m.tabs) == 0 {
		return
	}
	m.active = ((m.active+delta)%len(m.tabs) + len(m.tabs)) % len(m.tabs)
}

// dismiss clears the refresh banner first, then any flash.
func (m *Model) dismiss() {
	if tab := m.current(); tab != nil && tab.state.Banner != nil {
		tab.state.Banner = nil
		if r := m.refresher(m.active); r != nil {
			r.DismissBanner()
		}
		return
	}
	m.flash = ""
	m.flashErr = false
}

func (m *Model) setFlash(text string, isErr bool) tea.Cmd {
	if text == "" {
		return nil
	}
	m.flashSeq++
	m.flash = text
	m.flashErr = isErr
	seq := m.flashSeq
	return tea.Tick(m.config.FlashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}

func (m *Model) ensureSpinner() tea.Cmd {
	if m.spinning || !m.working() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// working reports whether anything on screen is in flight.
func (m Model) working() bool {
	if m.busy {
		return true
	}
	for _, t := range m.tabs {
		if t.state.Loading || t.state.Refreshing {
			return true
		}
	}
	return false
}

func (m Model) current() *Tab {
	return m.tab(m.active)
}

func (m Model) tab(i int) *Tab {
	if i < 0 || i >= len(m.tabs) {
		return nil
	}
	return m.tabs[i]
}

func (m Model) refresher(i int) Refresher {
	if i < 0 || i >= len(m.refreshers) {
		return nil
	}
	return m.refreshers[i]
}

// Active returns the index of the visible tab.
func (m Model) Active() int {
	return m.active
}

// Mode returns the input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Busy reports whether a row action is running.
func (m Model) Busy() bool {
	return m.busy
}

// Flash returns the transient status line.
func (m Model) Flash() string {
	return m.flash
}

// Unread returns the unread notification count.
func (m Model) Unread() int {
	return m.unread
}
