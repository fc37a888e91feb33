// Package tui provides the Bubble Tea calculator interface.
package tui

import (
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuigral/internal/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model adapts a calculator session to Bubble Tea.
type Model struct {
	session *session.Session
	keys    keyMap
	help    help.Model

	width  int
	height int
}

// NewModel constructs the calculator TUI model.
func NewModel(s *session.Session) *Model {
	return &Model{
		session: s,
		keys:    keys,
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		for _, ev := range m.eventsFor(msg) {
			if err := m.session.Dispatch(ev); err != nil {
				log.Printf("commit %s: %v", m.session.Focus(), err)
			}
			if m.session.Exited() {
				return m, tea.Quit
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

// eventsFor translates a key press into session events. A paste arrives as
// one message carrying several runes.
func (m *Model) eventsFor(msg tea.KeyMsg) []session.Event {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return []session.Event{{Kind: session.EventCancel}}
	case key.Matches(msg, m.keys.Toggle):
		return []session.Event{{Kind: session.EventToggle}}
	case key.Matches(msg, m.keys.Confirm):
		return []session.Event{{Kind: session.EventConfirm}}
	case key.Matches(msg, m.keys.Backspace):
		return []session.Event{{Kind: session.EventBackspace}}
	case key.Matches(msg, m.keys.Left):
		return []session.Event{session.ArrowEvent(session.DirLeft)}
	case key.Matches(msg, m.keys.Right):
		return []session.Event{session.ArrowEvent(session.DirRight)}
	case key.Matches(msg, m.keys.Up):
		return []session.Event{session.ArrowEvent(session.DirUp)}
	case key.Matches(msg, m.keys.Down):
		return []session.Event{session.ArrowEvent(session.DirDown)}
	}
	switch msg.Type {
	case tea.KeySpace:
		return []session.Event{session.CharEvent(' ')}
	case tea.KeyRunes:
		events := make([]session.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, session.CharEvent(r))
		}
		return events
	default:
		return []session.Event{{Kind: session.EventOther}}
	}
}

func (m *Model) size() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}
