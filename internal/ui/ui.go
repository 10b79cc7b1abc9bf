package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/jukebox/internal/jukebox"
	"github.com/desertthunder/jukebox/internal/models"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	listChrome    = 12
)

// Pane identifies which part of the screen has focus.
type Pane int

const (
	SearchPane Pane = iota
	ResultsPane
	QueuePane
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	jukebox   *jukebox.Jukebox
	states    <-chan models.State
	release   func()
	playerURL string
	focus     Pane
	input     textinput.Model
	results   list.Model
	queue     list.Model
	state     models.State
	searching bool
	width     int
	height    int
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model driving jb. playerURL is shown so the user knows where the video plays.
func NewModel(ctx context.Context, jb *jukebox.Jukebox, playerURL string) *Model {
	input := textinput.New()
	input.Placeholder = "Search music videos"
	input.Prompt = "/ "
	input.CharLimit = 200
	input.Focus()

	states, release := jb.Watch()

	m := &Model{
		ctx:       ctx,
		jukebox:   jb,
		states:    states,
		release:   release,
		playerURL: playerURL,
		focus:     SearchPane,
		input:     input,
		results:   newVideoList("Results"),
		queue:     newVideoList("Up next"),
		width:     defaultWidth,
		height:    defaultHeight,
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.apply(jb.State())
	return m
}

// Close releases the jukebox watch.
func (m *Model) Close() {
	m.release()
}

// Init starts the cursor blink and the watch loop.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.focus == SearchPane {
			return m.handleSearchKeys(msg)
		}
		return m.handleListKeys(msg)

	case Msg:
		switch msg.kind {
		case MsgSearchResolved:
			res := msg.data.(searchResult)
			m.searching = false
			if res.err == nil {
				m.results.Title = fmt.Sprintf("Results for %q", res.query)
			}
			return m, nil
		case MsgStateChanged:
			m.apply(msg.data.(models.State))
			return m, m.waitForChange()
		case MsgWatchClosed:
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

// View renders the screen.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Jukebox"))
	b.WriteString("\n")
	b.WriteString(m.renderNowPlaying())
	b.WriteString("\n")

	if m.state.Alert != "" {
		b.WriteString(styles.err.Render(m.state.Alert))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	if m.searching {
		b.WriteString(" ")
		b.WriteString(styles.warn.Render("searching..."))
	}
	b.WriteString("\n\n")

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPane(ResultsPane, m.results, "No results"),
		m.renderPane(QueuePane, m.queue, "Queue is empty"),
	)
	b.WriteString(panes)
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return b.String()
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		query := m.input.Value()
		if strings.TrimSpace(query) == "" {
			return m, nil
		}
		m.searching = true
		m.setFocus(ResultsPane)
		return m, m.search(query)
	case "esc":
		m.setFocus(ResultsPane)
		return m, nil
	case "tab":
		m.setFocus(ResultsPane)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.setFocus(SearchPane)
		return m, textinput.Blink
	case "tab":
		if m.focus == ResultsPane {
			m.setFocus(QueuePane)
		} else {
			m.setFocus(SearchPane)
		}
		return m, nil
	case "esc":
		m.jukebox.DismissAlert()
		return m, nil
	case "n":
		m.jukebox.Skip()
		return m, nil
	case "a":
		if v, ok := selected(m.results); ok && m.focus == ResultsPane {
			_ = m.jukebox.Enqueue(v)
		}
		return m, nil
	case "p":
		var l list.Model
		if m.focus == ResultsPane {
			l = m.results
		} else {
			l = m.queue
		}
		if v, ok := selected(l); ok {
			_ = m.jukebox.PlayNow(v)
		}
		return m, nil
	case "x", "d":
		if _, ok := selected(m.queue); ok && m.focus == QueuePane {
			m.jukebox.Remove(m.queue.Index())
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case SearchPane:
		m.input, cmd = m.input.Update(msg)
	case ResultsPane:
		m.results, cmd = m.results.Update(msg)
	case QueuePane:
		m.queue, cmd = m.queue.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(p Pane) {
	m.focus = p
	if p == SearchPane {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// apply copies a jukebox snapshot into the lists, keeping cursors in range.
func (m *Model) apply(s models.State) {
	if s.Version < m.state.Version {
		return
	}
	m.state = s
	m.results.SetItems(videoItems(s.Results))
	m.queue.SetItems(videoItems(s.Queue))

	if n := len(s.Queue); m.queue.Index() >= n && n > 0 {
		m.queue.Select(n - 1)
	}
}

func (m *Model) resize() {
	w := max((m.width-4)/2, 20)
	h := max(m.height-listChrome, 5)
	m.results.SetSize(w, h)
	m.queue.SetSize(w, h)
	m.input.Width = max(m.width-6, 20)
}

func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.jukebox.Search(m.ctx, query)
		return searchResolvedMsg(query, results, err)
	}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.states
		if !ok {
			return watchClosedMsg()
		}
		return stateChangedMsg(s)
	}
}

func (m *Model) renderNowPlaying() string {
	if !m.state.Playing() {
		return styles.help.Render(fmt.Sprintf("Nothing playing. Player page: %s", m.playerURL))
	}

	title := m.state.Title
	if title == "" {
		title = m.state.Current
	}
	return styles.ok.Render("▶ "+title) + styles.help.Render("  "+m.playerURL)
}

func (m *Model) renderPane(p Pane, l list.Model, empty string) string {
	style := styles.pane
	if m.focus == p {
		style = styles.active
	}

	body := l.View()
	if len(l.Items()) == 0 {
		body = styles.title.Render(l.Title) + "\n" + styles.help.Render(empty)
	}
	return style.Width(max((m.width-4)/2, 20)).Render(body)
}

func selected(l list.Model) (models.Video, bool) {
	item, ok := l.SelectedItem().(videoItem)
	if !ok {
		return models.Video{}, false
	}
	return item.video, true
}
