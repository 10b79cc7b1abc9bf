package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/jukebox/internal/jukebox"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/player"
	"github.com/desertthunder/jukebox/internal/services"
	"github.com/desertthunder/jukebox/internal/shared"
	tu "github.com/desertthunder/jukebox/internal/testing"
)

func newTestModel(t *testing.T) (*Model, *jukebox.Jukebox, *tu.MockSearcher) {
	t.Helper()
	logger := shared.NewLogger(&bytes.Buffer{})
	adapter := player.New(player.WidgetFunc(func(player.Command) error { return nil }), logger)
	if err := adapter.Ready(nil); err != nil {
		t.Fatalf("Ready failed: %v", err)
	}

	searcher := &tu.MockSearcher{Results: map[string][]models.Video{
		"daft punk": tu.Videos("a", "b", "c"),
	}}
	jb := jukebox.New(jukebox.Opts{Searcher: searcher, Player: adapter, Logger: logger})
	t.Cleanup(jb.Close)

	m := NewModel(context.Background(), jb, "http://127.0.0.1:3000/player")
	t.Cleanup(m.Close)
	return m, jb, searcher
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(keyRunes(string(r)))
	}
}

// runSearch submits query and feeds the resolved search and the new state back into the model.
func runSearch(t *testing.T, m *Model, query string) {
	t.Helper()
	if m.focus != SearchPane {
		m.Update(keyRunes("/"))
	}
	typeText(m, query)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a search command")
	}
	m.Update(cmd())
	m.Update(stateChangedMsg(m.jukebox.State()))
}

func TestSearchFlow(t *testing.T) {
	t.Run("enter runs search and fills results", func(t *testing.T) {
		m, _, searcher := newTestModel(t)
		runSearch(t, m, "daft punk")

		if searcher.Calls() != 1 || searcher.Queries[0] != "daft punk" {
			t.Errorf("expected one search for daft punk, got %v", searcher.Queries)
		}
		if len(m.results.Items()) != 3 {
			t.Errorf("expected 3 results, got %d", len(m.results.Items()))
		}
		if m.focus != ResultsPane {
			t.Errorf("expected focus on results, got %d", m.focus)
		}
		if m.searching {
			t.Error("expected searching to be cleared")
		}
		if !strings.Contains(m.results.Title, "daft punk") {
			t.Errorf("expected query in results title, got %q", m.results.Title)
		}
	})

	t.Run("blank query does nothing", func(t *testing.T) {
		m, _, searcher := newTestModel(t)
		typeText(m, "   ")
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil || searcher.Calls() != 0 {
			t.Error("expected blank query to be ignored")
		}
	})

	t.Run("alert renders without quitting", func(t *testing.T) {
		m, _, searcher := newTestModel(t)
		searcher.Err = &services.APIError{StatusCode: 403, Code: 403, Message: "quota exceeded"}

		typeText(m, "daft punk")
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		_, next := m.Update(cmd())
		if next != nil {
			t.Error("expected no follow-up command after a failed search")
		}
		m.Update(stateChangedMsg(m.jukebox.State()))

		if view := m.View(); !strings.Contains(view, "quota exceeded") {
			t.Errorf("expected alert in view, got:\n%s", view)
		}

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.jukebox.State().Alert != "" {
			t.Error("expected esc to dismiss the alert")
		}
	})
}

func TestQueueKeys(t *testing.T) {
	t.Run("add auto-starts then queues", func(t *testing.T) {
		m, jb, _ := newTestModel(t)
		runSearch(t, m, "daft punk")

		m.Update(keyRunes("a"))
		m.Update(keyRunes("j"))
		m.Update(keyRunes("a"))

		s := jb.State()
		if s.Current != "a" || len(s.Queue) != 1 || s.Queue[0].ID != "b" {
			t.Errorf("expected a playing with [b], got %+v", s)
		}
	})

	t.Run("play now", func(t *testing.T) {
		m, jb, _ := newTestModel(t)
		runSearch(t, m, "daft punk")

		m.Update(keyRunes("j"))
		m.Update(keyRunes("j"))
		m.Update(keyRunes("p"))

		if s := jb.State(); s.Current != "c" || len(s.Queue) != 0 {
			t.Errorf("expected c playing with empty queue, got %+v", s)
		}
	})

	t.Run("remove and skip", func(t *testing.T) {
		m, jb, _ := newTestModel(t)
		for _, v := range tu.Videos("a", "b", "c") {
			_ = jb.Enqueue(v)
		}
		m.Update(stateChangedMsg(jb.State()))

		m.setFocus(QueuePane)
		m.Update(keyRunes("x"))
		m.Update(stateChangedMsg(jb.State()))

		if got := tu.VideoIDs(jb.State().Queue); strings.Join(got, ",") != "c" {
			t.Errorf("expected [c], got %v", got)
		}

		m.Update(keyRunes("n"))
		if s := jb.State(); s.Current != "c" || len(s.Queue) != 0 {
			t.Errorf("expected c after skip, got %+v", s)
		}
	})

	t.Run("remove ignored outside queue pane", func(t *testing.T) {
		m, jb, _ := newTestModel(t)
		for _, v := range tu.Videos("a", "b") {
			_ = jb.Enqueue(v)
		}
		m.Update(stateChangedMsg(jb.State()))
		m.setFocus(ResultsPane)
		m.Update(keyRunes("d"))

		if len(jb.State().Queue) != 1 {
			t.Error("expected queue untouched")
		}
	})
}

func TestNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)

	if m.focus != SearchPane {
		t.Fatalf("expected initial focus on search, got %d", m.focus)
	}

	m.Update(keyRunes("q"))
	if m.input.Value() != "q" {
		t.Errorf("expected input q, got %q", m.input.Value())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != ResultsPane {
		t.Errorf("expected results focus, got %d", m.focus)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != QueuePane {
		t.Errorf("expected queue focus, got %d", m.focus)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != SearchPane {
		t.Errorf("expected search focus, got %d", m.focus)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestView(t *testing.T) {
	m, jb, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	for _, want := range []string{"No results", "Queue is empty", "Nothing playing", "/player"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	_ = jb.Enqueue(models.Video{ID: "a", Title: "Around the World"})
	m.Update(stateChangedMsg(jb.State()))

	if view := m.View(); !strings.Contains(view, "Around the World") {
		t.Errorf("expected now playing title, got:\n%s", view)
	}
}

func TestStaleStateIgnored(t *testing.T) {
	m, jb, _ := newTestModel(t)
	old := jb.State()
	_ = jb.Enqueue(models.Video{ID: "a"})
	m.Update(stateChangedMsg(jb.State()))
	m.Update(stateChangedMsg(old))

	if m.state.Current != "a" {
		t.Errorf("expected newer state to stick, got %+v", m.state)
	}
}
