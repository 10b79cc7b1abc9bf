package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/jukebox/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchResolved MsgKind = iota
	MsgStateChanged
	MsgWatchClosed
)

type searchResult struct {
	query   string
	results []models.Video
	err     error
}

// searchResolvedMsg is the constructor for [MsgSearchResolved]
func searchResolvedMsg(query string, results []models.Video, err error) Msg {
	return Msg{kind: MsgSearchResolved, data: searchResult{query, results, err}}
}

// stateChangedMsg is the constructor for [MsgStateChanged]
func stateChangedMsg(state models.State) Msg {
	return Msg{kind: MsgStateChanged, data: state}
}

// watchClosedMsg is the constructor for [MsgWatchClosed]
func watchClosedMsg() Msg {
	return Msg{kind: MsgWatchClosed}
}
