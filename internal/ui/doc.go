// Package ui implements an interactive terminal jukebox using bubbletea's Elm architecture.
//
// The screen has three panes:
//  1. Search: a text input; enter runs the query through the jukebox
//  2. Results: the last successful search, where a adds to the queue and p plays now
//  3. Queue: upcoming videos, where x or d removes the selected entry
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// State snapshots flow through the jukebox watch channel, so changes made from the browser (or by the player
// finishing a video) re-render the terminal too.
//
// Search failures show up as an alert in the error style; they never quit the program. The video itself plays in
// the browser page served alongside the TUI.
package ui
