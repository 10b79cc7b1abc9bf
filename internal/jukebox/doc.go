// Package jukebox coordinates search, the playback queue and the player widget.
//
// [Jukebox] is the single owner of the search results, the [queue.Manager] and the last user-facing alert. Every
// mutation takes one mutex, which gives HTTP handlers and the TUI the same sequencing a single UI event loop would.
//
// # Playback flow
//
//   - [Jukebox.Enqueue] on an idle jukebox starts playback: the item becomes current and a load is sent to the player.
//   - [Jukebox.PlayNow] loads the item immediately; the queue is left as is.
//   - An ended notification from the player advances the queue and loads the new current item, if any.
//
// # Search
//
// The request runs without holding the lock. Results are replaced when a search resolves successfully; concurrent
// searches are not cancelled and the last one to resolve wins. A failed search leaves results, queue and current
// untouched and records an [Alert].
package jukebox
