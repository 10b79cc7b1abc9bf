// Package queue implements the playback queue state machine.
//
// A [Manager] holds an ordered backlog of [models.Video] items and a pointer to the item currently loaded in the player.
// Insertion order is playback order. Every operation is synchronous and total: invalid indexes are no-ops, never errors.
//
// # Auto-start
//
// [Manager.Enqueue] appends and, when nothing is current, pops the new head into Current within the same call.
// There is no intermediate state where the item is both queued and current, so "enqueue while idle" is exactly
// "append then [Manager.Advance]". Two back-to-back enqueues from idle leave the first item current and the second queued.
//
// # Concurrency
//
// A Manager is not safe for concurrent use. The jukebox coordinator owns the only instance and serialises access.
package queue
