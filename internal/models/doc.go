// Package models defines the data carried between the search client, the queue and the UIs.
//
//   - [Video] : a playable item (identifier, title, thumbnail), immutable once fetched
//   - [State] : an immutable snapshot of results, queue and the current item for rendering
//
// Nothing here is persisted; all state lives in memory for the lifetime of the process.
package models
