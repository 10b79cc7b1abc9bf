// package models defines the data model for the jukebox
package models

import "fmt"

// Video is a playable item returned by the search service.
type Video struct {
	ID        string `json:"id"`        // ID is the opaque video identifier from the service
	Title     string `json:"title"`     // Title is the display string
	Thumbnail string `json:"thumbnail"` // Thumbnail is an image URL, empty when the service sent none
}

// Validate reports whether the video can be queued or played.
func (v Video) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("video id is required")
	}
	return nil
}

// WatchURL returns the public watch page for the video.
func (v Video) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// State is a point-in-time copy of everything the UIs render.
type State struct {
	Results []Video `json:"results"`         // Results of the last successful search
	Queue   []Video `json:"queue"`           // Queue in playback order
	Current string  `json:"current"`         // Current is the loaded video id, empty when idle
	Title   string  `json:"title,omitempty"` // Title of the current video when known
	Alert   string  `json:"alert,omitempty"` // Alert is the last user-facing error message
	Version uint64  `json:"version"`         // Version increments on every change
}

// Playing reports whether a video is loaded.
func (s State) Playing() bool {
	return s.Current != ""
}
