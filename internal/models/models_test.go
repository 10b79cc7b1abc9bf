package models

import "testing"

func TestVideo(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		if err := (Video{}).Validate(); err == nil {
			t.Error("expected error for video without id")
		}
		if err := (Video{ID: "abc"}).Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("WatchURL", func(t *testing.T) {
		v := Video{ID: "dQw4w9WgXcQ"}
		if got := v.WatchURL(); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
			t.Errorf("unexpected watch url %s", got)
		}
	})
}

func TestState(t *testing.T) {
	if (State{}).Playing() {
		t.Error("empty state should not be playing")
	}
	if !(State{Current: "abc"}).Playing() {
		t.Error("state with current should be playing")
	}
}
