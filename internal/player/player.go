// Package player adapts an embeddable video player widget to the jukebox.
//
// The widget is constructed asynchronously (the browser has to load the IFrame API and build the player) so the
// [Adapter] tracks an explicit two-state lifecycle:
//
//	Uninitialized --Ready()--> Ready
//	Ready --Reset()--> Uninitialized
//
// [Adapter.Load] buffers while Uninitialized and is delivered on the next [Adapter.Ready]. Only the latest buffered
// load is kept; an older one would be superseded the moment it reached the widget anyway.
//
// Every load carries a playback token. The widget echoes the token back with its ended notification, and the adapter
// forwards ended exactly once per token to the subscribers registered through [Adapter.Subscribe].
package player

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/shared"
)

// State is the widget lifecycle state.
type State int

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	default:
		return ""
	}
}

// Command asks the widget to display and play a video.
type Command struct {
	VideoID  string `json:"videoId"`
	Playback string `json:"playback"` // Playback token echoed back by the widget on ended
	Autoplay bool   `json:"autoplay"`
}

// Widget receives commands for a player instance.
type Widget interface {
	Load(cmd Command) error
}

// WidgetFunc adapts a function to [Widget].
type WidgetFunc func(cmd Command) error

func (f WidgetFunc) Load(cmd Command) error { return f(cmd) }

// EndedFunc is notified with the video id whose playback completed.
type EndedFunc func(videoID string)

// Adapter is the state machine between the jukebox and the widget.
type Adapter struct {
	mu      sync.Mutex
	widget  Widget
	logger  *log.Logger
	state   State
	pending *Command
	current *Command
	ended   bool
	subs    map[string]EndedFunc
	closed  bool
}

// New creates an Adapter that delivers commands through widget, starting Uninitialized.
func New(widget Widget, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Adapter{
		widget: widget,
		logger: shared.WithLogger(logger, "component", "player"),
		subs:   make(map[string]EndedFunc),
	}
}

// State returns the current lifecycle state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Load requests the widget play videoID.
//
// In the Uninitialized state the command is buffered. A widget delivery failure drops the adapter back to
// Uninitialized with the command buffered, so the next widget instance picks it up.
func (a *Adapter) Load(videoID string) (Command, error) {
	if videoID == "" {
		return Command{}, fmt.Errorf("%w: empty video id", shared.ErrInvalidArgument)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return Command{}, shared.ErrPlayerClosed
	}

	cmd := Command{VideoID: videoID, Playback: shared.GenerateID(), Autoplay: true}
	a.current = &cmd
	a.ended = false

	if a.state != Ready {
		a.pending = &cmd
		a.logger.Debug("buffered load until widget is ready", "video_id", videoID)
		return cmd, nil
	}

	if err := a.widget.Load(cmd); err != nil {
		a.logger.Warn("widget rejected load, waiting for a new instance", "video_id", videoID, "error", err)
		a.state = Uninitialized
		a.pending = &cmd
		return cmd, nil
	}

	a.logger.Debug("loaded video", "video_id", videoID, "playback", cmd.Playback)
	return cmd, nil
}

// Stop forgets the current playback so a future widget instance starts empty.
func (a *Adapter) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = nil
	a.pending = nil
	a.ended = false
}

// Ready marks a widget instance as ready and hands it the command it should be showing: the buffered load, or the
// still-running playback when another instance was already ready. A nil instance uses the adapter's widget.
func (a *Adapter) Ready(instance Widget) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return shared.ErrPlayerClosed
	}
	if instance == nil {
		instance = a.widget
	}

	var cmd *Command
	switch {
	case a.pending != nil:
		cmd = a.pending
	case a.current != nil && !a.ended:
		cmd = a.current
	}

	a.state = Ready
	a.pending = nil
	a.logger.Debug("widget ready")

	if cmd == nil {
		return nil
	}

	if err := instance.Load(*cmd); err != nil {
		a.state = Uninitialized
		a.pending = cmd
		return fmt.Errorf("failed to flush buffered load: %w", err)
	}
	return nil
}

// Reset records that no widget instance is alive. An unfinished playback is buffered again to resume later.
func (a *Adapter) Reset() {
	a.ResetWhen(nil)
}

// ResetWhen resets only if idle reports that no widget instance is alive. idle runs under the adapter lock, so a
// concurrent [Adapter.Ready] either happens before the check or after the reset. A nil idle always resets. Reports
// whether the adapter was reset.
func (a *Adapter) ResetWhen(idle func() bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if idle != nil && !idle() {
		a.logger.Debug("widget reset skipped, another instance is alive")
		return false
	}

	a.state = Uninitialized
	if a.current != nil && !a.ended {
		a.pending = a.current
	}
	a.logger.Debug("widget reset")
	return true
}

// Ended is called by the widget when playback identified by token completes.
//
// Subscribers are notified once per playback; stale and duplicate tokens are ignored. Reports whether the
// notification was forwarded.
func (a *Adapter) Ended(token string) bool {
	a.mu.Lock()
	if a.closed || a.current == nil || a.ended || a.current.Playback != token {
		a.mu.Unlock()
		a.logger.Debug("ignored ended notification", "playback", token)
		return false
	}

	a.ended = true
	videoID := a.current.VideoID
	subs := make([]EndedFunc, 0, len(a.subs))
	for _, fn := range a.subs {
		subs = append(subs, fn)
	}
	a.mu.Unlock()

	a.logger.Info("playback ended", "video_id", videoID)
	for _, fn := range subs {
		fn(videoID)
	}
	return true
}

// Current returns the last command issued, if any.
func (a *Adapter) Current() (Command, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return Command{}, false
	}
	return *a.current, true
}

// Subscribe registers fn for ended notifications. The returned func releases the subscription.
func (a *Adapter) Subscribe(fn EndedFunc) func() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return func() {}
	}

	id := shared.GenerateID()
	a.subs[id] = fn

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subs, id)
	}
}

// Close releases every subscription and rejects further commands.
func (a *Adapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
	a.state = Uninitialized
	a.pending = nil
	clear(a.subs)
}
