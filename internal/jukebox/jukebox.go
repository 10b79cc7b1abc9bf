package jukebox

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/player"
	"github.com/desertthunder/jukebox/internal/queue"
	"github.com/desertthunder/jukebox/internal/services"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Jukebox owns results, queue and current item.
type Jukebox struct {
	mu       sync.Mutex
	queue    *queue.Manager
	results  []models.Video
	alert    string
	version  uint64
	searcher services.Searcher
	player   *player.Adapter
	logger   *log.Logger
	watchers map[string]chan models.State
	release  func()
}

// Opts contains the collaborators of a [Jukebox].
type Opts struct {
	Searcher services.Searcher
	Player   *player.Adapter
	Logger   *log.Logger
}

// New creates a Jukebox and subscribes it to the player's ended notifications.
func New(opts Opts) *Jukebox {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	j := &Jukebox{
		queue:    queue.New(),
		searcher: opts.Searcher,
		player:   opts.Player,
		logger:   shared.WithLogger(opts.Logger, "component", "jukebox"),
		watchers: make(map[string]chan models.State),
		release:  func() {},
	}

	if j.player != nil {
		j.release = j.player.Subscribe(j.onEnded)
	}

	return j
}

// Close releases the player subscription and closes every watcher channel.
func (j *Jukebox) Close() {
	j.release()

	j.mu.Lock()
	defer j.mu.Unlock()
	for id, ch := range j.watchers {
		close(ch)
		delete(j.watchers, id)
	}
}

// Search queries the search service and replaces the results on success.
//
// A blank query is a no-op. On failure the returned error is an [*Alert] and results stay unchanged.
func (j *Jukebox) Search(ctx context.Context, query string) ([]models.Video, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if j.searcher == nil {
		return nil, j.fail(AlertFor(fmt.Errorf("%w: no search client", shared.ErrServiceUnavailable)))
	}

	j.logger.Info("searching", "query", query)
	videos, err := j.searcher.Search(ctx, query)
	if err != nil {
		return nil, j.fail(AlertFor(err))
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.results = videos
	j.alert = ""
	j.changed()
	j.logger.Info("search resolved", "query", query, "results", len(videos))

	out := make([]models.Video, len(videos))
	copy(out, videos)
	return out, nil
}

func (j *Jukebox) fail(alert *Alert) *Alert {
	j.logger.Error("search failed", "kind", alert.Kind, "error", alert.Err)

	j.mu.Lock()
	defer j.mu.Unlock()

	j.alert = alert.Message
	j.changed()
	return alert
}

// Enqueue appends video; on an idle jukebox it starts playing right away.
func (j *Jukebox) Enqueue(video models.Video) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.queue.Enqueue(video) {
		j.logger.Info("auto-starting playback", "video_id", video.ID)
		j.load(video.ID)
	}
	j.changed()
	return nil
}

// PlayNow loads video immediately without touching the queue.
func (j *Jukebox) PlayNow(video models.Video) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.queue.PlayNow(video)
	j.load(video.ID)
	j.changed()
	return nil
}

// Remove deletes the queue entry at index; out of range is a no-op.
func (j *Jukebox) Remove(index int) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.queue.Remove(index) {
		return false
	}
	j.changed()
	return true
}

// Skip advances to the next queued item as if the current one ended.
func (j *Jukebox) Skip() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.advance()
}

// Clear empties the queue; the current item keeps playing.
func (j *Jukebox) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.queue.Clear()
	j.changed()
}

// DismissAlert clears the last alert.
func (j *Jukebox) DismissAlert() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.alert == "" {
		return
	}
	j.alert = ""
	j.changed()
}

// State returns a snapshot for rendering.
func (j *Jukebox) State() models.State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.snapshot()
}

// Watch returns a channel receiving a snapshot after every change, and a func that stops watching.
//
// The channel holds only the latest snapshot; a slow reader skips intermediate states.
func (j *Jukebox) Watch() (<-chan models.State, func()) {
	j.mu.Lock()
	defer j.mu.Unlock()

	id := shared.GenerateID()
	ch := make(chan models.State, 1)
	j.watchers[id] = ch

	return ch, func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		if ch, ok := j.watchers[id]; ok {
			close(ch)
			delete(j.watchers, id)
		}
	}
}

// onEnded maps the player's ended notification to advance + load.
func (j *Jukebox) onEnded(videoID string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if current := j.queue.Current(); current != videoID {
		j.logger.Warn("ended notification for a video that is not current", "video_id", videoID, "current", current)
		return
	}
	j.advance()
}

// advance must be called with mu held.
func (j *Jukebox) advance() {
	next, ok := j.queue.Advance()
	if ok {
		j.logger.Info("advancing", "video_id", next.ID, "remaining", j.queue.Len())
		j.load(next.ID)
	} else {
		j.logger.Info("queue exhausted")
		if j.player != nil {
			j.player.Stop()
		}
	}
	j.changed()
}

// load must be called with mu held.
func (j *Jukebox) load(videoID string) {
	if j.player == nil {
		return
	}
	if _, err := j.player.Load(videoID); err != nil {
		j.logger.Error("failed to load video", "video_id", videoID, "error", err)
	}
}

// changed must be called with mu held.
func (j *Jukebox) changed() {
	j.version++
	s := j.snapshot()

	for _, ch := range j.watchers {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

func (j *Jukebox) snapshot() models.State {
	results := make([]models.Video, len(j.results))
	copy(results, j.results)

	s := models.State{
		Results: results,
		Queue:   j.queue.Items(),
		Current: j.queue.Current(),
		Alert:   j.alert,
		Version: j.version,
	}
	if v, ok := j.queue.CurrentVideo(); ok {
		s.Title = v.Title
	}
	return s
}
