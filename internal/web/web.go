// Package web serves the browser jukebox: the full page, the player-only page used alongside the TUI, a JSON API
// over the jukebox, and an SSE stream that carries player commands and state snapshots.
//
// The page embeds the YouTube IFrame player. Each tab opens /events, receives a client id in a "hello" event and
// posts /api/player/ready once its widget fires onReady. Loads arrive as "load" events with a playback token the
// page echoes back to /api/player/ended when the widget reports state 0.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/jukebox"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/player"
	"github.com/desertthunder/jukebox/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	maxBodyBytes = 1 << 16
	pingInterval = 25 * time.Second
)

// Opts configures a [Handler].
type Opts struct {
	Jukebox *jukebox.Jukebox
	Player  *player.Adapter
	Hub     *Hub
	Config  shared.PlayerConfig
	Logger  *log.Logger
}

// Handler serves every browser route. It satisfies the server.Handler interface.
type Handler struct {
	jukebox   *jukebox.Jukebox
	player    *player.Adapter
	hub       *Hub
	config    shared.PlayerConfig
	logger    *log.Logger
	templates *template.Template
	mux       *http.ServeMux
}

type pageData struct {
	Title      string
	Width      int
	Height     int
	Controls   int
	PlayerOnly bool
}

type searchRequest struct {
	Query string `json:"query"`
}

type removeRequest struct {
	Index *int `json:"index"`
}

type playerRequest struct {
	Client   string `json:"client"`
	Playback string `json:"playback"`
}

// New builds the handler and its route table.
func New(opts Opts) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	h := &Handler{
		jukebox:   opts.Jukebox,
		player:    opts.Player,
		hub:       opts.Hub,
		config:    opts.Config,
		logger:    shared.WithLogger(logger, "component", "web"),
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /{$}", h.page(false))
	h.mux.HandleFunc("GET /player", h.page(true))
	h.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	h.mux.HandleFunc("GET /api/state", h.state)
	h.mux.HandleFunc("POST /api/search", h.search)
	h.mux.HandleFunc("POST /api/queue", h.enqueue)
	h.mux.HandleFunc("POST /api/queue/remove", h.remove)
	h.mux.HandleFunc("POST /api/play", h.play)
	h.mux.HandleFunc("POST /api/skip", h.skip)
	h.mux.HandleFunc("GET /events", h.events)
	h.mux.HandleFunc("POST /api/player/ready", h.ready)
	h.mux.HandleFunc("POST /api/player/ended", h.ended)
	return h, nil
}

// Routes lists the path patterns served by the handler.
func (h *Handler) Routes() []string {
	return []string{"/", "/player", "/static/", "/api/", "/events"}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) page(playerOnly bool) http.HandlerFunc {
	title := "Jukebox"
	if playerOnly {
		title = "Jukebox Player"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		controls := 0
		if h.config.Controls {
			controls = 1
		}

		data := pageData{
			Title:      title,
			Width:      h.config.Width,
			Height:     h.config.Height,
			Controls:   controls,
			PlayerOnly: playerOnly,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
			h.logger.Error("failed to render page", "error", err)
		}
	}
}

func (h *Handler) state(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.jukebox.State())
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !h.decode(w, r, &req) {
		return
	}

	videos, err := h.jukebox.Search(r.Context(), req.Query)
	if err != nil {
		var alert *jukebox.Alert
		if errors.As(err, &alert) {
			writeJSON(w, http.StatusBadGateway, map[string]string{"alert": alert.Message})
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if videos == nil {
		videos = h.jukebox.State().Results
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": videos})
}

func (h *Handler) enqueue(w http.ResponseWriter, r *http.Request) {
	var video models.Video
	if !h.decode(w, r, &video) {
		return
	}

	if err := h.jukebox.Enqueue(video); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, h.jukebox.State())
}

func (h *Handler) play(w http.ResponseWriter, r *http.Request) {
	var video models.Video
	if !h.decode(w, r, &video) {
		return
	}

	if err := h.jukebox.PlayNow(video); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, h.jukebox.State())
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Index == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: index", shared.ErrMissingArgument))
		return
	}

	h.jukebox.Remove(*req.Index)
	writeJSON(w, http.StatusOK, h.jukebox.State())
}

func (h *Handler) skip(w http.ResponseWriter, _ *http.Request) {
	h.jukebox.Skip()
	writeJSON(w, http.StatusOK, h.jukebox.State())
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !h.decode(w, r, &req) {
		return
	}

	widget, ok := h.hub.Widget(req.Client)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: unknown player %q", shared.ErrInvalidArgument, req.Client))
		return
	}

	if err := h.player.Ready(widget); err != nil {
		h.logger.Warn("player ready failed", "client", req.Client, "error", err)
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ended(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Playback == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: playback", shared.ErrMissingArgument))
		return
	}

	forwarded := h.player.Ended(req.Playback)
	h.logger.Debug("ended notification", "client", req.Client, "forwarded", forwarded)
	writeJSON(w, http.StatusOK, map[string]bool{"forwarded": forwarded})
}

// events streams "hello", "load" and "state" events until the client goes away.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("%w: streaming unsupported", shared.ErrNotImplemented))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	c := h.hub.connect()
	states, release := h.jukebox.Watch()
	defer release()
	defer h.leave(c.id)

	hello, _ := newEvent("hello", map[string]string{"client": c.id})
	initial, _ := newEvent("state", h.jukebox.State())
	if writeEvent(w, hello) != nil || writeEvent(w, initial) != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		var err error

		select {
		case <-r.Context().Done():
			return
		case ev := <-c.events:
			err = writeEvent(w, ev)
		case st, ok := <-states:
			if !ok {
				return
			}
			ev, encErr := newEvent("state", st)
			if encErr != nil {
				h.logger.Error("failed to encode state", "error", encErr)
				continue
			}
			err = writeEvent(w, ev)
		case <-ticker.C:
			_, err = io.WriteString(w, ": ping\n\n")
		}

		if err != nil {
			h.logger.Debug("event stream closed", "client", c.id, "error", err)
			return
		}
		flusher.Flush()
	}
}

// leave drops a player client. The adapter is reset only if no other client connected in the meantime.
func (h *Handler) leave(id string) {
	if h.hub.disconnect(id) {
		h.player.ResetWhen(h.hub.empty)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return false
	}
	return true
}

func writeEvent(w io.Writer, ev event) error {
	_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.name, ev.data)
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
