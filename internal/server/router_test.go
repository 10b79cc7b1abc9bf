package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type routesHandler struct {
	routes []string
	body   string
}

func (h *routesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.WriteString(w, h.body)
}

func (h *routesHandler) Routes() []string { return h.routes }

func TestBasicRouter(t *testing.T) {
	t.Run("Handle dispatches by method", func(t *testing.T) {
		r := NewBasicRouter()
		r.HandleFunc(http.MethodGet, "/api/state", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "get")
		})
		r.HandleFunc(http.MethodPost, "/api/state", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "post")
		})

		tests := []struct {
			method string
			status int
			body   string
		}{
			{http.MethodGet, http.StatusOK, "get"},
			{http.MethodPost, http.StatusOK, "post"},
			{http.MethodDelete, http.StatusMethodNotAllowed, ""},
		}

		for _, tt := range tests {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/state", nil))

			if rec.Code != tt.status {
				t.Errorf("%s: expected status %d, got %d", tt.method, tt.status, rec.Code)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("%s: expected body %q, got %q", tt.method, tt.body, rec.Body.String())
			}
		}
	})

	t.Run("Handler registers every route", func(t *testing.T) {
		r := NewBasicRouter()
		r.Handler(&routesHandler{routes: []string{"GET /a", "/b"}, body: "ok"})

		for _, path := range []string{"/a", "/b"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
				t.Errorf("%s: got %d %q", path, rec.Code, rec.Body.String())
			}
		}

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("middleware order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewBasicRouter()
		r.Use(mark("first"), mark("second"))
		r.HandleFunc(http.MethodGet, "/", func(http.ResponseWriter, *http.Request) {
			order = append(order, "handler")
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		want := "first,second,handler"
		if got := strings.Join(order, ","); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("Logging records status", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

		r := NewBasicRouter()
		r.Use(Logging(logger))
		r.HandleFunc(http.MethodPost, "/api/skip", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/skip", nil))

		out := buf.String()
		for _, want := range []string{"path=/api/skip", "status=202", "method=POST"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected log to contain %q, got %q", want, out)
			}
		}
	})

	t.Run("Recover returns 500", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf)

		r := NewBasicRouter()
		r.Use(Recover(logger))
		r.HandleFunc(http.MethodGet, "/boom", func(http.ResponseWriter, *http.Request) {
			panic("boom")
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
		if !strings.Contains(buf.String(), "handler panic") {
			t.Errorf("expected panic to be logged, got %q", buf.String())
		}
	})

	t.Run("Logging keeps Flusher", func(t *testing.T) {
		r := NewBasicRouter()
		r.Use(Logging(log.New(io.Discard)))

		var flushable bool
		r.HandleFunc(http.MethodGet, "/events", func(w http.ResponseWriter, _ *http.Request) {
			_, flushable = w.(http.Flusher)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events", nil))
		if !flushable {
			t.Error("expected wrapped writer to implement http.Flusher")
		}
	})
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)

	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	go func() {
		done <- Serve(ctx, "127.0.0.1:0", h, log.New(io.Discard), ready)
	}()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("Serve returned early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "pong" {
		t.Errorf("expected pong, got %q", body)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
