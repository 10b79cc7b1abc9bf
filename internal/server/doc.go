// Package server provides HTTP routing and middleware for the browser jukebox.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /path"), so several methods can share a
// path and the mux answers 405 for the rest.
//
// # Middleware
//
// [Logging] writes one structured line per request through charmbracelet/log. [Recover] turns a handler panic into a
// 500 so one bad request can't take the UI down.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Serving
//
// [Serve] runs an [http.Server] until the context is cancelled, then shuts it down gracefully.
package server
