// Package middleware provides observability middleware for vmark servers.
//
// This package includes:
//   - OpenTelemetry distributed tracing middleware
//   - Prometheus metrics middleware
//
// Both middlewares are plain func(http.Handler) http.Handler, so they fit
// chi routers and the standard library mux alike.
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware traces every request to the preview server.
// Spans carry the method, path and response status; render pipeline stages
// opened with StartStage nest under the request span.
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry())
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("docs-preview"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	)
//
// # Prometheus Metrics
//
// The Prometheus middleware collects request and render metrics:
//   - vmark_requests_total: Requests by path, method and status
//   - vmark_request_duration_seconds: Request duration histogram
//   - vmark_renders_total: Markdown renders by pipeline and status
//   - vmark_render_duration_seconds: Render duration histogram
//   - vmark_reloads_total: Live reload broadcasts
//   - vmark_reload_clients: Connected live reload clients
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus())
//	r.Handle("/metrics", middleware.Handler())
//
// Render, reload and watcher counters are fed by the server through the
// Record functions; they are no-ops until Prometheus() has run.
//
// # Context Propagation
//
// The tracing middleware injects the span into the request context, so
// downstream calls inherit the trace:
//
//	func handle(w http.ResponseWriter, r *http.Request) {
//	    ctx, span := middleware.StartStage(r.Context(), "render")
//	    defer span.End()
//	    // render with ctx
//	}
package middleware
