// Package middleware provides HTTP middleware for the Dot dev server and
// REST peer.
//
// Every middleware has the standard func(http.Handler) http.Handler shape, so
// it plugs into chi directly:
//
//	r := chi.NewRouter()
//	r.Use(
//	    middleware.RequestID(),
//	    middleware.Logger(logger),
//	    middleware.Tracing(),
//	    middleware.Metrics(middleware.WithRegistry(reg)),
//	)
//
// # Prometheus Metrics
//
// Metrics records:
//   - dot_http_requests_total{method,route,status}
//   - dot_http_request_duration_seconds{method,route}
//
// The route label is the chi route pattern ("/api/todos/{id}"), not the raw
// path, so label cardinality stays bounded. Requests no route matched are
// labelled "unmatched".
//
// # OpenTelemetry
//
// Tracing starts a server span per request, continuing any trace context
// found in the request headers. Configure the global tracer provider in
// main, or pass one with WithTracerProvider.
package middleware
