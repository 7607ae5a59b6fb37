// Package devserver serves the single-page application, its REST peer and
// the operational endpoints from one HTTP listener.
//
// Routes:
//
//	/                 302 to the app prefix
//	/api/...          the to-do REST service (when enabled)
//	/metrics          Prometheus exposition (when enabled)
//	<prefix>...       static files, with index.html as the SPA fallback
//
// Every request passes through request-ID, logging, and optionally tracing
// and metrics middleware.
package devserver
