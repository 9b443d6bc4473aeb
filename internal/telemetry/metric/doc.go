// Package metric provides Prometheus metrics for the static server.
//
// Each launcher instance owns its own Registry so several servers can run
// in one process without colliding on collector registration.
//
// Metrics:
//
//   - staticserver_requests_total{method,code}
//   - staticserver_request_duration_seconds{method}
//   - staticserver_response_bytes_total
//   - staticserver_mounted_folders
//
// The exposition handler is mounted at the configured metrics path.
package metric
