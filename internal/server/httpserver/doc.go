// Package httpserver provides the HTTP/HTTPS serving layer of the static server.
//
// It is built on stdlib net/http:
//
//   - Stack: ordered mount layers (folders, then middleware) with
//     segment-aligned prefix matching and fall-through
//   - Static folder layers: GET/HEAD file serving with index.html,
//     weak ETags and dotfile hiding
//   - Middleware chain: RequestID, Recover, AccessLog, Metrics, RateLimit,
//     plus named built-ins (cors, headers, nocache, spa, redirect, health)
//   - Server: http.Server wrapper serving on an already-bound listener,
//     with optional TLS and graceful shutdown
package httpserver
