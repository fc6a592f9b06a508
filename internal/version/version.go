// Package version provides build and version information.
package version

// Version is the current application version. Overridden at build time
// with -ldflags "-X github.com/litescript/ls-celestial/internal/version.Version=...".
var Version = "0.3.0"

// Milestones:
// 0.3.0 - Terminal client: dashboard, body detail sparkline, event log, headless modes
// 0.2.0 - Tracing, Prometheus metrics, per-IP rate limiting, /healthz oracle status
// 0.1.0 - Initial release: /moon and /mars with three-tier enhancement pipeline
