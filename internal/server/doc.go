// Package server exposes the demonstration HTTP surface: fire-and-forget
// notification jobs, background file saves, a health probe and Prometheus
// metrics. It is the networked counterpart of the CLI catalog, showing the
// request-accepted-work-continues pattern against a live server.
package server
