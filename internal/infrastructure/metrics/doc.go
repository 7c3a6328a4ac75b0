// Package metrics exposes expvar-published counters used by the editor core
// (canvas mutations) and the persistence bridge. It intentionally avoids
// external dependencies and is consumed by the optional floweditor-server for
// /debug/vars and /metrics endpoints.
package metrics
