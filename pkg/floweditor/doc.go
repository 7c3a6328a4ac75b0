// Package floweditor provides a minimal public façade for building and
// persisting agent flows without importing internal packages. It re-exports
// the core canvas and flow types for convenience and exposes an Editor with
// simple methods to edit, save, test, and load flows.
package floweditor
