package metrics

import (
	"expvar"
)

// Canvas mutation counters.
var (
	nodesCreated = new(expvar.Int)
	nodesRemoved = new(expvar.Int)
	edgesCreated = new(expvar.Int)
	edgesRemoved = new(expvar.Int)
)

// Bridge counters keyed by operation (save, test, load, ...).
var (
	bridgeRequests = expvar.NewMap("floweditor_bridge_requests_total")
	bridgeErrors   = expvar.NewMap("floweditor_bridge_errors_total")
)

func init() {
	expvar.Publish("floweditor_nodes_created_total", nodesCreated)
	expvar.Publish("floweditor_nodes_removed_total", nodesRemoved)
	expvar.Publish("floweditor_edges_created_total", edgesCreated)
	expvar.Publish("floweditor_edges_removed_total", edgesRemoved)
}

// Canvas helpers
func IncNodesCreated() { nodesCreated.Add(1) }
func IncNodesRemoved() { nodesRemoved.Add(1) }
func IncEdgesCreated() { edgesCreated.Add(1) }
func IncEdgesRemoved() { edgesRemoved.Add(1) }

// Bridge helpers
func IncBridgeRequest(op string) { bridgeRequests.Add(op, 1) }
func IncBridgeError(op string)   { bridgeErrors.Add(op, 1) }
