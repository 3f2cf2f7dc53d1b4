// Package metrics provides application-level counters using stdlib expvar.
// Counters are exported on /debug/vars when the gateway is running.
package metrics

import "expvar"

// Operation counters.
var (
	FetchTotal      = expvar.NewInt("warfeed_fetch_total")
	FetchErrors     = expvar.NewInt("warfeed_fetch_errors_total")
	EnrichMisses    = expvar.NewInt("warfeed_enrich_misses_total")
	BriefingsTotal  = expvar.NewInt("warfeed_briefings_total")
	GatewayRequests = expvar.NewInt("warfeed_gateway_requests_total")
	MCPToolCalls    = expvar.NewInt("warfeed_mcp_tool_calls_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }

// Add increments the given counter by n.
func Add(counter *expvar.Int, n int) { counter.Add(int64(n)) }
