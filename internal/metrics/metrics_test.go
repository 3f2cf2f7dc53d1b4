package metrics

import (
	"expvar"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncAndAdd(t *testing.T) {
	before := FetchTotal.Value()
	Inc(FetchTotal)
	assert.Equal(t, before+1, FetchTotal.Value())

	before = EnrichMisses.Value()
	Add(EnrichMisses, 3)
	assert.Equal(t, before+3, EnrichMisses.Value())
}

func TestCountersPublished(t *testing.T) {
	for _, name := range []string{
		"warfeed_fetch_total",
		"warfeed_fetch_errors_total",
		"warfeed_enrich_misses_total",
		"warfeed_briefings_total",
		"warfeed_gateway_requests_total",
		"warfeed_mcp_tool_calls_total",
	} {
		assert.NotNil(t, expvar.Get(name), name)
	}
}
