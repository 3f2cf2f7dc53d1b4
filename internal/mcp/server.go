// Package mcp implements the Model Context Protocol server for warfeed.
// Every tool is read-only and performs fresh fetches.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/warfeed/internal/metrics"
	"github.com/ajitpratap0/warfeed/pkg/analysis"
	"github.com/ajitpratap0/warfeed/pkg/client"
	"github.com/ajitpratap0/warfeed/pkg/models"
	"github.com/ajitpratap0/warfeed/pkg/refdata"
)

const (
	// defaultNewsLimit is how many news items news_feed returns by default.
	defaultNewsLimit = 20
)

// WarAPI is the subset of the war-status client the tools need.
type WarAPI interface {
	Status(ctx context.Context, warID int64, lang models.Language) (*models.Status, error)
	WarInfo(ctx context.Context, warID int64) (*models.WarInfo, error)
	WarTime(ctx context.Context, warID int64) (int64, error)
	NewsFeed(ctx context.Context, warID int64, lang models.Language) ([]models.NewsItem, error)
}

// Defaults are used when a tool call omits an argument.
type Defaults struct {
	WarID      int64
	Language   models.Language
	TopPlanets int
}

// Server wraps an MCPServer with warfeed dependencies.
type Server struct {
	mcp      *mcpserver.MCPServer
	api      WarAPI
	names    refdata.Resolver
	defaults Defaults
	logger   *slog.Logger
}

// NewServer creates a new MCP server.
func NewServer(api WarAPI, names refdata.Resolver, defaults Defaults, logger *slog.Logger) *Server {
	s := &Server{
		api:      api,
		names:    names,
		defaults: defaults,
		logger:   logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"warfeed",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildSummaryTool(), s.handleSummary)
	mcpSrv.AddTool(buildSectorsTool(), s.handleSectors)
	mcpSrv.AddTool(buildWarTimeTool(), s.handleWarTime)
	mcpSrv.AddTool(buildNewsTool(), s.handleNews)
	mcpSrv.AddTool(buildLookupTool(), s.handleLookup)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleSummary is the exported handler for the "war_summary" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleSummary(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleSummary(ctx, req)
}

// HandleSectors is the exported handler for the "war_sectors" tool.
func (s *Server) HandleSectors(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleSectors(ctx, req)
}

// HandleWarTime is the exported handler for the "war_time" tool.
func (s *Server) HandleWarTime(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleWarTime(ctx, req)
}

// HandleNews is the exported handler for the "news_feed" tool.
func (s *Server) HandleNews(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleNews(ctx, req)
}

// HandleLookup is the exported handler for the "lookup_name" tool.
func (s *Server) HandleLookup(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleLookup(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// fetchError converts a client error into a tool error result.
func fetchError(err error) *mcpgo.CallToolResult {
	if errors.Is(err, client.ErrInvalidWarID) {
		return mcpgo.NewToolResultErrorf("unknown war: %s", err.Error())
	}
	return mcpgo.NewToolResultErrorf("fetch failed: %s", err.Error())
}

func (s *Server) warID(req mcpgo.CallToolRequest) (int64, error) {
	id := int64(req.GetInt("war_id", int(s.defaults.WarID)))
	if id <= 0 {
		return 0, fmt.Errorf("war_id must be greater than 0")
	}
	return id, nil
}

func (s *Server) language(req mcpgo.CallToolRequest) (models.Language, error) {
	raw := req.GetString("language", "")
	if raw == "" {
		return s.defaults.Language, nil
	}
	return models.ParseLanguage(raw)
}

// --- tool definitions ---

func buildSummaryTool() mcpgo.Tool {
	return mcpgo.NewTool("war_summary",
		mcpgo.WithDescription("Current war snapshot: total players, busiest planets, faction control, campaigns and attacks, with names resolved."),
		mcpgo.WithNumber("war_id",
			mcpgo.Description("War season id (default: configured war)"),
		),
		mcpgo.WithString("language",
			mcpgo.Description("Language name or tag, e.g. english or de-DE (default: configured language)"),
		),
		mcpgo.WithNumber("top",
			mcpgo.Description("How many planets to rank by player count (default: 10)"),
		),
	)
}

func buildSectorsTool() mcpgo.Tool {
	return mcpgo.NewTool("war_sectors",
		mcpgo.WithDescription("Sectors of the war reconstructed from live planet data, each with its member planets."),
		mcpgo.WithNumber("war_id",
			mcpgo.Description("War season id (default: configured war)"),
		),
	)
}

func buildWarTimeTool() mcpgo.Tool {
	return mcpgo.NewTool("war_time",
		mcpgo.WithDescription("Current war clock value."),
		mcpgo.WithNumber("war_id",
			mcpgo.Description("War season id (default: configured war)"),
		),
	)
}

func buildNewsTool() mcpgo.Tool {
	return mcpgo.NewTool("news_feed",
		mcpgo.WithDescription("Latest news feed entries of the war."),
		mcpgo.WithNumber("war_id",
			mcpgo.Description("War season id (default: configured war)"),
		),
		mcpgo.WithString("language",
			mcpgo.Description("Language name or tag (default: configured language)"),
		),
		mcpgo.WithNumber("limit",
			mcpgo.Description("Maximum number of items, newest first (default: 20)"),
		),
	)
}

func buildLookupTool() mcpgo.Tool {
	return mcpgo.NewTool("lookup_name",
		mcpgo.WithDescription("Resolve a planet, faction or sector id to its name from the bundled reference tables."),
		mcpgo.WithString("kind",
			mcpgo.Required(),
			mcpgo.Description("One of planet, faction, sector"),
		),
		mcpgo.WithNumber("id",
			mcpgo.Required(),
			mcpgo.Description("Numeric id to resolve"),
		),
	)
}

// --- tool handlers ---

func (s *Server) handleSummary(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	metrics.Inc(metrics.MCPToolCalls)

	warID, err := s.warID(req)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	lang, err := s.language(req)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	top := req.GetInt("top", s.defaults.TopPlanets)
	if top <= 0 {
		top = s.defaults.TopPlanets
	}

	status, err := s.api.Status(ctx, warID, lang)
	if err != nil {
		s.logger.Warn("mcp: war_summary: fetch failed", "war_id", warID, "error", err)
		return fetchError(err), nil
	}

	return toolResultJSON(analysis.Summarize(status, top, s.names))
}

func (s *Server) handleSectors(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	metrics.Inc(metrics.MCPToolCalls)

	warID, err := s.warID(req)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	info, err := s.api.WarInfo(ctx, warID)
	if err != nil {
		s.logger.Warn("mcp: war_sectors: fetch failed", "war_id", warID, "error", err)
		return fetchError(err), nil
	}

	return toolResultJSON(map[string]any{
		"war_id":  warID,
		"sectors": analysis.ReconstructSectors(info, s.names),
	})
}

func (s *Server) handleWarTime(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	metrics.Inc(metrics.MCPToolCalls)

	warID, err := s.warID(req)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	wt, err := s.api.WarTime(ctx, warID)
	if err != nil {
		return fetchError(err), nil
	}

	return toolResultJSON(map[string]any{"war_id": warID, "time": wt})
}

// newsEntry is the JSON shape of one news_feed item.
type newsEntry struct {
	ID        int64    `json:"id"`
	Published int64    `json:"published"`
	Type      int64    `json:"type"`
	Tags      []string `json:"tags"`
	Message   string   `json:"message"`
}

func (s *Server) handleNews(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	metrics.Inc(metrics.MCPToolCalls)

	warID, err := s.warID(req)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	lang, err := s.language(req)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", defaultNewsLimit)
	if limit <= 0 {
		limit = defaultNewsLimit
	}

	items, err := s.api.NewsFeed(ctx, warID, lang)
	if err != nil {
		return fetchError(err), nil
	}

	latest := analysis.LatestNews(items, limit)
	entries := make([]newsEntry, 0, len(latest))
	for _, it := range latest {
		entries = append(entries, newsEntry{
			ID:        it.ID,
			Published: it.Published,
			Type:      it.Type,
			Tags:      it.TagIDs,
			Message:   it.Message,
		})
	}

	return toolResultJSON(map[string]any{"war_id": warID, "items": entries})
}

func (s *Server) handleLookup(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	metrics.Inc(metrics.MCPToolCalls)

	kind := req.GetString("kind", "")
	id := int64(req.GetInt("id", -1))

	var (
		name string
		ok   bool
	)
	switch kind {
	case "planet":
		name, ok = s.names.PlanetName(id)
	case "faction":
		name, ok = s.names.FactionName(id)
	case "sector":
		name, ok = s.names.SectorName(id)
	default:
		return mcpgo.NewToolResultErrorf("invalid kind %q: must be one of planet, faction, sector", kind), nil
	}

	return toolResultJSON(map[string]any{
		"kind":  kind,
		"id":    id,
		"found": ok,
		"name":  name,
	})
}
