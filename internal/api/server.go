package api

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ajitpratap0/warfeed/internal/metrics"
	"github.com/ajitpratap0/warfeed/pkg/analysis"
	"github.com/ajitpratap0/warfeed/pkg/client"
	"github.com/ajitpratap0/warfeed/pkg/models"
	"github.com/ajitpratap0/warfeed/pkg/refdata"
)

const defaultNewsLimit = 20

// WarAPI is the subset of the war-status client the gateway needs.
type WarAPI interface {
	Status(ctx context.Context, warID int64, lang models.Language) (*models.Status, error)
	WarInfo(ctx context.Context, warID int64) (*models.WarInfo, error)
	WarTime(ctx context.Context, warID int64) (int64, error)
	NewsFeed(ctx context.Context, warID int64, lang models.Language) ([]models.NewsItem, error)
}

// Server is a read-only HTTP gateway that serves enriched war data as JSON.
// Every request is a fresh upstream fetch.
type Server struct {
	api        WarAPI
	names      refdata.Resolver
	language   models.Language
	topPlanets int
	logger     *slog.Logger
}

// NewServer creates a new Server. language and topPlanets are used when a
// request does not specify them.
func NewServer(api WarAPI, names refdata.Resolver, language models.Language, topPlanets int, logger *slog.Logger) *Server {
	return &Server{
		api:        api,
		names:      names,
		language:   language,
		topPlanets: topPlanets,
		logger:     logger,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /debug/vars", expvar.Handler())

	mux.HandleFunc("GET /v1/wars/{id}/summary", s.count(s.handleSummary))
	mux.HandleFunc("GET /v1/wars/{id}/sectors", s.count(s.handleSectors))
	mux.HandleFunc("GET /v1/wars/{id}/factions", s.count(s.handleFactions))
	mux.HandleFunc("GET /v1/wars/{id}/time", s.count(s.handleTime))
	mux.HandleFunc("GET /v1/wars/{id}/news", s.count(s.handleNews))

	return mux
}

// --- middleware ---

func (s *Server) count(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.Inc(metrics.GatewayRequests)
		next(w, r)
	}
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	warID, ok := s.warID(w, r)
	if !ok {
		return
	}
	lang, ok := s.lang(w, r)
	if !ok {
		return
	}
	top, ok := s.positiveInt(w, r, "top", s.topPlanets)
	if !ok {
		return
	}

	status, err := s.api.Status(r.Context(), warID, lang)
	if err != nil {
		s.writeUpstreamError(w, warID, err)
		return
	}

	s.writeJSON(w, http.StatusOK, analysis.Summarize(status, top, s.names))
}

// sectorsResponse is returned by GET /v1/wars/{id}/sectors.
type sectorsResponse struct {
	WarID   int64           `json:"war_id"`
	Sectors []models.Sector `json:"sectors"`
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	warID, ok := s.warID(w, r)
	if !ok {
		return
	}

	info, err := s.api.WarInfo(r.Context(), warID)
	if err != nil {
		s.writeUpstreamError(w, warID, err)
		return
	}

	s.writeJSON(w, http.StatusOK, sectorsResponse{
		WarID:   warID,
		Sectors: analysis.ReconstructSectors(info, s.names),
	})
}

// factionsResponse is returned by GET /v1/wars/{id}/factions.
type factionsResponse struct {
	WarID    int64                     `json:"war_id"`
	Factions []analysis.FactionSummary `json:"factions"`
}

func (s *Server) handleFactions(w http.ResponseWriter, r *http.Request) {
	warID, ok := s.warID(w, r)
	if !ok {
		return
	}

	status, err := s.api.Status(r.Context(), warID, s.language)
	if err != nil {
		s.writeUpstreamError(w, warID, err)
		return
	}

	dist := analysis.FactionDistribution(status)
	factions := analysis.ReconstructFactions(status, s.names)
	out := make([]analysis.FactionSummary, 0, len(factions))
	for _, f := range factions {
		out = append(out, analysis.FactionSummary{ID: f.ID, Name: f.Name, Planets: dist[f.ID]})
	}

	s.writeJSON(w, http.StatusOK, factionsResponse{WarID: warID, Factions: out})
}

func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	warID, ok := s.warID(w, r)
	if !ok {
		return
	}

	wt, err := s.api.WarTime(r.Context(), warID)
	if err != nil {
		s.writeUpstreamError(w, warID, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]int64{"war_id": warID, "time": wt})
}

// newsItem is the JSON shape of one news entry.
type newsItem struct {
	ID        int64    `json:"id"`
	Published int64    `json:"published"`
	Type      int64    `json:"type"`
	Tags      []string `json:"tags"`
	Message   string   `json:"message"`
}

// newsResponse is returned by GET /v1/wars/{id}/news.
type newsResponse struct {
	WarID int64      `json:"war_id"`
	Items []newsItem `json:"items"`
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	warID, ok := s.warID(w, r)
	if !ok {
		return
	}
	lang, ok := s.lang(w, r)
	if !ok {
		return
	}
	limit, ok := s.positiveInt(w, r, "limit", defaultNewsLimit)
	if !ok {
		return
	}

	items, err := s.api.NewsFeed(r.Context(), warID, lang)
	if err != nil {
		s.writeUpstreamError(w, warID, err)
		return
	}

	latest := analysis.LatestNews(items, limit)
	out := make([]newsItem, 0, len(latest))
	for _, it := range latest {
		out = append(out, newsItem{ID: it.ID, Published: it.Published, Type: it.Type, Tags: it.TagIDs, Message: it.Message})
	}

	s.writeJSON(w, http.StatusOK, newsResponse{WarID: warID, Items: out})
}

// --- helpers ---

func (s *Server) warID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, http.StatusBadRequest, "war id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (s *Server) lang(w http.ResponseWriter, r *http.Request) (models.Language, bool) {
	raw := r.URL.Query().Get("lang")
	if raw == "" {
		return s.language, true
	}
	lang, err := models.ParseLanguage(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return lang, true
}

func (s *Server) positiveInt(w http.ResponseWriter, r *http.Request, key string, def int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		s.writeError(w, http.StatusBadRequest, key+" must be a positive integer")
		return 0, false
	}
	return n, true
}

// writeUpstreamError maps a client error onto a gateway status code.
func (s *Server) writeUpstreamError(w http.ResponseWriter, warID int64, err error) {
	switch {
	case errors.Is(err, client.ErrInvalidWarID):
		s.writeError(w, http.StatusNotFound, "unknown war")
	case errors.Is(err, context.Canceled):
		s.logger.Debug("request canceled", "war_id", warID)
	default:
		s.logger.Error("upstream fetch failed", "war_id", warID, "error", err)
		s.writeError(w, http.StatusBadGateway, "upstream fetch failed")
	}
}

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
