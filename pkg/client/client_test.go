package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/warfeed/pkg/models"
	"github.com/ajitpratap0/warfeed/pkg/refdata"
)

const statusBody = `{
	"warId": 801,
	"time": 5000,
	"impactMultiplier": 0.01,
	"storyBeatId32": 1,
	"planetStatus": [
		{"index": 0, "owner": 1, "health": 1000000, "regenPerSecond": 0, "players": 10},
		{"index": 4242, "owner": 2, "health": 50, "regenPerSecond": 1.5, "players": 3}
	],
	"planetAttacks": [{"source": 1, "target": 4242}],
	"campaigns": [{"id": 1, "planetIndex": 2, "type": 0, "count": 1}],
	"globalEvents": [{"eventId": 1, "message": "Hold the line", "race": 1}],
	"superEarthWarResults": []
}`

const warInfoBody = `{
	"warId": 801,
	"startDate": 1,
	"endDate": 2,
	"minimumClientVersion": "0.3.0",
	"planetInfos": [
		{"index": 0, "settingsHash": 1, "position": {"x": 0, "y": 0}, "waypoints": [], "sector": 0, "maxHealth": 1000000, "disabled": false, "initialOwner": 1}
	],
	"homeWorlds": [{"race": 1, "planetIndices": [0]}]
}`

// fakeAPI records the last request seen per path.
type fakeAPI struct {
	mu      sync.Mutex
	headers map[string]http.Header
	status  int
	bodies  map[string]string
}

func newFakeAPI(t *testing.T, status int) (*httptest.Server, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{
		headers: make(map[string]http.Header),
		status:  status,
		bodies: map[string]string{
			"/api/WarSeason/801/Status":  statusBody,
			"/api/WarSeason/801/WarInfo": warInfoBody,
			"/api/WarSeason/801/WarTime": `{"time": 123456}`,
			"/api/NewsFeed/801":          `[{"id": 1, "published": 10, "type": 0, "tagIds": [], "message": "Victory"}]`,
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.headers[r.URL.Path] = r.Header.Clone()
		api.mu.Unlock()

		if r.Method != http.MethodGet {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		body, ok := api.bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(api.status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, api
}

func (a *fakeAPI) header(path string) http.Header {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.headers[path]
}

func newTestClient(srv *httptest.Server) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWithURL(srv.URL+"/api/", srv.Client(), refdata.Bundled(), logger)
}

func TestStatus_EnrichedAndLocalized(t *testing.T) {
	srv, api := newFakeAPI(t, http.StatusOK)
	c := newTestClient(srv)

	status, err := c.Status(context.Background(), 801, models.German)
	require.NoError(t, err)

	assert.Equal(t, "de-DE", api.header("/api/WarSeason/801/Status").Get("Accept-Language"))
	require.Len(t, status.PlanetStatus, 2)
	assert.Equal(t, "Super Earth", status.PlanetStatus[0].PlanetName)
	assert.Equal(t, "", status.PlanetStatus[1].PlanetName)
	assert.Equal(t, "Klen Dahth II", status.PlanetAttacks[0].SourceName)
	assert.Equal(t, "", status.PlanetAttacks[0].TargetName)
	assert.Equal(t, "Pathfinder V", status.Campaigns[0].PlanetName)
	assert.Contains(t, status.Extra, "superEarthWarResults")
}

func TestWarInfo_EnrichedWithoutLanguage(t *testing.T) {
	srv, api := newFakeAPI(t, http.StatusOK)
	c := newTestClient(srv)

	info, err := c.WarInfo(context.Background(), 801)
	require.NoError(t, err)

	assert.Empty(t, api.header("/api/WarSeason/801/WarInfo").Get("Accept-Language"))
	require.Len(t, info.PlanetInfos, 1)
	assert.Equal(t, "Super Earth", info.PlanetInfos[0].PlanetName)
	assert.Equal(t, []int64{0}, info.HomeWorlds[0].PlanetIndices)
}

func TestWarTime(t *testing.T) {
	srv, _ := newFakeAPI(t, http.StatusOK)
	c := newTestClient(srv)

	wt, err := c.WarTime(context.Background(), 801)
	require.NoError(t, err)
	assert.Equal(t, int64(123456), wt)
}

func TestNewsFeed(t *testing.T) {
	srv, api := newFakeAPI(t, http.StatusOK)
	c := newTestClient(srv)

	items, err := c.NewsFeed(context.Background(), 801, models.Chinese)
	require.NoError(t, err)

	assert.Equal(t, "zh-Hans", api.header("/api/NewsFeed/801").Get("Accept-Language"))
	require.Len(t, items, 1)
	assert.Equal(t, "Victory", items[0].Message)
}

func TestInvalidWarID(t *testing.T) {
	srv, _ := newFakeAPI(t, http.StatusOK)
	c := newTestClient(srv)

	_, err := c.Status(context.Background(), 9999, models.English)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrInvalidWarID))
	assert.False(t, errors.Is(err, ErrAPI))
	var invalid *InvalidWarIDError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, srv.URL+"/api/WarSeason/9999/Status", invalid.URL)
}

func TestAPIError(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		srv, _ := newFakeAPI(t, code)
		c := newTestClient(srv)

		_, err := c.WarTime(context.Background(), 801)
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, code, apiErr.StatusCode)
		assert.True(t, errors.Is(err, ErrAPI))
		assert.False(t, errors.Is(err, ErrInvalidWarID))
	}
}

func TestDecodeError(t *testing.T) {
	srv, api := newFakeAPI(t, http.StatusOK)
	api.bodies["/api/WarSeason/801/WarInfo"] = `{"planetInfos": "nope"}`
	c := newTestClient(srv)

	info, err := c.WarInfo(context.Background(), 801)
	require.Error(t, err)
	assert.Nil(t, info)
	assert.True(t, errors.Is(err, ErrDecode))
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestDecodeError_NullBody(t *testing.T) {
	srv, api := newFakeAPI(t, http.StatusOK)
	api.bodies["/api/WarSeason/801/Status"] = "null"
	api.bodies["/api/WarSeason/801/WarInfo"] = " null\n"
	api.bodies["/api/NewsFeed/801"] = "null"
	c := newTestClient(srv)
	ctx := context.Background()

	status, err := c.Status(ctx, 801, models.English)
	require.Error(t, err)
	assert.Nil(t, status)
	assert.ErrorIs(t, err, ErrDecode)

	info, err := c.WarInfo(ctx, 801)
	require.Error(t, err)
	assert.Nil(t, info)
	assert.ErrorIs(t, err, ErrDecode)

	items, err := c.NewsFeed(ctx, 801, models.English)
	require.Error(t, err)
	assert.Nil(t, items)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "null")
}

func TestNewWithURL_NilLoggerAndNames(t *testing.T) {
	srv, _ := newFakeAPI(t, http.StatusOK)
	c := NewWithURL(srv.URL+"/api", srv.Client(), nil, nil)

	status, err := c.Status(context.Background(), 801, models.English)
	require.NoError(t, err)
	require.Len(t, status.PlanetStatus, 2)
	assert.Empty(t, status.PlanetStatus[0].PlanetName)

	info, err := c.WarInfo(context.Background(), 801)
	require.NoError(t, err)
	assert.Empty(t, info.PlanetInfos[0].PlanetName)
}

func TestTransportError(t *testing.T) {
	srv, _ := newFakeAPI(t, http.StatusOK)
	c := newTestClient(srv)
	srv.Close()

	_, err := c.WarTime(context.Background(), 801)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.NotNil(t, te.Unwrap())
}

func TestCanceledContext(t *testing.T) {
	srv, _ := newFakeAPI(t, http.StatusOK)
	c := newTestClient(srv)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Status(ctx, 801, models.English)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func TestNewWithURL_CustomDoer(t *testing.T) {
	var gotURL string
	doer := doerFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"time": 7}`)),
			Header:     make(http.Header),
		}, nil
	})
	c := NewWithURL("https://example.test/api", doer, refdata.Bundled(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	wt, err := c.WarTime(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), wt)
	assert.Equal(t, "https://example.test/api/WarSeason/5/WarTime", gotURL)
}
