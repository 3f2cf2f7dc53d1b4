package briefing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/warfeed/pkg/models"
	"github.com/ajitpratap0/warfeed/pkg/refdata"
)

type fakeFetcher struct {
	newsErr error
}

func (f *fakeFetcher) Status(_ context.Context, warID int64, _ models.Language) (*models.Status, error) {
	return &models.Status{
		WarID: warID,
		PlanetStatus: []models.PlanetStatus{
			{Index: 0, Owner: 1, Players: 50, PlanetName: "Super Earth"},
			{Index: 5, Owner: 2, Players: 70, PlanetName: "Pilen V"},
		},
		GlobalEvents: []models.GlobalEvent{{EventID: 9, Title: "ORDER"}},
	}, nil
}

func (f *fakeFetcher) WarInfo(_ context.Context, warID int64) (*models.WarInfo, error) {
	return &models.WarInfo{WarID: warID, PlanetInfos: []models.PlanetInfo{
		{Index: 0, Sector: 0},
		{Index: 5, Sector: 2},
	}}, nil
}

func (f *fakeFetcher) NewsFeed(ctx context.Context, _ int64, _ models.Language) ([]models.NewsItem, error) {
	if f.newsErr != nil {
		return nil, f.newsErr
	}
	return []models.NewsItem{{ID: 1, Published: 5, Message: "hello", TagIDs: []string{}}}, nil
}

func TestGather(t *testing.T) {
	in, err := Gather(context.Background(), &fakeFetcher{}, refdata.Bundled(), 801, models.English, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(801), in.Summary.WarID)
	assert.Equal(t, int64(120), in.Summary.TotalPlayers)
	require.Len(t, in.Summary.TopPlanets, 1)
	assert.Equal(t, "Pilen V", in.Summary.TopPlanets[0].Name)
	require.Len(t, in.Sectors, 2)
	assert.Equal(t, "Sol", in.Sectors[0].Name)
	require.Len(t, in.Events, 1)
	require.Len(t, in.News, 1)
}

func TestGather_FetchError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Gather(context.Background(), &fakeFetcher{newsErr: boom}, refdata.Bundled(), 801, models.English, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "gathering war 801")
}
