package briefing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/warfeed/pkg/analysis"
	"github.com/ajitpratap0/warfeed/pkg/models"
)

// Fetcher is the subset of the war-status client a briefing reads from.
type Fetcher interface {
	Status(ctx context.Context, warID int64, lang models.Language) (*models.Status, error)
	WarInfo(ctx context.Context, warID int64) (*models.WarInfo, error)
	NewsFeed(ctx context.Context, warID int64, lang models.Language) ([]models.NewsItem, error)
}

// Namer resolves faction and sector names.
type Namer interface {
	analysis.FactionNamer
	analysis.SectorNamer
}

// Gather fetches status, layout and news for one war in parallel and
// assembles them into an Input. The first failed fetch cancels the others.
func Gather(ctx context.Context, api Fetcher, names Namer, warID int64, lang models.Language, top int) (Input, error) {
	var (
		status *models.Status
		info   *models.WarInfo
		news   []models.NewsItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		status, err = api.Status(gctx, warID, lang)
		return err
	})
	g.Go(func() error {
		var err error
		info, err = api.WarInfo(gctx, warID)
		return err
	})
	g.Go(func() error {
		var err error
		news, err = api.NewsFeed(gctx, warID, lang)
		return err
	})
	if err := g.Wait(); err != nil {
		return Input{}, fmt.Errorf("gathering war %d: %w", warID, err)
	}

	return Input{
		Summary: analysis.Summarize(status, top, names),
		Sectors: analysis.ReconstructSectors(info, names),
		Events:  status.GlobalEvents,
		News:    news,
	}, nil
}
