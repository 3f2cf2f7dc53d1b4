package analysis

import (
	"sort"

	"github.com/ajitpratap0/warfeed/pkg/models"
)

// LatestNews returns up to n news items ordered newest first. Items with
// the same publish time keep their feed order. n <= 0 means no limit.
func LatestNews(items []models.NewsItem, n int) []models.NewsItem {
	out := make([]models.NewsItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Published > out[j].Published })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
