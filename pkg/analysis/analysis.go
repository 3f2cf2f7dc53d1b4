// Package analysis provides read-only queries over enriched war records.
// None of the functions mutate their input or perform I/O.
package analysis

import (
	"slices"
	"sort"

	"github.com/ajitpratap0/warfeed/pkg/models"
)

// SectorNamer resolves a sector id to its static name.
type SectorNamer interface {
	SectorName(id int64) (string, bool)
}

// FactionNamer resolves a faction id to its static name.
type FactionNamer interface {
	FactionName(id int64) (string, bool)
}

// RankedPlanet pairs a planet status with its player count.
type RankedPlanet struct {
	Planet  models.PlanetStatus
	Players int64
}

// TotalPlayers sums players across every planet of the snapshot.
func TotalPlayers(s *models.Status) int64 {
	if s == nil {
		return 0
	}
	var total int64
	for i := range s.PlanetStatus {
		total += s.PlanetStatus[i].Players
	}
	return total
}

// TopPlanets returns up to n planets ordered by descending player count.
// Planets with equal counts keep their response order.
func TopPlanets(s *models.Status, n int) []RankedPlanet {
	if s == nil || n <= 0 {
		return []RankedPlanet{}
	}
	ranked := make([]RankedPlanet, len(s.PlanetStatus))
	for i := range s.PlanetStatus {
		ranked[i] = RankedPlanet{Planet: s.PlanetStatus[i], Players: s.PlanetStatus[i].Players}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Players > ranked[j].Players })
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// FactionDistribution counts planets per owning faction.
func FactionDistribution(s *models.Status) map[int64]int {
	dist := make(map[int64]int)
	if s == nil {
		return dist
	}
	for i := range s.PlanetStatus {
		dist[s.PlanetStatus[i].Owner]++
	}
	return dist
}

// ReconstructSectors derives sectors from the planets of a live war rather
// than the static table, since a running war may contain sectors the bundled
// data does not know yet. Static names are used where available.
func ReconstructSectors(w *models.WarInfo, names SectorNamer) []models.Sector {
	if w == nil {
		return []models.Sector{}
	}
	members := make(map[int64][]int64)
	for i := range w.PlanetInfos {
		pi := &w.PlanetInfos[i]
		members[pi.Sector] = append(members[pi.Sector], pi.Index)
	}

	sectors := make([]models.Sector, 0, len(members))
	for id, planets := range members {
		slices.Sort(planets)
		name, _ := names.SectorName(id)
		sectors = append(sectors, models.Sector{
			ID:      id,
			Name:    name,
			Planets: slices.Compact(planets),
		})
	}
	sort.Slice(sectors, func(i, j int) bool { return sectors[i].ID < sectors[j].ID })
	return sectors
}

// ReconstructFactions returns the distinct owners seen in the snapshot,
// ordered by id.
func ReconstructFactions(s *models.Status, names FactionNamer) []models.Faction {
	if s == nil {
		return []models.Faction{}
	}
	ids := make([]int64, 0, len(s.PlanetStatus))
	for i := range s.PlanetStatus {
		ids = append(ids, s.PlanetStatus[i].Owner)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	factions := make([]models.Faction, 0, len(ids))
	for _, id := range ids {
		name, _ := names.FactionName(id)
		factions = append(factions, models.Faction{ID: id, Name: name})
	}
	return factions
}
