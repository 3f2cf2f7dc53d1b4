// Package enrich stamps display names onto freshly decoded API records.
package enrich

import "github.com/ajitpratap0/warfeed/pkg/models"

// PlanetNamer resolves a planet index to its display name.
type PlanetNamer interface {
	PlanetName(id int64) (string, bool)
}

// planetName resolves id with names. A nil namer never matches.
func planetName(names PlanetNamer, id int64) (string, bool) {
	if names == nil {
		return "", false
	}
	return names.PlanetName(id)
}

// Status fills the derived planet names of every campaign, attack and
// planet status in s, in place. Unknown indices get an empty name.
// It returns how many lookups missed.
func Status(s *models.Status, names PlanetNamer) int {
	if s == nil {
		return 0
	}
	var misses int
	lookup := func(id int64) string {
		name, ok := planetName(names, id)
		if !ok {
			misses++
		}
		return name
	}

	for i := range s.Campaigns {
		s.Campaigns[i].PlanetName = lookup(s.Campaigns[i].PlanetIndex)
	}
	for i := range s.PlanetAttacks {
		s.PlanetAttacks[i].SourceName = lookup(s.PlanetAttacks[i].Source)
		s.PlanetAttacks[i].TargetName = lookup(s.PlanetAttacks[i].Target)
	}
	for i := range s.PlanetStatus {
		s.PlanetStatus[i].PlanetName = lookup(s.PlanetStatus[i].Index)
	}
	return misses
}

// WarInfo fills PlanetName on every planet info in w, in place.
// It returns how many lookups missed.
func WarInfo(w *models.WarInfo, names PlanetNamer) int {
	if w == nil {
		return 0
	}
	var misses int
	for i := range w.PlanetInfos {
		name, ok := planetName(names, w.PlanetInfos[i].Index)
		if !ok {
			misses++
		}
		w.PlanetInfos[i].PlanetName = name
	}
	return misses
}
