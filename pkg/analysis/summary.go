package analysis

import (
	"sort"

	"github.com/ajitpratap0/warfeed/pkg/models"
)

// Summary is a JSON-friendly digest of an enriched Status.
type Summary struct {
	WarID            int64             `json:"war_id"`
	Time             int64             `json:"time"`
	ImpactMultiplier float64           `json:"impact_multiplier"`
	TotalPlayers     int64             `json:"total_players"`
	TopPlanets       []PlanetSummary   `json:"top_planets"`
	Factions         []FactionSummary  `json:"factions"`
	Campaigns        []CampaignSummary `json:"campaigns"`
	Attacks          []AttackSummary   `json:"attacks"`
}

// PlanetSummary is one planet of Summary.TopPlanets.
type PlanetSummary struct {
	Index     int64  `json:"index"`
	Name      string `json:"name"`
	Owner     int64  `json:"owner"`
	OwnerName string `json:"owner_name"`
	Health    int64  `json:"health"`
	Players   int64  `json:"players"`
}

// FactionSummary is the planet count of one faction.
type FactionSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Planets int    `json:"planets"`
}

// CampaignSummary is one active campaign.
type CampaignSummary struct {
	ID          int64  `json:"id"`
	PlanetIndex int64  `json:"planet_index"`
	PlanetName  string `json:"planet_name"`
	Type        int64  `json:"type"`
	Count       int64  `json:"count"`
}

// AttackSummary is one planet attack.
type AttackSummary struct {
	Source     int64  `json:"source"`
	SourceName string `json:"source_name"`
	Target     int64  `json:"target"`
	TargetName string `json:"target_name"`
}

// Summarize digests s, keeping the top n planets by player count.
func Summarize(s *models.Status, n int, names FactionNamer) Summary {
	sum := Summary{
		TopPlanets: []PlanetSummary{},
		Factions:   []FactionSummary{},
		Campaigns:  []CampaignSummary{},
		Attacks:    []AttackSummary{},
	}
	if s == nil {
		return sum
	}
	sum.WarID = s.WarID
	sum.Time = s.Time
	sum.ImpactMultiplier = s.ImpactMultiplier
	sum.TotalPlayers = TotalPlayers(s)

	for _, rp := range TopPlanets(s, n) {
		ownerName, _ := names.FactionName(rp.Planet.Owner)
		sum.TopPlanets = append(sum.TopPlanets, PlanetSummary{
			Index:     rp.Planet.Index,
			Name:      rp.Planet.PlanetName,
			Owner:     rp.Planet.Owner,
			OwnerName: ownerName,
			Health:    rp.Planet.Health,
			Players:   rp.Players,
		})
	}

	dist := FactionDistribution(s)
	for _, f := range ReconstructFactions(s, names) {
		sum.Factions = append(sum.Factions, FactionSummary{ID: f.ID, Name: f.Name, Planets: dist[f.ID]})
	}
	sort.SliceStable(sum.Factions, func(i, j int) bool { return sum.Factions[i].Planets > sum.Factions[j].Planets })

	for i := range s.Campaigns {
		c := &s.Campaigns[i]
		sum.Campaigns = append(sum.Campaigns, CampaignSummary{
			ID:          c.ID,
			PlanetIndex: c.PlanetIndex,
			PlanetName:  c.PlanetName,
			Type:        c.Type,
			Count:       c.Count,
		})
	}
	for i := range s.PlanetAttacks {
		a := &s.PlanetAttacks[i]
		sum.Attacks = append(sum.Attacks, AttackSummary{
			Source:     a.Source,
			SourceName: a.SourceName,
			Target:     a.Target,
			TargetName: a.TargetName,
		})
	}
	return sum
}
