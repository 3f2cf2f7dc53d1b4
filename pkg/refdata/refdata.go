// Package refdata holds the static planet, faction and sector name tables
// bundled with the binary. The bundled planet table is a partial snapshot of
// the game's planet list; LoadDir layers fuller tables from disk on top.
// Tables are immutable once built and safe for concurrent readers.
package refdata

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ajitpratap0/warfeed/pkg/models"
)

//go:embed data/*.toml
var bundled embed.FS

// Resolver resolves raw indices to display names.
type Resolver interface {
	PlanetName(id int64) (string, bool)
	FactionName(id int64) (string, bool)
	SectorName(id int64) (string, bool)
}

// Sources is the raw TOML text of the three tables.
type Sources struct {
	Planets  []byte
	Factions []byte
	Sectors  []byte
}

// Store is a set of immutable lookup tables.
type Store struct {
	planets  map[int64]models.Planet
	factions map[int64]models.Faction
	sectors  map[int64]models.Sector
}

var _ Resolver = (*Store)(nil)

type sectorEntry struct {
	Name    string  `toml:"name"`
	Planets []int64 `toml:"planets"`
}

// Parse builds a Store from TOML sources. Keys must be base-10 integers.
// Keys that parse to the same id (for example "7" and "07") are applied in
// lexical key order, so the last one wins.
func Parse(src Sources) (*Store, error) {
	var rawPlanets, rawFactions map[string]string
	var rawSectors map[string]sectorEntry

	if err := toml.Unmarshal(src.Planets, &rawPlanets); err != nil {
		return nil, fmt.Errorf("refdata: parsing planets: %w", err)
	}
	if err := toml.Unmarshal(src.Factions, &rawFactions); err != nil {
		return nil, fmt.Errorf("refdata: parsing factions: %w", err)
	}
	if err := toml.Unmarshal(src.Sectors, &rawSectors); err != nil {
		return nil, fmt.Errorf("refdata: parsing sectors: %w", err)
	}

	s := &Store{
		planets:  make(map[int64]models.Planet, len(rawPlanets)),
		factions: make(map[int64]models.Faction, len(rawFactions)),
		sectors:  make(map[int64]models.Sector, len(rawSectors)),
	}

	for _, key := range sortedKeys(rawPlanets) {
		id, err := parseID("planets", key)
		if err != nil {
			return nil, err
		}
		s.planets[id] = models.Planet{ID: id, Name: rawPlanets[key]}
	}
	for _, key := range sortedKeys(rawFactions) {
		id, err := parseID("factions", key)
		if err != nil {
			return nil, err
		}
		s.factions[id] = models.Faction{ID: id, Name: rawFactions[key]}
	}
	for _, key := range sortedKeys(rawSectors) {
		id, err := parseID("sectors", key)
		if err != nil {
			return nil, err
		}
		entry := rawSectors[key]
		planets := slices.Clone(entry.Planets)
		slices.Sort(planets)
		planets = slices.Compact(planets)
		if planets == nil {
			planets = []int64{}
		}
		s.sectors[id] = models.Sector{ID: id, Name: entry.Name, Planets: planets}
	}

	return s, nil
}

func parseID(table, key string) (int64, error) {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("refdata: %s: invalid id %q: %w", table, key, err)
	}
	return id, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BundledSources returns the TOML tables embedded in the binary.
func BundledSources() Sources {
	return Sources{
		Planets:  mustRead("data/planets.toml"),
		Factions: mustRead("data/factions.toml"),
		Sectors:  mustRead("data/sectors.toml"),
	}
}

func mustRead(name string) []byte {
	b, err := bundled.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("refdata: reading bundled %s: %v", name, err))
	}
	return b
}

// LoadDir builds a Store from planets.toml, factions.toml and sectors.toml
// in dir. A table missing from dir falls back to the bundled one.
func LoadDir(dir string) (*Store, error) {
	src := BundledSources()
	tables := []struct {
		name string
		dst  *[]byte
	}{
		{"planets.toml", &src.Planets},
		{"factions.toml", &src.Factions},
		{"sectors.toml", &src.Sectors},
	}
	for _, t := range tables {
		b, err := os.ReadFile(filepath.Join(dir, t.name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("refdata: reading %s: %w", t.name, err)
		}
		*t.dst = b
	}
	return Parse(src)
}

var bundledStore = sync.OnceValue(func() *Store {
	s, err := Parse(BundledSources())
	if err != nil {
		panic(err)
	}
	return s
})

// Bundled returns the process-wide Store built from the embedded tables.
// The first call parses the tables; malformed bundled data panics.
func Bundled() *Store {
	return bundledStore()
}

// PlanetName returns the bundled name for a planet index.
func PlanetName(id int64) (string, bool) { return Bundled().PlanetName(id) }

// FactionName returns the bundled name for a faction id.
func FactionName(id int64) (string, bool) { return Bundled().FactionName(id) }

// SectorName returns the bundled name for a sector id.
func SectorName(id int64) (string, bool) { return Bundled().SectorName(id) }

func (s *Store) PlanetName(id int64) (string, bool) {
	p, ok := s.planets[id]
	return p.Name, ok
}

func (s *Store) FactionName(id int64) (string, bool) {
	f, ok := s.factions[id]
	return f.Name, ok
}

func (s *Store) SectorName(id int64) (string, bool) {
	sec, ok := s.sectors[id]
	return sec.Name, ok
}

// Planet returns the planet with the given index.
func (s *Store) Planet(id int64) (models.Planet, bool) {
	p, ok := s.planets[id]
	return p, ok
}

// Faction returns the faction with the given id.
func (s *Store) Faction(id int64) (models.Faction, bool) {
	f, ok := s.factions[id]
	return f, ok
}

// Sector returns the static sector with the given id. The returned planet
// list is a copy.
func (s *Store) Sector(id int64) (models.Sector, bool) {
	sec, ok := s.sectors[id]
	if !ok {
		return models.Sector{}, false
	}
	sec.Planets = slices.Clone(sec.Planets)
	return sec, true
}

// Planets returns all planets ordered by index.
func (s *Store) Planets() []models.Planet {
	out := make([]models.Planet, 0, len(s.planets))
	for _, p := range s.planets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Factions returns all factions ordered by id.
func (s *Store) Factions() []models.Faction {
	out := make([]models.Faction, 0, len(s.factions))
	for _, f := range s.factions {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Sectors returns all static sectors ordered by id.
func (s *Store) Sectors() []models.Sector {
	out := make([]models.Sector, 0, len(s.sectors))
	for _, sec := range s.sectors {
		sec.Planets = slices.Clone(sec.Planets)
		out = append(out, sec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
