package refdata

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundled_KnownNames(t *testing.T) {
	name, ok := PlanetName(0)
	require.True(t, ok)
	assert.Equal(t, "Super Earth", name)

	name, ok = FactionName(1)
	require.True(t, ok)
	assert.Equal(t, "Humans", name)

	name, ok = SectorName(0)
	require.True(t, ok)
	assert.Equal(t, "Sol", name)
}

func TestBundled_TablesNotEmpty(t *testing.T) {
	s := Bundled()
	assert.NotEmpty(t, s.Planets())
	assert.NotEmpty(t, s.Factions())
	assert.NotEmpty(t, s.Sectors())
}

func TestBundled_UnknownIDsAreAbsent(t *testing.T) {
	for _, id := range []int64{-1, 100000, 1 << 40} {
		name, ok := PlanetName(id)
		assert.False(t, ok)
		assert.Empty(t, name)

		name, ok = FactionName(id)
		assert.False(t, ok)
		assert.Empty(t, name)

		name, ok = SectorName(id)
		assert.False(t, ok)
		assert.Empty(t, name)
	}
}

func TestBundled_SectorPlanetsExistInPlanetTable(t *testing.T) {
	s := Bundled()
	for _, sec := range s.Sectors() {
		for _, p := range sec.Planets {
			_, ok := s.PlanetName(p)
			assert.True(t, ok, "sector %d references unknown planet %d", sec.ID, p)
		}
	}
}

func TestBundled_BuiltOnceUnderConcurrency(t *testing.T) {
	const readers = 32
	stores := make([]*Store, readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i] = Bundled()
			_, _ = stores[i].PlanetName(0)
		}(i)
	}
	wg.Wait()

	for i := 1; i < readers; i++ {
		assert.Same(t, stores[0], stores[i])
	}
}

func TestParse_CustomTables(t *testing.T) {
	s, err := Parse(Sources{
		Planets:  []byte(`1 = "Super Earth"` + "\n" + `2 = "Malevelon Creek"`),
		Factions: []byte(`3 = "Automaton"`),
		Sectors: []byte(`
[4]
name = "Severin"
planets = [2, 1, 2]
`),
	})
	require.NoError(t, err)

	p, ok := s.Planet(2)
	require.True(t, ok)
	assert.Equal(t, "Malevelon Creek", p.Name)
	assert.Equal(t, int64(2), p.ID)

	f, ok := s.Faction(3)
	require.True(t, ok)
	assert.Equal(t, "Automaton", f.Name)

	sec, ok := s.Sector(4)
	require.True(t, ok)
	assert.Equal(t, "Severin", sec.Name)
	assert.Equal(t, []int64{1, 2}, sec.Planets)
}

func TestParse_DuplicateIDsLastWriteWins(t *testing.T) {
	s, err := Parse(Sources{
		Planets: []byte(`07 = "First"` + "\n" + `7 = "Second"`),
	})
	require.NoError(t, err)

	name, ok := s.PlanetName(7)
	require.True(t, ok)
	assert.Equal(t, "Second", name)
	assert.Len(t, s.Planets(), 1)
}

func TestParse_MalformedKeyFails(t *testing.T) {
	tests := []struct {
		name string
		src  Sources
		want string
	}{
		{"planet", Sources{Planets: []byte(`abc = "x"`)}, "planets"},
		{"faction", Sources{Factions: []byte(`"1.5" = "x"`)}, "factions"},
		{"sector", Sources{Sectors: []byte("[x1]\nname = \"y\"\n")}, "sectors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.src)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_InvalidTOMLFails(t *testing.T) {
	_, err := Parse(Sources{Planets: []byte(`1 = `)})
	assert.Error(t, err)
}

func TestSector_ReturnsCopy(t *testing.T) {
	s := Bundled()
	sec, ok := s.Sector(1)
	require.True(t, ok)
	require.NotEmpty(t, sec.Planets)
	sec.Planets[0] = -99

	again, _ := s.Sector(1)
	assert.NotEqual(t, int64(-99), again.Planets[0])
}

func TestLoadDir_OverridesAndFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planets.toml"),
		[]byte(`0 = "Super Earth"`+"\n"+`200 = "Malevelon Creek"`), 0o600))

	s, err := LoadDir(dir)
	require.NoError(t, err)

	name, ok := s.PlanetName(200)
	require.True(t, ok)
	assert.Equal(t, "Malevelon Creek", name)

	_, ok = s.PlanetName(1)
	assert.False(t, ok, "planets.toml replaces the bundled planet table")

	faction, ok := s.FactionName(2)
	require.True(t, ok)
	assert.Equal(t, "Terminids", faction)
	assert.Equal(t, len(Bundled().Sectors()), len(s.Sectors()))
}

func TestLoadDir_EmptyDirIsBundled(t *testing.T) {
	s, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Bundled().Planets(), s.Planets())
}

func TestLoadDir_MalformedTableFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "factions.toml"), []byte(`x = "Humans"`), 0o600))

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "factions")
}
