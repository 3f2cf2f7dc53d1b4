package models

import "encoding/json"

// WarInfo is the static layout of a war: its planets, sectors and home worlds.
type WarInfo struct {
	WarID                int64        `json:"warId"`
	StartDate            int64        `json:"startDate"`
	EndDate              int64        `json:"endDate"`
	MinimumClientVersion string       `json:"minimumClientVersion"`
	PlanetInfos          []PlanetInfo `json:"planetInfos"`
	HomeWorlds           []HomeWorld  `json:"homeWorlds"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a WarInfo, keeping unmodeled members in Extra.
func (w *WarInfo) UnmarshalJSON(data []byte) error {
	type plain WarInfo
	var v plain
	extra, err := decodeWithExtra(data, &v)
	if err != nil {
		return err
	}
	*w = WarInfo(v)
	w.Extra = extra
	return nil
}

// MarshalJSON encodes a WarInfo, writing Extra members back out.
func (w WarInfo) MarshalJSON() ([]byte, error) {
	type plain WarInfo
	return encodeWithExtra(plain(w), w.Extra)
}

// HomeWorld lists the capital planets of a race.
type HomeWorld struct {
	Race          int64   `json:"race"`
	PlanetIndices []int64 `json:"planetIndices"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a HomeWorld, keeping unmodeled members in Extra.
func (h *HomeWorld) UnmarshalJSON(data []byte) error {
	type plain HomeWorld
	var v plain
	extra, err := decodeWithExtra(data, &v)
	if err != nil {
		return err
	}
	*h = HomeWorld(v)
	h.Extra = extra
	return nil
}

// MarshalJSON encodes a HomeWorld, writing Extra members back out.
func (h HomeWorld) MarshalJSON() ([]byte, error) {
	type plain HomeWorld
	return encodeWithExtra(plain(h), h.Extra)
}

// Position is a planet's coordinate on the galaxy map.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a Position, keeping unmodeled members in Extra.
func (p *Position) UnmarshalJSON(data []byte) error {
	type plain Position
	var v plain
	extra, err := decodeWithExtra(data, &v)
	if err != nil {
		return err
	}
	*p = Position(v)
	p.Extra = extra
	return nil
}

// MarshalJSON encodes a Position, writing Extra members back out.
func (p Position) MarshalJSON() ([]byte, error) {
	type plain Position
	return encodeWithExtra(plain(p), p.Extra)
}

// PlanetInfo describes one planet of a war.
type PlanetInfo struct {
	Index        int64    `json:"index"`
	SettingsHash int64    `json:"settingsHash"`
	Position     Position `json:"position"`
	Waypoints    []int64  `json:"waypoints"`
	Sector       int64    `json:"sector"`
	MaxHealth    int64    `json:"maxHealth"`
	Disabled     bool     `json:"disabled"`
	InitialOwner int64    `json:"initialOwner"`

	PlanetName string `json:"-"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a PlanetInfo, keeping unmodeled members in Extra.
func (p *PlanetInfo) UnmarshalJSON(data []byte) error {
	type plain PlanetInfo
	var v plain
	extra, err := decodeWithExtra(data, &v)
	if err != nil {
		return err
	}
	*p = PlanetInfo(v)
	p.Extra = extra
	return nil
}

// MarshalJSON encodes a PlanetInfo, writing Extra members back out.
func (p PlanetInfo) MarshalJSON() ([]byte, error) {
	type plain PlanetInfo
	return encodeWithExtra(plain(p), p.Extra)
}
