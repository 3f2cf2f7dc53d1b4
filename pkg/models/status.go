package models

import "encoding/json"

// Status is a snapshot of a running war.
type Status struct {
	WarID            int64          `json:"warId"`
	Time             int64          `json:"time"`
	ImpactMultiplier float64        `json:"impactMultiplier"`
	StoryBeatID32    int64          `json:"storyBeatId32"`
	PlanetStatus     []PlanetStatus `json:"planetStatus"`
	PlanetAttacks    []PlanetAttack `json:"planetAttacks"`
	Campaigns        []Campaign     `json:"campaigns"`
	GlobalEvents     []GlobalEvent  `json:"globalEvents"`

	// Extra holds payload members this type does not model.
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a Status, keeping unmodeled members in Extra.
func (s *Status) UnmarshalJSON(data []byte) error {
	type plain Status
	var v plain
	extra, err := decodeWithExtra(data, &v)
	if err != nil {
		return err
	}
	*s = Status(v)
	s.Extra = extra
	return nil
}

// MarshalJSON encodes a Status, writing Extra members back out.
func (s Status) MarshalJSON() ([]byte, error) {
	type plain Status
	return encodeWithExtra(plain(s), s.Extra)
}

// PlanetStatus is the live state of one planet.
type PlanetStatus struct {
	Index          int64   `json:"index"`
	Owner          int64   `json:"owner"`
	Health         int64   `json:"health"`
	RegenPerSecond float64 `json:"regenPerSecond"`
	Players        int64   `json:"players"`

	// PlanetName is resolved from Index after decoding.
	PlanetName string `json:"-"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a PlanetStatus, keeping unmodeled members in Extra.
func (p *PlanetStatus) UnmarshalJSON(data []byte) error {
	type plain PlanetStatus
	var v plain
	extra, err := decodeWithExtra(data, &v)
	if err != nil {
		return err
	}
	*p = PlanetStatus(v)
	p.Extra = extra
	return nil
}

// MarshalJSON encodes a PlanetStatus, writing Extra members back out.
func (p PlanetStatus) MarshalJSON() ([]byte, error) {
	type plain PlanetStatus
	return encodeWithExtra(plain(p), p.Extra)
}

// PlanetAttack is an active attack from one planet onto another.
type PlanetAttack struct {
	Source int64 `json:"source"`
	Target int64 `json:"target"`

	SourceName string `json:"-"`
	TargetName string `json:"-"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a PlanetAttack, keeping unmodeled members in Extra.
func (a *PlanetAttack) UnmarshalJSON(data []byte) error {
	type plain PlanetAttack
	var v plain
	extra, err := decodeWithExtra(data, &v)
	if err != nil {
		return err
	}
	*a = PlanetAttack(v)
	a.Extra = extra
	return nil
}

// MarshalJSON encodes a PlanetAttack, writing Extra members back out.
func (a PlanetAttack) MarshalJSON() ([]byte, error) {
	type plain PlanetAttack
	return encodeWithExtra(plain(a), a.Extra)
}

// Campaign is an ongoing operation on a planet.
type Campaign struct {
	ID          int64 `json:"id"`
	PlanetIndex int64 `json:"planetIndex"`
	Type        int64 `json:"type"`
	Count       int64 `json:"count"`

	PlanetName string `json:"-"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a Campaign, keeping unmodeled members in Extra.
func (c *Campaign) UnmarshalJSON(data []byte) error {
	type plain Campaign
	var v plain
	extra, err := decodeWithExtra(data, &v)
	if err != nil {
		return err
	}
	*c = Campaign(v)
	c.Extra = extra
	return nil
}

// MarshalJSON encodes a Campaign, writing Extra members back out.
func (c Campaign) MarshalJSON() ([]byte, error) {
	type plain Campaign
	return encodeWithExtra(plain(c), c.Extra)
}

// GlobalEvent is a war-wide announcement. Title and Message are localized.
type GlobalEvent struct {
	EventID        int64  `json:"eventId"`
	ID32           int64  `json:"id32"`
	PortraitID32   int64  `json:"portraitId32"`
	Title          string `json:"title"`
	TitleID32      int64  `json:"titleId32"`
	Message        string `json:"message"`
	MessageID32    int64  `json:"messageId32"`
	Race           int64  `json:"race"`
	Flag           int64  `json:"flag"`
	AssignmentID32 int64  `json:"assignmentId32"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a GlobalEvent, keeping unmodeled members in Extra.
func (e *GlobalEvent) UnmarshalJSON(data []byte) error {
	type plain GlobalEvent
	var v plain
	extra, err := decodeWithExtra(data, &v)
	if err != nil {
		return err
	}
	*e = GlobalEvent(v)
	e.Extra = extra
	return nil
}

// MarshalJSON encodes a GlobalEvent, writing Extra members back out.
func (e GlobalEvent) MarshalJSON() ([]byte, error) {
	type plain GlobalEvent
	return encodeWithExtra(plain(e), e.Extra)
}
