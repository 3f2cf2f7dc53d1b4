// Package models defines the war-status API records and the named
// reference entities they are resolved against.
package models

// Planet is a named planet from the reference tables.
type Planet struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Faction is a named faction (race) from the reference tables.
type Faction struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Sector groups planets under a shared name.
// Planets holds planet indices in ascending order.
type Sector struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Planets []int64 `json:"planets"`
}
