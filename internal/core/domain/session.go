package domain

import (
	"fmt"
	"strings"
	"time"
)

// Species is the closed set of species a session may count.
type Species string

const (
	SpeciesTilapia Species = "Tilapia"
	SpeciesBangus  Species = "Bangus (Milkfish)"
)

// Location is the closed set of counting sites.
type Location string

const (
	LocationCagangohan Location = "Cagangohan"
	LocationSouthern   Location = "Southern"
)

var allSpecies = []Species{SpeciesTilapia, SpeciesBangus}
var allLocations = []Location{LocationCagangohan, LocationSouthern}

// Valid reports whether s is a known species.
func (s Species) Valid() bool {
	for _, v := range allSpecies {
		if s == v {
			return true
		}
	}
	return false
}

// Valid reports whether l is a known location.
func (l Location) Valid() bool {
	for _, v := range allLocations {
		if l == v {
			return true
		}
	}
	return false
}

// AllowedSpecies lists the accepted species values for error messages.
func AllowedSpecies() string {
	vals := make([]string, len(allSpecies))
	for i, s := range allSpecies {
		vals[i] = string(s)
	}
	return strings.Join(vals, ", ")
}

// AllowedLocations lists the accepted location values for error messages.
func AllowedLocations() string {
	vals := make([]string, len(allLocations))
	for i, l := range allLocations {
		vals[i] = string(l)
	}
	return strings.Join(vals, ", ")
}

// Counts maps arbitrary category labels to non-negative tallies,
// e.g. {"alive": 100, "dead": 5}. Keys are not constrained.
type Counts map[string]int

// Validate rejects negative tallies.
func (c Counts) Validate() error {
	for label, n := range c {
		if n < 0 {
			return NewValidationError(fmt.Sprintf("count for %q must be non-negative", label))
		}
	}
	return nil
}

// Session is one counting record belonging to a batch and a user.
// Timestamp is client-supplied and stored opaquely, not parsed as a
// calendar time.
type Session struct {
	ID        string    `bson:"_id"`
	BatchID   string    `bson:"batch_id"`
	UserID    string    `bson:"user_id"`
	Species   Species   `bson:"species"`
	Location  Location  `bson:"location"`
	Notes     string    `bson:"notes,omitempty"`
	Counts    Counts    `bson:"counts"`
	Timestamp string    `bson:"timestamp"`
	ImageURL  string    `bson:"image_url,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}
