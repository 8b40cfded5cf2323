package domain

import "time"

// Treatment represents a bookable treatment offered by the practice
type Treatment struct {
	ID              int64
	Value           string // stable machine key, e.g. "orthomoleculair-intake"
	Label           string // human-facing name
	DurationMinutes int
	Price           *float64
	Active          bool
	CreatedAt       time.Time
}
