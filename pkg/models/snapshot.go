package models

import "time"

// Snapshot is one complete, immutable load of a dataset. A snapshot is
// either fully populated or absent; a failed load never publishes a
// partial one
type Snapshot struct {
	ID         string       `json:"id"`
	Dataset    DatasetKind  `json:"dataset"`
	Season     string       `json:"season"`
	SeasonType string       `json:"season_type"`
	LoadedAt   time.Time    `json:"loaded_at"`
	Rows       []DerivedRow `json:"rows"`
}
