package models

// ShotClockRange represents one bucket of the 24-second shot clock
type ShotClockRange string

const (
	Range2422 ShotClockRange = "24-22"
	Range2218 ShotClockRange = "22-18"
	Range1815 ShotClockRange = "18-15"
	Range157  ShotClockRange = "15-7"
	Range74   ShotClockRange = "7-4"
	Range40   ShotClockRange = "4-0"
)

// ShotClockOrder is the canonical display/sort order, earliest to latest
var ShotClockOrder = []ShotClockRange{
	Range2422,
	Range2218,
	Range1815,
	Range157,
	Range74,
	Range40,
}

// rangeInfo carries the stats.nba.com query value and the UI label for a bucket
type rangeInfo struct {
	QueryValue string // value accepted by the ShotClockRange API parameter
	Label      string // "4-0s (Very Late)"
}

var rangeTable = map[ShotClockRange]rangeInfo{
	Range2422: {"24-22", "24-22s (Very Early)"},
	Range2218: {"22-18 Very Early", "22-18s (Very Early)"},
	Range1815: {"18-15 Early", "18-15s (Early)"},
	Range157:  {"15-7 Average", "15-7s (Average)"},
	Range74:   {"7-4 Late", "7-4s (Late)"},
	Range40:   {"4-0 Very Late", "4-0s (Very Late)"},
}

// Valid reports whether r is one of the fixed shot-clock buckets
func (r ShotClockRange) Valid() bool {
	_, ok := rangeTable[r]
	return ok
}

// QueryValue returns the value the stats API expects for this bucket
func (r ShotClockRange) QueryValue() string {
	return rangeTable[r].QueryValue
}

// Label returns the human-readable label for this bucket
func (r ShotClockRange) Label() string {
	return rangeTable[r].Label
}

// ParseShotClockRange maps either the short form ("4-0") or the API form
// ("4-0 Very Late") back to a bucket
func ParseShotClockRange(s string) (ShotClockRange, bool) {
	if r := ShotClockRange(s); r.Valid() {
		return r, true
	}
	for r, info := range rangeTable {
		if info.QueryValue == s {
			return r, true
		}
	}
	return "", false
}

// Category is a shooting-context classification (the endpoint's GeneralRange)
type Category string

const (
	CategoryOverall       Category = "Overall"
	CategoryCatchAndShoot Category = "Catch and Shoot"
	CategoryPullups       Category = "Pullups"
	CategoryUnder10Ft     Category = "Less Than 10 ft"
)

// Categories is the fixed set requested from the stats endpoint
var Categories = []Category{
	CategoryOverall,
	CategoryCatchAndShoot,
	CategoryPullups,
	CategoryUnder10Ft,
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DatasetKind identifies which table a row came from
type DatasetKind string

const (
	DatasetTeam   DatasetKind = "team"
	DatasetPlayer DatasetKind = "player"
)

// ShotRow is one raw observation: a team or player's shooting counts within
// one shot-clock bucket and one category
type ShotRow struct {
	TeamID     int            `json:"team_id,omitempty"`
	TeamName   string         `json:"team_name,omitempty"`
	TeamAbbr   string         `json:"team_abbr,omitempty"`
	PlayerID   int            `json:"player_id,omitempty"`
	PlayerName string         `json:"player_name,omitempty"`
	Range      ShotClockRange `json:"shot_clock_range"`
	Category   Category       `json:"category"`

	GamesPlayed int     `json:"games_played"`
	FGM         float64 `json:"fgm"`
	FGA         float64 `json:"fga"`
	FG2M        float64 `json:"fg2m"`
	FG2A        float64 `json:"fg2a"`
	FG3M        float64 `json:"fg3m"`
	FG3A        float64 `json:"fg3a"`

	// Optional counts; zero means untracked for this dataset variant
	FTM         float64 `json:"ftm,omitempty"`
	FTA         float64 `json:"fta,omitempty"`
	Possessions float64 `json:"possessions,omitempty"`
	Turnovers   float64 `json:"turnovers,omitempty"`
	Assists     float64 `json:"assists,omitempty"`
}

// DerivedRow is a ShotRow annotated with computed efficiency metrics.
// A nil pointer means the ratio is undefined (zero denominator); it is
// never coerced to zero
type DerivedRow struct {
	ShotRow

	Points           float64  `json:"points"`
	FGPct            *float64 `json:"fg_pct,omitempty"`
	FG2Pct           *float64 `json:"fg2_pct,omitempty"`
	FG3Pct           *float64 `json:"fg3_pct,omitempty"`
	EFGPct           *float64 `json:"efg_pct,omitempty"`
	PtsPerShot       *float64 `json:"pts_per_shot,omitempty"`
	PtsPerPossession *float64 `json:"pts_per_poss,omitempty"`
	FG3Rate          *float64 `json:"fg3_rate,omitempty"`
	AssistRate       *float64 `json:"assist_rate,omitempty"`
	TurnoverRate     *float64 `json:"turnover_rate,omitempty"`
}
