package models

// AggregateLine is one sum-then-ratio roll-up of a set of rows. Raw counts
// are summed first and every ratio is recomputed from the sums; percentages
// are never averaged across rows
type AggregateLine struct {
	Rows        int     `json:"rows"`
	FGM         float64 `json:"fgm"`
	FGA         float64 `json:"fga"`
	FG2M        float64 `json:"fg2m"`
	FG2A        float64 `json:"fg2a"`
	FG3M        float64 `json:"fg3m"`
	FG3A        float64 `json:"fg3a"`
	FTM         float64 `json:"ftm,omitempty"`
	FTA         float64 `json:"fta,omitempty"`
	Possessions float64 `json:"possessions,omitempty"`
	Turnovers   float64 `json:"turnovers,omitempty"`
	Assists     float64 `json:"assists,omitempty"`
	Points      float64 `json:"points"`

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

// RangeBreakdown is the aggregate line for one shot-clock bucket
type RangeBreakdown struct {
	Range ShotClockRange `json:"shot_clock_range"`
	Label string         `json:"label"`
	AggregateLine
}

// EntityBreakdown is the aggregate line for one team, player, or category
type EntityBreakdown struct {
	Entity string `json:"entity"`
	AggregateLine
}

// HeatmapCell is one (entity × bucket) cell. Value is nil when the cell's
// metric is undefined for its group
type HeatmapCell struct {
	Entity string         `json:"entity"`
	Range  ShotClockRange `json:"shot_clock_range"`
	Value  *float64       `json:"value"`
	FGA    float64        `json:"fga"`
}

// Heatmap is the full pivot: row entities × ordered buckets
type Heatmap struct {
	Metric   Metric           `json:"metric"`
	Entities []string         `json:"entities"`
	Ranges   []ShotClockRange `json:"ranges"`
	Cells    []HeatmapCell    `json:"cells"`
}

// TopPerformer is one ranked entity within a bucket
type TopPerformer struct {
	Rank   int      `json:"rank"`
	Entity string   `json:"entity"`
	Value  float64  `json:"value"`
	FGA    float64  `json:"fga"`
	FGM    float64  `json:"fgm"`
	EFGPct *float64 `json:"efg_pct,omitempty"`
}

// AggregateView is the product of applying one FilterSelection: the filtered
// rows plus their overall roll-up. Zero rows is a valid view, not an error
type AggregateView struct {
	Dataset DatasetKind     `json:"dataset"`
	Filter  FilterSelection `json:"filter"`
	Summary AggregateLine   `json:"summary"`
	Rows    []DerivedRow    `json:"rows"`
}

// Metric names a cell/ranking metric
type Metric string

const (
	MetricFGPct      Metric = "fg_pct"
	MetricEFGPct     Metric = "efg_pct"
	MetricFG3Pct     Metric = "fg3_pct"
	MetricPtsPerShot Metric = "pts_per_shot"
	MetricPtsPerPoss Metric = "pts_per_poss"
)

// ParseMetric validates a metric name from a query parameter
func ParseMetric(s string) (Metric, bool) {
	switch Metric(s) {
	case MetricFGPct, MetricEFGPct, MetricFG3Pct, MetricPtsPerShot, MetricPtsPerPoss:
		return Metric(s), true
	}
	return "", false
}

// FromLine extracts the named metric from an aggregate line
func (m Metric) FromLine(line AggregateLine) *float64 {
	switch m {
	case MetricFGPct:
		return line.FGPct
	case MetricEFGPct:
		return line.EFGPct
	case MetricFG3Pct:
		return line.FG3Pct
	case MetricPtsPerShot:
		return line.PtsPerShot
	case MetricPtsPerPoss:
		return line.PtsPerPossession
	default:
		return nil
	}
}
