package engine

import (
	"sort"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/models"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/statmath"
)

// Dimension selects the grouping key for entity breakdowns and heatmaps
type Dimension string

const (
	DimTeam     Dimension = "team"
	DimPlayer   Dimension = "player"
	DimCategory Dimension = "category"
)

// ParseDimension validates a dimension name from a query parameter
func ParseDimension(s string) (Dimension, bool) {
	switch Dimension(s) {
	case DimTeam, DimPlayer, DimCategory:
		return Dimension(s), true
	}
	return "", false
}

func (d Dimension) key(row models.DerivedRow) string {
	switch d {
	case DimPlayer:
		return row.PlayerName
	case DimCategory:
		return string(row.Category)
	default:
		return row.TeamAbbr
	}
}

// Apply returns the rows passing every filter in sel. An empty result is a
// valid outcome, not an error
func Apply(rows []models.DerivedRow, sel models.FilterSelection) []models.DerivedRow {
	filtered := make([]models.DerivedRow, 0, len(rows))
	for _, row := range rows {
		if sel.Matches(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// Summarize rolls a row set up into one aggregate line: raw counts are
// summed first, then every ratio is recomputed from the sums. Averaging the
// rows' own percentages would weight unequal sample sizes equally and is
// deliberately not done anywhere in this package
func Summarize(rows []models.DerivedRow) models.AggregateLine {
	var line models.AggregateLine

	for _, row := range rows {
		line.Rows++
		line.FGM += row.FGM
		line.FGA += row.FGA
		line.FG2M += row.FG2M
		line.FG2A += row.FG2A
		line.FG3M += row.FG3M
		line.FG3A += row.FG3A
		line.FTM += row.FTM
		line.FTA += row.FTA
		line.Possessions += row.Possessions
		line.Turnovers += row.Turnovers
		line.Assists += row.Assists
	}

	line.Points = statmath.Points(line.FG2M, line.FG3M, line.FTM)
	line.FGPct = statmath.FGPct(line.FGM, line.FGA)
	line.FG2Pct = statmath.Div(line.FG2M, line.FG2A)
	line.FG3Pct = statmath.Div(line.FG3M, line.FG3A)
	line.EFGPct = statmath.EffectiveFGPct(line.FGM, line.FG3M, line.FGA)
	line.PtsPerShot = statmath.PointsPerShot(line.Points, line.FGA)
	line.PtsPerPossession = statmath.PointsPerPossession(line.Points, line.Possessions)
	line.FG3Rate = statmath.ThreePointRate(line.FG3A, line.FGA)
	line.AssistRate = statmath.AssistRate(line.Assists, line.Possessions)
	line.TurnoverRate = statmath.TurnoverRate(line.Turnovers, line.Possessions)

	return line
}

// View pairs the filtered rows with their overall roll-up
func View(dataset models.DatasetKind, rows []models.DerivedRow, sel models.FilterSelection) models.AggregateView {
	filtered := Apply(rows, sel)
	return models.AggregateView{
		Dataset: dataset,
		Filter:  sel,
		Summary: Summarize(filtered),
		Rows:    filtered,
	}
}

// ByRange aggregates rows per shot-clock bucket, in canonical bucket order.
// Buckets with no rows are omitted
func ByRange(rows []models.DerivedRow) []models.RangeBreakdown {
	groups := make(map[models.ShotClockRange][]models.DerivedRow)
	for _, row := range rows {
		groups[row.Range] = append(groups[row.Range], row)
	}

	breakdowns := make([]models.RangeBreakdown, 0, len(groups))
	for _, bucket := range models.ShotClockOrder {
		group, ok := groups[bucket]
		if !ok {
			continue
		}
		breakdowns = append(breakdowns, models.RangeBreakdown{
			Range:         bucket,
			Label:         bucket.Label(),
			AggregateLine: Summarize(group),
		})
	}
	return breakdowns
}

// ByEntity aggregates rows per dimension value, sorted by points per shot
// descending (entities with an undefined value sort last), ties by name
func ByEntity(rows []models.DerivedRow, dim Dimension) []models.EntityBreakdown {
	groups := groupBy(rows, dim)

	breakdowns := make([]models.EntityBreakdown, 0, len(groups))
	for entity, group := range groups {
		breakdowns = append(breakdowns, models.EntityBreakdown{
			Entity:        entity,
			AggregateLine: Summarize(group),
		})
	}

	sort.Slice(breakdowns, func(i, j int) bool {
		a, b := breakdowns[i].PtsPerShot, breakdowns[j].PtsPerShot
		switch {
		case a == nil && b == nil:
			return breakdowns[i].Entity < breakdowns[j].Entity
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		default:
			return breakdowns[i].Entity < breakdowns[j].Entity
		}
	})
	return breakdowns
}

// BuildHeatmap pivots rows into (entity x bucket) cells. Each cell applies
// the same sum-then-ratio rule to its own group, so cells are weighted by
// the rows' native denominator (attempts, or possessions for the
// possession metrics), never by averaging row percentages
func BuildHeatmap(rows []models.DerivedRow, dim Dimension, metric models.Metric) models.Heatmap {
	type cellKey struct {
		entity string
		bucket models.ShotClockRange
	}

	groups := make(map[cellKey][]models.DerivedRow)
	entitySet := make(map[string]bool)
	rangeSet := make(map[models.ShotClockRange]bool)

	for _, row := range rows {
		key := cellKey{dim.key(row), row.Range}
		groups[key] = append(groups[key], row)
		entitySet[key.entity] = true
		rangeSet[row.Range] = true
	}

	entities := make([]string, 0, len(entitySet))
	for entity := range entitySet {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	ranges := make([]models.ShotClockRange, 0, len(rangeSet))
	for _, bucket := range models.ShotClockOrder {
		if rangeSet[bucket] {
			ranges = append(ranges, bucket)
		}
	}

	cells := make([]models.HeatmapCell, 0, len(groups))
	for _, entity := range entities {
		for _, bucket := range ranges {
			group, ok := groups[cellKey{entity, bucket}]
			if !ok {
				continue
			}
			line := Summarize(group)
			cells = append(cells, models.HeatmapCell{
				Entity: entity,
				Range:  bucket,
				Value:  metric.FromLine(line),
				FGA:    line.FGA,
			})
		}
	}

	return models.Heatmap{
		Metric:   metric,
		Entities: entities,
		Ranges:   ranges,
		Cells:    cells,
	}
}

// TopPerformers ranks entities within one bucket by the chosen metric,
// descending. Each entity's rows are aggregated first; entities whose
// aggregate attempts fall below minAttempts are excluded regardless of
// efficiency, and entities with an undefined metric are excluded rather
// than ranked as zero. Ties break by higher attempts, then by name
func TopPerformers(rows []models.DerivedRow, bucket models.ShotClockRange, dim Dimension, metric models.Metric, minAttempts float64, limit int) []models.TopPerformer {
	inBucket := make([]models.DerivedRow, 0, len(rows))
	for _, row := range rows {
		if row.Range == bucket {
			inBucket = append(inBucket, row)
		}
	}

	groups := groupBy(inBucket, dim)

	type candidate struct {
		entity string
		line   models.AggregateLine
		value  float64
	}

	candidates := make([]candidate, 0, len(groups))
	for entity, group := range groups {
		line := Summarize(group)
		if line.FGA < minAttempts {
			continue
		}
		value := metric.FromLine(line)
		if value == nil {
			continue
		}
		candidates = append(candidates, candidate{entity, line, *value})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].value != candidates[j].value {
			return candidates[i].value > candidates[j].value
		}
		if candidates[i].line.FGA != candidates[j].line.FGA {
			return candidates[i].line.FGA > candidates[j].line.FGA
		}
		return candidates[i].entity < candidates[j].entity
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	performers := make([]models.TopPerformer, 0, len(candidates))
	for i, c := range candidates {
		performers = append(performers, models.TopPerformer{
			Rank:   i + 1,
			Entity: c.entity,
			Value:  c.value,
			FGA:    c.line.FGA,
			FGM:    c.line.FGM,
			EFGPct: c.line.EFGPct,
		})
	}
	return performers
}

func groupBy(rows []models.DerivedRow, dim Dimension) map[string][]models.DerivedRow {
	groups := make(map[string][]models.DerivedRow)
	for _, row := range rows {
		groups[dim.key(row)] = append(groups[dim.key(row)], row)
	}
	return groups
}
