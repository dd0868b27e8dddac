package loader

import (
	"fmt"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/models"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/statmath"
)

// Derive annotates raw rows with computed efficiency metrics. The input is
// left untouched; points are always recomputed from makes so they stay
// consistent with FGM/FG3M
func Derive(rows []models.ShotRow) []models.DerivedRow {
	derived := make([]models.DerivedRow, 0, len(rows))
	for _, row := range rows {
		derived = append(derived, deriveRow(row))
	}
	return derived
}

func deriveRow(row models.ShotRow) models.DerivedRow {
	points := statmath.Points(row.FG2M, row.FG3M, row.FTM)

	return models.DerivedRow{
		ShotRow:          row,
		Points:           points,
		FGPct:            statmath.FGPct(row.FGM, row.FGA),
		FG2Pct:           statmath.Div(row.FG2M, row.FG2A),
		FG3Pct:           statmath.Div(row.FG3M, row.FG3A),
		EFGPct:           statmath.EffectiveFGPct(row.FGM, row.FG3M, row.FGA),
		PtsPerShot:       statmath.PointsPerShot(points, row.FGA),
		PtsPerPossession: statmath.PointsPerPossession(points, row.Possessions),
		FG3Rate:          statmath.ThreePointRate(row.FG3A, row.FGA),
		AssistRate:       statmath.AssistRate(row.Assists, row.Possessions),
		TurnoverRate:     statmath.TurnoverRate(row.Turnovers, row.Possessions),
	}
}

// ValidateRow enforces the raw-count invariants at load time so metric
// computation never sees a malformed row
func ValidateRow(row models.ShotRow) error {
	if !row.Range.Valid() {
		return fmt.Errorf("%w: unknown shot clock range %q", models.ErrSchemaMismatch, row.Range)
	}
	if !row.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", models.ErrSchemaMismatch, row.Category)
	}

	pairs := []struct {
		name     string
		makes    float64
		attempts float64
	}{
		{"FG", row.FGM, row.FGA},
		{"FG2", row.FG2M, row.FG2A},
		{"FG3", row.FG3M, row.FG3A},
		{"FT", row.FTM, row.FTA},
	}
	for _, p := range pairs {
		if p.makes < 0 || p.attempts < 0 {
			return fmt.Errorf("%w: negative %s counts (%s=%g/%g)",
				models.ErrSchemaMismatch, p.name, p.name, p.makes, p.attempts)
		}
		if p.makes > p.attempts {
			return fmt.Errorf("%w: %sM %g exceeds %sA %g",
				models.ErrSchemaMismatch, p.name, p.makes, p.name, p.attempts)
		}
	}
	return nil
}
