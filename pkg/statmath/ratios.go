package statmath

// Div divides num by den, returning nil when the denominator is zero.
// Undefined ratios must stay undefined: coercing them to zero would bias
// any aggregate built on top of them
func Div(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	v := num / den
	return &v
}

// Points computes total points from makes. Points are always derived from
// the make counts so they stay consistent with FGM/FG3M, regardless of any
// points column the source may carry
func Points(fg2m, fg3m, ftm float64) float64 {
	return 2*fg2m + 3*fg3m + ftm
}

// FGPct is field-goal percentage: FGM / FGA
func FGPct(fgm, fga float64) *float64 {
	return Div(fgm, fga)
}

// EffectiveFGPct credits three-pointers at 1.5x: (FGM + 0.5*FG3M) / FGA
func EffectiveFGPct(fgm, fg3m, fga float64) *float64 {
	return Div(fgm+0.5*fg3m, fga)
}

// PointsPerShot is points divided by field-goal attempts
func PointsPerShot(points, fga float64) *float64 {
	return Div(points, fga)
}

// PointsPerPossession is points divided by possessions
func PointsPerPossession(points, possessions float64) *float64 {
	return Div(points, possessions)
}

// ThreePointRate is the share of attempts taken from three: FG3A / FGA
func ThreePointRate(fg3a, fga float64) *float64 {
	return Div(fg3a, fga)
}

// AssistRate is assists per possession
func AssistRate(assists, possessions float64) *float64 {
	return Div(assists, possessions)
}

// TurnoverRate is turnovers per possession
func TurnoverRate(turnovers, possessions float64) *float64 {
	return Div(turnovers, possessions)
}
