package models

// FilterSelection is the active filter set for one request. Nil slices mean
// "no filter" (select everything); non-nil empty slices mean an explicitly
// empty selection, which matches nothing. Built once per request and never
// mutated afterwards
type FilterSelection struct {
	Ranges      []ShotClockRange `json:"ranges,omitempty"`
	Categories  []Category       `json:"categories,omitempty"`
	Teams       []string         `json:"teams,omitempty"`
	Players     []string         `json:"players,omitempty"`
	MinAttempts float64          `json:"min_attempts,omitempty"`
}

// Matches reports whether a row passes every active filter
func (f FilterSelection) Matches(row DerivedRow) bool {
	if f.Ranges != nil && !containsRange(f.Ranges, row.Range) {
		return false
	}
	if f.Categories != nil && !containsCategory(f.Categories, row.Category) {
		return false
	}
	if f.Teams != nil && !containsString(f.Teams, row.TeamAbbr) {
		return false
	}
	if f.Players != nil && !containsString(f.Players, row.PlayerName) {
		return false
	}
	if row.FGA < f.MinAttempts {
		return false
	}
	return true
}

func containsRange(set []ShotClockRange, r ShotClockRange) bool {
	for _, v := range set {
		if v == r {
			return true
		}
	}
	return false
}

func containsCategory(set []Category, c Category) bool {
	for _, v := range set {
		if v == c {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
