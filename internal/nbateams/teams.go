package nbateams

// NBA team abbreviation mappings
var teamAbbreviations = map[string]string{
	"Atlanta Hawks":          "ATL",
	"Boston Celtics":         "BOS",
	"Brooklyn Nets":          "BKN",
	"Charlotte Hornets":      "CHA",
	"Chicago Bulls":          "CHI",
	"Cleveland Cavaliers":    "CLE",
	"Dallas Mavericks":       "DAL",
	"Denver Nuggets":         "DEN",
	"Detroit Pistons":        "DET",
	"Golden State Warriors":  "GSW",
	"Houston Rockets":        "HOU",
	"Indiana Pacers":         "IND",
	"Los Angeles Clippers":   "LAC",
	"Los Angeles Lakers":     "LAL",
	"Memphis Grizzlies":      "MEM",
	"Miami Heat":             "MIA",
	"Milwaukee Bucks":        "MIL",
	"Minnesota Timberwolves": "MIN",
	"New Orleans Pelicans":   "NOP",
	"New York Knicks":        "NYK",
	"Oklahoma City Thunder":  "OKC",
	"Orlando Magic":          "ORL",
	"Philadelphia 76ers":     "PHI",
	"Phoenix Suns":           "PHX",
	"Portland Trail Blazers": "POR",
	"Sacramento Kings":       "SAC",
	"San Antonio Spurs":      "SAS",
	"Toronto Raptors":        "TOR",
	"Utah Jazz":              "UTA",
	"Washington Wizards":     "WAS",
}

// Reverse mapping for lookups
var abbreviationToName = map[string]string{}

func init() {
	// Build reverse mapping
	for name, abbr := range teamAbbreviations {
		abbreviationToName[abbr] = name
	}
}

// Abbreviation returns the abbreviation for a full team name
func Abbreviation(fullName string) string {
	if abbr, ok := teamAbbreviations[fullName]; ok {
		return abbr
	}
	return fullName // Return original if not found
}

// Name returns the full name for an abbreviation
func Name(abbr string) string {
	if name, ok := abbreviationToName[abbr]; ok {
		return name
	}
	return abbr // Return original if not found
}

// NormalizeAbbr accepts either a full team name or an abbreviation and
// returns the abbreviation, so filter parameters work with both forms
func NormalizeAbbr(s string) string {
	if _, ok := abbreviationToName[s]; ok {
		return s
	}
	return Abbreviation(s)
}
