package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/models"
)

// ExportColumns is the stable column order for CSV export. Reordering or
// renaming these is a breaking change for downstream consumers
var ExportColumns = []string{
	"TEAM_ID",
	"TEAM_NAME",
	"TEAM_ABBREVIATION",
	"PLAYER_ID",
	"PLAYER_NAME",
	"SHOT_CLOCK_RANGE",
	"CATEGORY",
	"GP",
	"FGM",
	"FGA",
	"FG2M",
	"FG2A",
	"FG3M",
	"FG3A",
	"FTM",
	"FTA",
	"POSS",
	"TOV",
	"AST",
	"POINTS",
	"FG_PCT",
	"FG2_PCT",
	"FG3_PCT",
	"EFG_PCT",
	"PTS_PER_SHOT",
	"PTS_PER_POSS",
	"FG3_RATE",
	"AST_RATE",
	"TOV_RATE",
}

// WriteCSV writes exactly the rows of a view in the ExportColumns order.
// Undefined ratios serialize as empty cells, never as zero
func WriteCSV(w io.Writer, view models.AggregateView) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range view.Rows {
		record := []string{
			formatInt(row.TeamID),
			row.TeamName,
			row.TeamAbbr,
			formatInt(row.PlayerID),
			row.PlayerName,
			string(row.Range),
			string(row.Category),
			strconv.Itoa(row.GamesPlayed),
			formatFloat(row.FGM),
			formatFloat(row.FGA),
			formatFloat(row.FG2M),
			formatFloat(row.FG2A),
			formatFloat(row.FG3M),
			formatFloat(row.FG3A),
			formatFloat(row.FTM),
			formatFloat(row.FTA),
			formatFloat(row.Possessions),
			formatFloat(row.Turnovers),
			formatFloat(row.Assists),
			formatFloat(row.Points),
			formatRatio(row.FGPct),
			formatRatio(row.FG2Pct),
			formatRatio(row.FG3Pct),
			formatRatio(row.EFGPct),
			formatRatio(row.PtsPerShot),
			formatRatio(row.PtsPerPossession),
			formatRatio(row.FG3Rate),
			formatRatio(row.AssistRate),
			formatRatio(row.TurnoverRate),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reads rows previously written by WriteCSV (or any file carrying
// the same required raw-count columns). Derived columns in the file are
// ignored; metrics are recomputed from the raw counts
func ReadCSV(r io.Reader) ([]models.ShotRow, error) {
	table, err := readTable(r)
	if err != nil {
		return nil, err
	}

	required := []string{"SHOT_CLOCK_RANGE", "CATEGORY", "FGM", "FGA", "FG2M", "FG2A", "FG3M", "FG3A"}
	if err := table.require(required); err != nil {
		return nil, err
	}

	rows := make([]models.ShotRow, 0, len(table.records))
	for i := range table.records {
		bucket, ok := models.ParseShotClockRange(table.cell(i, "SHOT_CLOCK_RANGE"))
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unknown shot clock range %q",
				models.ErrSchemaMismatch, i+2, table.cell(i, "SHOT_CLOCK_RANGE"))
		}

		row := models.ShotRow{
			TeamID:      int(table.float(i, "TEAM_ID")),
			TeamName:    table.cell(i, "TEAM_NAME"),
			TeamAbbr:    table.cell(i, "TEAM_ABBREVIATION"),
			PlayerID:    int(table.float(i, "PLAYER_ID")),
			PlayerName:  table.cell(i, "PLAYER_NAME"),
			Range:       bucket,
			Category:    models.Category(table.cell(i, "CATEGORY")),
			GamesPlayed: int(table.float(i, "GP")),
			FGM:         table.float(i, "FGM"),
			FGA:         table.float(i, "FGA"),
			FG2M:        table.float(i, "FG2M"),
			FG2A:        table.float(i, "FG2A"),
			FG3M:        table.float(i, "FG3M"),
			FG3A:        table.float(i, "FG3A"),
			FTM:         table.float(i, "FTM"),
			FTA:         table.float(i, "FTA"),
			Possessions: table.float(i, "POSS"),
			Turnovers:   table.float(i, "TOV"),
			Assists:     table.float(i, "AST"),
		}
		if err := table.err; err != nil {
			return nil, err
		}
		if err := ValidateRow(row); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// playerColumns are the fixed, case-sensitive headers of the scraped player
// table. FG2 counts are not in the scrape; they are reconstructed as
// FGA-FG3A / FGM-FG3M
var playerColumns = []string{
	"PLAYER_NAME",
	"SHOT_CLOCK_RANGE",
	"GP",
	"FGM",
	"FGA",
	"FG3M",
	"FG3A",
}

// ReadPlayerCSV reads the scraped per-player shot-clock table
func ReadPlayerCSV(r io.Reader) ([]models.ShotRow, error) {
	table, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := table.require(playerColumns); err != nil {
		return nil, err
	}

	rows := make([]models.ShotRow, 0, len(table.records))
	for i := range table.records {
		bucket, ok := models.ParseShotClockRange(table.cell(i, "SHOT_CLOCK_RANGE"))
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unknown shot clock range %q",
				models.ErrSchemaMismatch, i+2, table.cell(i, "SHOT_CLOCK_RANGE"))
		}

		fgm := table.float(i, "FGM")
		fga := table.float(i, "FGA")
		fg3m := table.float(i, "FG3M")
		fg3a := table.float(i, "FG3A")

		row := models.ShotRow{
			PlayerID:    int(table.float(i, "PLAYER_ID")),
			PlayerName:  table.cell(i, "PLAYER_NAME"),
			TeamAbbr:    table.cell(i, "PLAYER_LAST_TEAM_ABBREVIATION"),
			Range:       bucket,
			Category:    models.CategoryOverall,
			GamesPlayed: int(table.float(i, "GP")),
			FGM:         fgm,
			FGA:         fga,
			FG2M:        fgm - fg3m,
			FG2A:        fga - fg3a,
			FG3M:        fg3m,
			FG3A:        fg3a,
		}
		if err := table.err; err != nil {
			return nil, err
		}
		if err := ValidateRow(row); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ReadPlayerCSVFile opens and reads a scraped player table from disk
func ReadPlayerCSVFile(path string) ([]models.ShotRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", models.ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	return ReadPlayerCSV(f)
}

// csvTable is a header-indexed view over parsed CSV records
type csvTable struct {
	index   map[string]int
	records [][]string
	err     error
}

func readTable(r io.Reader) (*csvTable, error) {
	cr := csv.NewReader(r)
	all, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading csv: %v", models.ErrSourceUnavailable, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: csv has no header row", models.ErrSchemaMismatch)
	}

	index := make(map[string]int, len(all[0]))
	for i, h := range all[0] {
		index[h] = i
	}

	return &csvTable{index: index, records: all[1:]}, nil
}

func (t *csvTable) require(columns []string) error {
	var missing []string
	for _, col := range columns {
		if _, ok := t.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required columns %v", models.ErrSchemaMismatch, missing)
	}
	return nil
}

func (t *csvTable) cell(row int, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(t.records[row]) {
		return ""
	}
	return t.records[row][i]
}

// float parses a numeric cell; empty and absent cells read as zero, while a
// non-numeric cell records a schema error on the table
func (t *csvTable) float(row int, column string) float64 {
	s := t.cell(row, column)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && t.err == nil {
		t.err = fmt.Errorf("%w: line %d: column %s: malformed number %q",
			models.ErrSchemaMismatch, row+2, column, s)
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func formatRatio(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
