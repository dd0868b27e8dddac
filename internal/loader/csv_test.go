package loader_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/loader"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/models"
)

func sampleRows(t *testing.T) []models.ShotRow {
	t.Helper()
	rows := []models.ShotRow{
		{
			TeamID:      testTeamID,
			TeamName:    "Philadelphia 76ers",
			TeamAbbr:    "PHI",
			Range:       models.Range40,
			Category:    models.CategoryOverall,
			GamesPlayed: 82,
			FGM:         120, FGA: 250,
			FG2M: 80, FG2A: 150,
			FG3M: 40, FG3A: 100,
		},
		{
			TeamID:      testTeamID,
			TeamName:    "Philadelphia 76ers",
			TeamAbbr:    "PHI",
			Range:       models.Range2218,
			Category:    models.CategoryCatchAndShoot,
			GamesPlayed: 82,
			FGM:         55, FGA: 130,
			FG2M: 5, FG2A: 10,
			FG3M: 50, FG3A: 120,
		},
		{
			// Zero attempts: every ratio undefined, must survive the trip
			TeamID:      testTeamID,
			TeamName:    "Philadelphia 76ers",
			TeamAbbr:    "PHI",
			Range:       models.Range2422,
			Category:    models.CategoryUnder10Ft,
			GamesPlayed: 82,
		},
	}
	for _, r := range rows {
		if err := loader.ValidateRow(r); err != nil {
			t.Fatalf("invalid fixture: %v", err)
		}
	}
	return rows
}

func TestCSVRoundTrip(t *testing.T) {
	original := loader.Derive(sampleRows(t))
	view := models.AggregateView{Dataset: models.DatasetTeam, Rows: original}

	var buf bytes.Buffer
	if err := loader.WriteCSV(&buf, view); err != nil {
		t.Fatalf("writing csv: %v", err)
	}

	reloaded, err := loader.ReadCSV(&buf)
	if err != nil {
		t.Fatalf("reading csv back: %v", err)
	}

	if len(reloaded) != len(original) {
		t.Fatalf("row count changed: wrote %d, read %d", len(original), len(reloaded))
	}

	rederived := loader.Derive(reloaded)
	for i := range original {
		want, got := original[i], rederived[i]
		if got.TeamAbbr != want.TeamAbbr || got.Range != want.Range || got.Category != want.Category {
			t.Errorf("row %d identity changed: got %s/%s/%s", i, got.TeamAbbr, got.Range, got.Category)
		}
		if got.FGM != want.FGM || got.FGA != want.FGA || got.FG3M != want.FG3M {
			t.Errorf("row %d counts changed: got %g/%g", i, got.FGM, got.FGA)
		}
		if !ratioEqual(got.FGPct, want.FGPct) || !ratioEqual(got.EFGPct, want.EFGPct) {
			t.Errorf("row %d derived metrics changed", i)
		}
	}
}

func TestWriteCSVHeaderOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := loader.WriteCSV(&buf, models.AggregateView{Dataset: models.DatasetTeam}); err != nil {
		t.Fatalf("writing csv: %v", err)
	}

	header := strings.TrimRight(buf.String(), "\r\n")
	want := strings.Join(loader.ExportColumns, ",")
	if header != want {
		t.Errorf("header = %q, want %q", header, want)
	}
}

func TestWriteCSVUndefinedRatiosAreEmpty(t *testing.T) {
	rows := loader.Derive([]models.ShotRow{{
		TeamAbbr: "PHI",
		Range:    models.Range40,
		Category: models.CategoryOverall,
	}})

	var buf bytes.Buffer
	if err := loader.WriteCSV(&buf, models.AggregateView{Dataset: models.DatasetTeam, Rows: rows}); err != nil {
		t.Fatalf("writing csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if strings.Contains(lines[1], "NaN") {
		t.Errorf("undefined ratios must serialize as empty cells, got %q", lines[1])
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	csv := "TEAM_ABBREVIATION,SHOT_CLOCK_RANGE,FGM\nPHI,4-0,10\n"

	_, err := loader.ReadCSV(strings.NewReader(csv))
	if !errors.Is(err, models.ErrSchemaMismatch) {
		t.Errorf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestReadCSVMalformedNumber(t *testing.T) {
	csv := "SHOT_CLOCK_RANGE,CATEGORY,FGM,FGA,FG2M,FG2A,FG3M,FG3A\n" +
		"4-0,Overall,ten,20,5,10,5,10\n"

	_, err := loader.ReadCSV(strings.NewReader(csv))
	if !errors.Is(err, models.ErrSchemaMismatch) {
		t.Errorf("expected ErrSchemaMismatch for malformed cell, got %v", err)
	}
}

func TestReadCSVUnknownBucket(t *testing.T) {
	csv := "SHOT_CLOCK_RANGE,CATEGORY,FGM,FGA,FG2M,FG2A,FG3M,FG3A\n" +
		"30-24,Overall,10,20,5,10,5,10\n"

	_, err := loader.ReadCSV(strings.NewReader(csv))
	if !errors.Is(err, models.ErrSchemaMismatch) {
		t.Errorf("expected ErrSchemaMismatch for unknown bucket, got %v", err)
	}
}

func TestReadPlayerCSV(t *testing.T) {
	csv := "PLAYER_NAME,PLAYER_LAST_TEAM_ABBREVIATION,GP,FGM,FGA,FG3M,FG3A,SHOT_CLOCK_RANGE\n" +
		"Tyrese Maxey,PHI,70,8.5,18.2,3.1,8.4,4-0\n" +
		"Joel Embiid,PHI,39,9.8,18.7,1.2,3.4,15-7 Average\n"

	rows, err := loader.ReadPlayerCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	maxey := rows[0]
	if maxey.PlayerName != "Tyrese Maxey" || maxey.TeamAbbr != "PHI" {
		t.Errorf("unexpected identity: %+v", maxey)
	}
	if maxey.Range != models.Range40 {
		t.Errorf("range = %s, want 4-0", maxey.Range)
	}
	// FG2 counts reconstructed from totals minus threes
	if math.Abs(maxey.FG2M-(8.5-3.1)) > 1e-9 || math.Abs(maxey.FG2A-(18.2-8.4)) > 1e-9 {
		t.Errorf("FG2 reconstruction wrong: %g/%g", maxey.FG2M, maxey.FG2A)
	}

	// The API-style bucket label maps onto the short form
	if rows[1].Range != models.Range157 {
		t.Errorf("range = %s, want 15-7", rows[1].Range)
	}
	if rows[1].Category != models.CategoryOverall {
		t.Errorf("player rows default to the Overall category, got %s", rows[1].Category)
	}
}

func TestReadPlayerCSVMissingColumns(t *testing.T) {
	csv := "PLAYER_NAME,GP,FGM\nTyrese Maxey,70,8.5\n"

	_, err := loader.ReadPlayerCSV(strings.NewReader(csv))
	if !errors.Is(err, models.ErrSchemaMismatch) {
		t.Errorf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestReadPlayerCSVFileMissing(t *testing.T) {
	_, err := loader.ReadPlayerCSVFile("testdata/does_not_exist.csv")
	if !errors.Is(err, models.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func ratioEqual(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return math.Abs(*a-*b) < 1e-9
}
