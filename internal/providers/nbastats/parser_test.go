package nbastats

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/models"
)

const samplePayload = `{
	"resultSets": [{
		"name": "LeagueDashPTShots",
		"headers": ["TEAM_ID", "TEAM_NAME", "TEAM_ABBREVIATION", "GP", "FGM", "FGA", "FG2M", "FG2A", "FG3M", "FG3A"],
		"rowSet": [
			[1610612755, "Philadelphia 76ers", "PHI", 82, 120, 250, 80, 150, 40, 100],
			[1610612747, "Los Angeles Lakers", "LAL", 82, 110, 240, 75, 140, 35, 100]
		]
	}]
}`

func TestTableParsesRows(t *testing.T) {
	var payload statsPayload
	if err := json.Unmarshal([]byte(samplePayload), &payload); err != nil {
		t.Fatalf("unmarshaling sample: %v", err)
	}

	table, err := payload.table()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}

	if got := table.Int(0, "TEAM_ID"); got != 1610612755 {
		t.Errorf("TEAM_ID = %d, want 1610612755", got)
	}
	if got := table.String(0, "TEAM_ABBREVIATION"); got != "PHI" {
		t.Errorf("TEAM_ABBREVIATION = %q, want PHI", got)
	}
	if got := table.Float(1, "FGA"); got != 240 {
		t.Errorf("FGA = %f, want 240", got)
	}
}

func TestTableRequire(t *testing.T) {
	var payload statsPayload
	if err := json.Unmarshal([]byte(samplePayload), &payload); err != nil {
		t.Fatalf("unmarshaling sample: %v", err)
	}
	table, err := payload.table()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := table.Require("TEAM_ID", "FGM", "FGA"); err != nil {
		t.Errorf("unexpected error for present columns: %v", err)
	}

	err = table.Require("FGM", "POSS", "TOV")
	if !errors.Is(err, models.ErrSchemaMismatch) {
		t.Errorf("expected ErrSchemaMismatch for missing columns, got %v", err)
	}
}

func TestTableMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"No result sets", `{"resultSets": []}`},
		{"Missing result sets key", `{"resource": "leaguedashteamptshot"}`},
		{"No headers", `{"resultSets": [{"rowSet": [[1, 2]]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload statsPayload
			if err := json.Unmarshal([]byte(tt.body), &payload); err != nil {
				t.Fatalf("unmarshaling: %v", err)
			}
			if _, err := payload.table(); !errors.Is(err, models.ErrSchemaMismatch) {
				t.Errorf("expected ErrSchemaMismatch, got %v", err)
			}
		})
	}
}
