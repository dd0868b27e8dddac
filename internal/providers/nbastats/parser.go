package nbastats

import (
	"fmt"
	"strconv"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/models"
)

// statsPayload mirrors the stats.nba.com response envelope
type statsPayload struct {
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// table validates the envelope and lifts the first result set into a
// ResultTable
func (p statsPayload) table() (*ResultTable, error) {
	if len(p.ResultSets) == 0 {
		return nil, fmt.Errorf("%w: response did not include any result sets", models.ErrSchemaMismatch)
	}
	rs := p.ResultSets[0]
	if len(rs.Headers) == 0 {
		return nil, fmt.Errorf("%w: result set has no headers", models.ErrSchemaMismatch)
	}

	index := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		index[h] = i
	}

	return &ResultTable{
		Headers: rs.Headers,
		Rows:    rs.RowSet,
		index:   index,
	}, nil
}

// ResultTable is one parsed result set: a header row plus untyped cells
type ResultTable struct {
	Headers []string
	Rows    [][]interface{}

	index map[string]int
}

// Require verifies every named column is present, returning ErrSchemaMismatch
// listing the missing ones otherwise. Column names are case-sensitive
func (t *ResultTable) Require(columns ...string) error {
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

// Float reads a numeric cell by column name. Absent columns and null cells
// read as zero; Require should be used up front for columns that must exist
func (t *ResultTable) Float(row int, column string) float64 {
	i, ok := t.index[column]
	if !ok || i >= len(t.Rows[row]) {
		return 0
	}
	return toFloat(t.Rows[row][i])
}

// Int reads an integer cell by column name
func (t *ResultTable) Int(row int, column string) int {
	return int(t.Float(row, column))
}

// String reads a string cell by column name
func (t *ResultTable) String(row int, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(t.Rows[row]) {
		return ""
	}
	if s, ok := t.Rows[row][i].(string); ok {
		return s
	}
	return ""
}

// toFloat coerces an untyped JSON cell to float64
func toFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	default:
		return 0
	}
}
