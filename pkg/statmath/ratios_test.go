package statmath_test

import (
	"math"
	"testing"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/statmath"
)

func TestDiv(t *testing.T) {
	tests := []struct {
		name string
		num  float64
		den  float64
		want *float64
	}{
		{"Simple ratio", 5, 10, ptr(0.5)},
		{"Zero numerator", 0, 10, ptr(0.0)},
		{"Zero denominator", 5, 0, nil},
		{"Both zero", 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statmath.Div(tt.num, tt.den)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Div(%f, %f) = %v, want %v", tt.num, tt.den, got, tt.want)
			}
			if got != nil && math.Abs(*got-*tt.want) > 1e-9 {
				t.Errorf("Div(%f, %f) = %f, want %f", tt.num, tt.den, *got, *tt.want)
			}
		})
	}
}

func TestFGPctBounds(t *testing.T) {
	tests := []struct {
		name string
		fgm  float64
		fga  float64
	}{
		{"All makes", 10, 10},
		{"No makes", 0, 10},
		{"Half", 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statmath.FGPct(tt.fgm, tt.fga)
			if got == nil {
				t.Fatal("expected defined FG% for positive attempts")
			}
			if *got < 0 || *got > 1 {
				t.Errorf("FG%% out of bounds: %f", *got)
			}
		})
	}

	if got := statmath.FGPct(0, 0); got != nil {
		t.Errorf("FG%% with zero attempts should be undefined, got %f", *got)
	}
}

func TestEffectiveFGPct(t *testing.T) {
	tests := []struct {
		name string
		fgm  float64
		fg3m float64
		fga  float64
		want float64
	}{
		{"No threes", 5, 0, 10, 0.5},
		{"All threes", 4, 4, 8, 0.75},
		{"Mixed", 6, 2, 12, 7.0 / 12.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statmath.EffectiveFGPct(tt.fgm, tt.fg3m, tt.fga)
			if got == nil {
				t.Fatal("expected defined eFG%")
			}
			if math.Abs(*got-tt.want) > 1e-9 {
				t.Errorf("EffectiveFGPct = %f, want %f", *got, tt.want)
			}
			if *got < 0 {
				t.Errorf("eFG%% must be non-negative, got %f", *got)
			}
		})
	}

	if got := statmath.EffectiveFGPct(0, 0, 0); got != nil {
		t.Errorf("eFG%% with zero attempts should be undefined, got %f", *got)
	}
}

func TestPointsFromMakes(t *testing.T) {
	tests := []struct {
		name string
		fg2m float64
		fg3m float64
		ftm  float64
		want float64
	}{
		{"Twos only", 10, 0, 0, 20},
		{"Threes only", 0, 5, 0, 15},
		{"With free throws", 4, 2, 3, 17},
		{"Nothing", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statmath.Points(tt.fg2m, tt.fg3m, tt.ftm); got != tt.want {
				t.Errorf("Points(%f, %f, %f) = %f, want %f", tt.fg2m, tt.fg3m, tt.ftm, got, tt.want)
			}
		})
	}
}

func TestPointsPerShot(t *testing.T) {
	got := statmath.PointsPerShot(22, 20)
	if got == nil || math.Abs(*got-1.1) > 1e-9 {
		t.Errorf("PointsPerShot(22, 20) = %v, want 1.1", got)
	}

	if got := statmath.PointsPerShot(10, 0); got != nil {
		t.Errorf("PointsPerShot with zero attempts should be undefined, got %f", *got)
	}
}

func ptr(v float64) *float64 { return &v }
