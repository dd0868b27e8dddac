package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/engine"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/loader"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/nbateams"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/store"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/models"
)

// TeamLoader loads the team snapshot from the stats source
type TeamLoader interface {
	LoadTeamSnapshot(ctx context.Context, force bool) (*models.Snapshot, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	store      *store.Store
	teamLoader TeamLoader
}

// NewHandler creates a new handler
func NewHandler(st *store.Store, teamLoader TeamLoader) *Handler {
	return &Handler{
		store:      st,
		teamLoader: teamLoader,
	}
}

// HealthCheck returns service health and the currently published snapshots
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	snapshots := make(map[string]interface{})
	for _, dataset := range []models.DatasetKind{models.DatasetTeam, models.DatasetPlayer} {
		if snap, ok := h.store.Current(dataset); ok {
			snapshots[string(dataset)] = map[string]interface{}{
				"id":        snap.ID,
				"loaded_at": snap.LoadedAt,
				"rows":      len(snap.Rows),
			}
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "shotclock-analytics",
		"snapshots": snapshots,
	})
}

// Refresh reloads the team snapshot from the source. Idempotent: repeated
// calls converge on the same published state, and a failed reload leaves
// the previous snapshot untouched
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.teamLoader.LoadTeamSnapshot(r.Context(), true)
	if err != nil {
		respondLoadError(w, err)
		return
	}

	h.store.Publish(snap)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot_id": snap.ID,
		"rows":        len(snap.Rows),
		"loaded_at":   snap.LoadedAt,
	})
}

// Summary returns the KPI tile line for the filtered row set
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.viewInputs(w, r)
	if !ok {
		return
	}

	view := engine.View(snap.Dataset, snap.Rows, sel)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"dataset": view.Dataset,
		"filter":  view.Filter,
		"summary": view.Summary,
	})
}

// ByRange returns per-bucket aggregates in canonical bucket order
func (h *Handler) ByRange(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.viewInputs(w, r)
	if !ok {
		return
	}

	breakdowns := engine.ByRange(engine.Apply(snap.Rows, sel))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"dataset": snap.Dataset,
		"ranges":  breakdowns,
	})
}

// Entities returns per-team/player/category aggregates, best first
func (h *Handler) Entities(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.viewInputs(w, r)
	if !ok {
		return
	}

	dim, ok := parseDimension(r, snap.Dataset)
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown dim: %s", r.URL.Query().Get("dim")))
		return
	}

	breakdowns := engine.ByEntity(engine.Apply(snap.Rows, sel), dim)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"dataset":  snap.Dataset,
		"dim":      dim,
		"entities": breakdowns,
	})
}

// HeatmapView returns (entity x bucket) cells for the chosen metric
func (h *Handler) HeatmapView(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.viewInputs(w, r)
	if !ok {
		return
	}

	dim, ok := parseDimension(r, snap.Dataset)
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown dim: %s", r.URL.Query().Get("dim")))
		return
	}

	metric, ok := parseMetric(r, models.MetricEFGPct)
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown metric: %s", r.URL.Query().Get("metric")))
		return
	}

	hm := engine.BuildHeatmap(engine.Apply(snap.Rows, sel), dim, metric)
	respondJSON(w, http.StatusOK, hm)
}

// Top returns the ranked entities for one shot-clock bucket
func (h *Handler) Top(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.viewInputs(w, r)
	if !ok {
		return
	}

	bucket, valid := models.ParseShotClockRange(r.URL.Query().Get("range"))
	if !valid {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown range: %s", r.URL.Query().Get("range")))
		return
	}

	dim, ok := parseDimension(r, snap.Dataset)
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown dim: %s", r.URL.Query().Get("dim")))
		return
	}

	metric, ok := parseMetric(r, models.MetricEFGPct)
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown metric: %s", r.URL.Query().Get("metric")))
		return
	}

	limit := 15
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit: %s", raw))
			return
		}
		limit = parsed
	}

	performers := engine.TopPerformers(engine.Apply(snap.Rows, sel), bucket, dim, metric, sel.MinAttempts, limit)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"dataset":    snap.Dataset,
		"range":      bucket,
		"label":      bucket.Label(),
		"metric":     metric,
		"performers": performers,
	})
}

// Rows returns the detailed filtered table with its roll-up
func (h *Handler) Rows(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.viewInputs(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, engine.View(snap.Dataset, snap.Rows, sel))
}

// ExportCSV streams the current filtered view as CSV in the stable
// export column order
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	snap, sel, ok := h.viewInputs(w, r)
	if !ok {
		return
	}

	view := engine.View(snap.Dataset, snap.Rows, sel)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s_shotclock_data.csv", snap.Dataset))

	// Headers are already written; an encode failure here can only be logged
	if err := loader.WriteCSV(w, view); err != nil {
		log.Printf("[handlers] csv export failed: %v", err)
	}
}

// viewInputs resolves the dataset snapshot and filter selection for a
// request, writing the error response itself when either fails. The team
// snapshot is loaded lazily on first use
func (h *Handler) viewInputs(w http.ResponseWriter, r *http.Request) (*models.Snapshot, models.FilterSelection, bool) {
	dataset := models.DatasetTeam
	if raw := r.URL.Query().Get("dataset"); raw != "" {
		switch models.DatasetKind(raw) {
		case models.DatasetTeam, models.DatasetPlayer:
			dataset = models.DatasetKind(raw)
		default:
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown dataset: %s", raw))
			return nil, models.FilterSelection{}, false
		}
	}

	snap, ok := h.store.Current(dataset)
	if !ok && dataset == models.DatasetTeam {
		loaded, err := h.teamLoader.LoadTeamSnapshot(r.Context(), false)
		if err != nil {
			respondLoadError(w, err)
			return nil, models.FilterSelection{}, false
		}
		h.store.Publish(loaded)
		snap = loaded
		ok = true
	}
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("dataset not loaded: %s", dataset))
		return nil, models.FilterSelection{}, false
	}

	sel, err := parseSelection(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, models.FilterSelection{}, false
	}

	return snap, sel, true
}

// parseSelection builds the filter set from query parameters. An absent
// parameter applies no filter; a present-but-empty list parameter is an
// explicitly empty selection that matches nothing
func parseSelection(r *http.Request) (models.FilterSelection, error) {
	q := r.URL.Query()
	var sel models.FilterSelection

	if q.Has("ranges") {
		sel.Ranges = []models.ShotClockRange{}
		for _, raw := range splitList(q.Get("ranges")) {
			bucket, ok := models.ParseShotClockRange(raw)
			if !ok {
				return sel, fmt.Errorf("unknown range: %s", raw)
			}
			sel.Ranges = append(sel.Ranges, bucket)
		}
	}

	if q.Has("categories") {
		sel.Categories = []models.Category{}
		for _, raw := range splitList(q.Get("categories")) {
			cat := models.Category(raw)
			if !cat.Valid() {
				return sel, fmt.Errorf("unknown category: %s", raw)
			}
			sel.Categories = append(sel.Categories, cat)
		}
	}

	if q.Has("team") {
		// Accept full names or abbreviations
		teams := splitList(q.Get("team"))
		for i, team := range teams {
			teams[i] = nbateams.NormalizeAbbr(team)
		}
		sel.Teams = teams
	}
	if q.Has("player") {
		sel.Players = splitList(q.Get("player"))
	}

	if raw := q.Get("min_fga"); raw != "" {
		minFGA, err := strconv.ParseFloat(raw, 64)
		if err != nil || minFGA < 0 {
			return sel, fmt.Errorf("invalid min_fga: %s", raw)
		}
		sel.MinAttempts = minFGA
	}

	return sel, nil
}

func splitList(raw string) []string {
	parts := []string{}
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

func parseDimension(r *http.Request, dataset models.DatasetKind) (engine.Dimension, bool) {
	raw := r.URL.Query().Get("dim")
	if raw == "" {
		if dataset == models.DatasetPlayer {
			return engine.DimPlayer, true
		}
		return engine.DimTeam, true
	}
	return engine.ParseDimension(raw)
}

func parseMetric(r *http.Request, fallback models.Metric) (models.Metric, bool) {
	raw := r.URL.Query().Get("metric")
	if raw == "" {
		return fallback, true
	}
	return models.ParseMetric(raw)
}

// respondLoadError maps loader failures onto the HTTP surface
func respondLoadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrSourceUnavailable):
		respondError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, models.ErrSchemaMismatch):
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
