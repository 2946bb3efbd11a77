package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wonny/festa/backend/internal/contracts"
	"github.com/wonny/festa/backend/internal/generate"
	"github.com/wonny/festa/backend/internal/syncsvc"
	"github.com/wonny/festa/backend/pkg/logger"
)

// FestivalHandler handles festival pattern and generation API endpoints
// ⭐ SSOT: 축제 API 핸들러는 이 구조체에서만
type FestivalHandler struct {
	generator *generate.Generator
	sync      *syncsvc.Service
	series    contracts.SeriesRepository
	logger    *logger.Logger
}

// NewFestivalHandler creates a new festival handler
func NewFestivalHandler(
	generator *generate.Generator,
	sync *syncsvc.Service,
	series contracts.SeriesRepository,
	log *logger.Logger,
) *FestivalHandler {
	return &FestivalHandler{
		generator: generator,
		sync:      sync,
		series:    series,
		logger:    log,
	}
}

// PatternItem represents one analyzed series pattern
type PatternItem struct {
	SeriesID int64              `json:"seriesId"`
	Name     string             `json:"name"`
	Pattern  *contracts.Pattern `json:"pattern"`
}

// ListPatterns returns all series with an analyzed pattern
// GET /api/patterns
func (h *FestivalHandler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	series, err := h.series.FindWithPattern(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list patterns")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve patterns")
		return
	}

	items := make([]PatternItem, 0, len(series))
	for _, rec := range series {
		items = append(items, PatternItem{
			SeriesID: rec.ID,
			Name:     rec.Name,
			Pattern:  rec.Pattern,
		})
	}

	respondJSON(w, http.StatusOK, items)
}

// Predict returns the next expected occurrence for a festival name
// GET /api/predict?name=봄꽃축제
func (h *FestivalHandler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "Missing 'name' query parameter")
		return
	}

	prediction, err := h.generator.PredictNextForName(ctx, name)
	if err != nil {
		h.logger.WithError(err).WithField("name", name).Error("Prediction failed")
		respondError(w, http.StatusInternalServerError, "Prediction failed")
		return
	}
	if prediction == nil {
		respondError(w, http.StatusNotFound, "Not enough history to predict")
		return
	}

	respondJSON(w, http.StatusOK, prediction)
}

// Analyze triggers a full pattern analysis batch
// POST /api/analyze
func (h *FestivalHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	updated, err := h.generator.AnalyzeAllPatterns(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Pattern analysis failed")
		respondError(w, http.StatusInternalServerError, "Pattern analysis failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"updated": updated,
	})
}

// GenerateRequest represents a generation trigger request
type GenerateRequest struct {
	Year  int  `json:"year"`  // 0이면 전체 생성 윈도우 대상
	Force bool `json:"force"` // 해당 연도의 기존 예상 개최를 지우고 재생성
}

// Generate triggers expected-festival generation
// POST /api/generate
func (h *FestivalHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GenerateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	var err error
	if req.Year == 0 {
		err = h.generator.GenerateExpected(ctx)
	} else {
		err = h.generator.RegenerateYear(ctx, req.Year, req.Force)
	}
	if err != nil {
		h.logger.WithError(err).WithField("year", req.Year).Error("Generation failed")
		respondError(w, http.StatusInternalServerError, "Generation failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"year":   req.Year,
		"force":  req.Force,
	})
}

// SyncRequest represents a sync trigger request
type SyncRequest struct {
	Year int `json:"year"` // 0이면 올해
}

// Sync triggers a TourAPI festival list sync
// POST /api/sync
func (h *FestivalHandler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SyncRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if req.Year == 0 {
		req.Year = time.Now().Year()
	}

	result, err := h.sync.SyncFestivals(ctx, req.Year)
	if err != nil {
		h.logger.WithError(err).WithField("year", req.Year).Error("Sync failed")
		respondError(w, http.StatusInternalServerError, "Sync failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"year":   req.Year,
		"result": result,
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
