package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ocr-backend/internal/models"
	"ocr-backend/internal/service"
	"ocr-backend/internal/state"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Enhancer *service.OCREnhancer
	Trainer  *service.ComparisonTrainer
}

func NewHandler(enhancer *service.OCREnhancer, trainer *service.ComparisonTrainer) *Handler {
	return &Handler{
		Enhancer: enhancer,
		Trainer:  trainer,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	// Enhancement
	r.Post("/api/ocr/enhance", h.Enhance)
	r.Post("/api/ocr/enhance/batch", h.BatchEnhance)
	r.Post("/api/ocr/correction", h.SaveCorrection)
	r.Get("/api/ocr/corrections", h.GetCorrections)

	// Comparison / training
	r.Post("/api/ocr/compare", h.Compare)
	r.Post("/api/ocr/merge", h.Merge)
	r.Get("/api/training/stats", h.GetTrainingStats)

	// Config
	r.Get("/api/config/storage", h.GetStorageConfig)
	r.Post("/api/config/storage", h.SaveStorageConfig)
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ============================================================================
// Enhancement
// ============================================================================

// Enhance runs the correction pipeline over a single OCR text
func (h *Handler) Enhance(w http.ResponseWriter, r *http.Request) {
	var req models.EnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Confidence < 0 || req.Confidence > 1 {
		http.Error(w, "confidence must be in [0,1]", http.StatusBadRequest)
		return
	}
	confidence := req.Confidence
	if confidence == 0 {
		confidence = 0.5 // default when omitted
	}

	result := h.Enhancer.Enhance(req.Text, confidence, &models.EnhanceOptions{
		SkipLearned:  req.SkipLearned,
		DocumentType: req.DocumentType,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// BatchEnhance runs the pipeline over a set of documents
func (h *Handler) BatchEnhance(w http.ResponseWriter, r *http.Request) {
	var req models.BatchEnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if len(req.Items) == 0 {
		http.Error(w, "items is required", http.StatusBadRequest)
		return
	}

	results := h.Enhancer.BatchEnhance(req.Items)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.BatchEnhanceResponse{
		Results: results,
		Count:   len(results),
	})
}

// SaveCorrection records one human-confirmed correction observation
func (h *Handler) SaveCorrection(w http.ResponseWriter, r *http.Request) {
	var req models.SaveCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Original == "" || req.Corrected == "" {
		http.Error(w, "original and corrected are required", http.StatusBadRequest)
		return
	}

	if err := h.Enhancer.SaveCorrection(req.Original, req.Corrected, req.Context); err != nil {
		http.Error(w, fmt.Sprintf("Error saving correction: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"original":  req.Original,
		"corrected": req.Corrected,
	})
}

// GetCorrections returns the currently loaded learned corrections
func (h *Handler) GetCorrections(w http.ResponseWriter, r *http.Request) {
	corrections := h.Enhancer.LearnedCorrections()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.CorrectionsResponse{
		Corrections: corrections,
		Count:       len(corrections),
	})
}

// ============================================================================
// Comparison / Training
// ============================================================================

// Compare scores a system transcription against ground truth
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	result := h.Trainer.CompareOCR(req.SystemText, req.GroundTruth, req.DocumentType, req.Metadata)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Merge places OCR output alongside accompanying descriptive text
func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	var req models.MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	result := h.Trainer.MergeWithAccompanyingText(req.OCRText, req.AccompanyingText)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetTrainingStats scans the stored training examples
func (h *Handler) GetTrainingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Trainer.TrainingStats()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error reading training stats: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// ============================================================================
// Config
// ============================================================================

func (h *Handler) GetStorageConfig(w http.ResponseWriter, r *http.Request) {
	resp := models.StorageConfig{
		DataDir:         state.State.GetDataDir(),
		CorrectionStore: state.State.GetCorrectionStore(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) SaveStorageConfig(w http.ResponseWriter, r *http.Request) {
	var config models.StorageConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if config.DataDir != "" {
		state.State.SetDataDir(config.DataDir)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"config": models.StorageConfig{
			DataDir:         state.State.GetDataDir(),
			CorrectionStore: state.State.GetCorrectionStore(),
		},
	})
}
