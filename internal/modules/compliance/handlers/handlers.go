// Package handlers provides HTTP handlers for compliance check operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nlampros/sectorguard/internal/config"
	"github.com/nlampros/sectorguard/internal/modules/compliance"
)

// Handler handles compliance HTTP requests
type Handler struct {
	evaluator *compliance.Evaluator
	rules     config.RulesConfig
	log       zerolog.Logger
}

// NewHandler creates a new compliance handler
func NewHandler(evaluator *compliance.Evaluator, rules config.RulesConfig, log zerolog.Logger) *Handler {
	return &Handler{
		evaluator: evaluator,
		rules:     rules,
		log:       log.With().Str("handler", "compliance").Logger(),
	}
}

// checkRequest is the body of POST /api/compliance/check
type checkRequest struct {
	Weights map[string]float64 `json:"weights"`
	Verbose bool               `json:"verbose"`
}

// HandleCheck handles POST /api/compliance/check
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn().Err(err).Msg("Failed to decode check request")
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.evaluator.Evaluate(req.Weights, req.Verbose)
	if err != nil {
		if errors.Is(err, compliance.ErrInvalidInput) {
			h.log.Warn().Err(err).Msg("Rejected invalid portfolio input")
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("Compliance evaluation failed")
		h.writeError(w, http.StatusInternalServerError, "evaluation failed")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": report,
	})
}

// HandleGetRules handles GET /api/compliance/rules
func (h *Handler) HandleGetRules(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"thresholds": map[string]float64{
				"single_sector_hard": h.rules.Thresholds.SingleSectorHard,
				"single_sector_soft": h.rules.Thresholds.SingleSectorSoft,
				"cluster_hard":       h.rules.Thresholds.ClusterHard,
				"cluster_soft":       h.rules.Thresholds.ClusterSoft,
				"defensive_hard_min": h.rules.Thresholds.DefensiveHardMin,
				"defensive_soft_min": h.rules.Thresholds.DefensiveSoftMin,
				"reit_hard":          h.rules.Thresholds.REITHard,
				"reit_soft":          h.rules.Thresholds.REITSoft,
				"cyclical_hard":      h.rules.Thresholds.CyclicalHard,
				"cyclical_soft":      h.rules.Thresholds.CyclicalSoft,
				"cyclical_advisory":  h.rules.Thresholds.CyclicalAdvisory,
			},
			"groups":      h.rules.Groups,
			"correlation": h.rules.Table,
		},
	})
}

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": msg,
	})
}
