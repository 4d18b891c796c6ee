package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sentinelops/logsage/apimodels"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "logsage API",
		"version": Version,
		"endpoints": map[string]string{
			"analyze": "/api/analyze",
			"health":  "/health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	bertHealthy := s.anomaly.Health(r.Context())

	status := "healthy"
	if !bertHealthy {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, apimodels.HealthResponse{
		Status:         status,
		LLMURL:         s.cfg.LLM.Endpoint,
		BertURL:        s.cfg.Anomaly.URL,
		BertHealthy:    bertHealthy,
		SearchProvider: s.cfg.Search.Provider,
		Version:        Version,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req apimodels.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.LogText == "" {
		http.Error(w, "log_text is required", http.StatusBadRequest)
		return
	}

	slog.Info("Received analysis request", "log_chars", len(req.LogText), "use_search", req.UseSearch)

	record := s.analyzer.Analyze(r.Context(), req.LogText, req.UseSearch)
	writeJSON(w, http.StatusOK, record)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; all that is left is to log it.
		slog.Error("encoding response failed", "error", err)
	}
}
