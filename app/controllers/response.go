package controllers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Helper methods for consistent response handling

func sendJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode response", zap.Error(err))
	}
}

func sendError(w http.ResponseWriter, logger *zap.Logger, message string, status int) {
	sendJSON(w, logger, status, map[string]string{"error": message})
}
