package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func respondWithJSON(w http.ResponseWriter, log *zap.SugaredLogger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Handler: error marshalling JSON response: %v", err)
		http.Error(w, `{"error":"failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, log *zap.SugaredLogger, code int, message string) {
	log.Warnf("Handler: API error %d: %s", code, message)
	respondWithJSON(w, log, code, map[string]string{"error": message})
}
