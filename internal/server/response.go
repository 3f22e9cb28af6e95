package server

import (
	"encoding/json"
	"net/http"

	"github.com/andresmejia3/endcrypt/pkg/metrics"
	"github.com/rs/zerolog/log"
)

// processResponse mirrors the JSON contract of the web front end: failures
// are reported in-band with success=false and a message.
type processResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message,omitempty"`
	OriginalImage  string          `json:"originalImage,omitempty"`
	EncryptedImage string          `json:"encryptedImage,omitempty"`
	DecryptedImage string          `json:"decryptedImage,omitempty"`
	Metrics        *metrics.Report `json:"metrics,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeFailure(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, processResponse{Success: false, Message: msg})
}
