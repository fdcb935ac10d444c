package server

import (
	"encoding/json"
	"net/http"

	"github.com/ceddto100/edgeline/internal/models"
)

// ToolResponse is the envelope every tool endpoint returns: structured
// data plus a human-readable sentence describing the same result.
type ToolResponse struct {
	Success bool                `json:"success"`
	Human   string              `json:"human,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Error   *models.DomainError `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeTool(w http.ResponseWriter, human string, data interface{}) {
	writeJSON(w, http.StatusOK, ToolResponse{Success: true, Human: human, Data: data})
}

func writeDomainError(w http.ResponseWriter, derr *models.DomainError) {
	writeJSON(w, statusFor(derr.Code), ToolResponse{Success: false, Error: derr})
}

func writeBadRequest(w http.ResponseWriter, format string, args ...interface{}) {
	writeDomainError(w, models.NewDomainError(models.ErrCodeInvalidInput, format, args...))
}

// statusFor maps domain error codes onto HTTP status codes. Validation
// failures are 400s, missing entities 404s, resolvable-but-unusable
// inputs 422s.
func statusFor(code models.ErrorCode) int {
	switch code {
	case models.ErrCodeInvalidInput, models.ErrCodeInvalidBankroll, models.ErrCodeInvalidOdds:
		return http.StatusBadRequest
	case models.ErrCodeTeamNotFound, models.ErrCodeBetNotFound:
		return http.StatusNotFound
	case models.ErrCodeInsufficientData:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
