package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-family-sync/models"
)

// WriteJSON serializes data and writes it with statusCode. When data
// cannot be marshaled the response becomes a plain 500 and the marshal
// error is returned.
//
// Example usage:
//
//	WriteJSON(w, engine.State(), http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error models.SyncError `json:"error"`
}

// WriteError writes syncErr as an [ErrorResponse].
func WriteError(w http.ResponseWriter, syncErr models.SyncError, statusCode int) {
	_, _ = WriteJSON(w, ErrorResponse{Error: syncErr}, statusCode)
}
