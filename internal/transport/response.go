package transport

import (
	"encoding/json"
	"net/http"

	"agency-backend/internal/query"
	"agency-backend/internal/validation"
)

// Envelope is the uniform response wrapper of every endpoint.
type Envelope struct {
	Success    bool                    `json:"success"`
	Data       interface{}             `json:"data,omitempty"`
	Message    string                  `json:"message,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Details    []validation.FieldError `json:"details,omitempty"`
	Count      *int                    `json:"count,omitempty"`
	Total      *int64                  `json:"total,omitempty"`
	Pagination *query.Pagination       `json:"pagination,omitempty"`
}

const ServerError = "Server Error"

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, Envelope{Success: true, Data: data})
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: true, Message: message})
}

// WriteList writes a page of results with its count, total and pagination.
func WriteList(w http.ResponseWriter, data interface{}, count int, p query.Pagination) {
	total := p.Total
	WriteJSON(w, http.StatusOK, Envelope{
		Success:    true,
		Data:       data,
		Count:      &count,
		Total:      &total,
		Pagination: &p,
	})
}

func WriteError(w http.ResponseWriter, status int, message string, details []validation.FieldError) {
	WriteJSON(w, status, Envelope{
		Success: false,
		Error:   message,
		Details: details,
	})
}

func WriteServerError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, ServerError, nil)
}

// ListBody is the encoded form of a WriteList response, for caching.
func ListBody(data interface{}, count int, p query.Pagination) ([]byte, error) {
	total := p.Total
	return json.Marshal(Envelope{
		Success:    true,
		Data:       data,
		Count:      &count,
		Total:      &total,
		Pagination: &p,
	})
}

func WriteCachedJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
