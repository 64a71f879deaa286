package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// envelope is the body written by [WriteError]. It matches the JSON shape of
// models.Result without importing the models package.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON serializes data to JSON and writes it to the HTTP response with
// the given status code and a "Content-Type: application/json" header.
//
// If marshaling fails, it responds with 500 Internal Server Error and
// returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, models.PingResponse{...}, http.StatusOK)
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

// WriteError writes a failed {success, message} envelope.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, envelope{Success: false, Message: message}, statusCode)
}

// DecodeJSON decodes the request body into v. Unknown fields are ignored so
// older servers accept requests from newer terminals. An empty body is an
// error.
func DecodeJSON(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		if err == io.EOF {
			return fmt.Errorf("empty request body")
		}
		return fmt.Errorf("error decoding request body: %w", err)
	}

	return nil
}
