package http

import (
	"encoding/json"
	"net/http"
)

// writeJSON serializes data and writes it with the given status code. If
// marshaling fails the response degrades to a plain 500.
func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonData) //nolint:errcheck // headers already sent, nothing to recover
}
