package utils

import (
	"encoding/json"
	"net/http"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError sends the {success:false, message} envelope clients branch on.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"success": false, "message": msg})
}

// RespondWithData wraps a payload in the success envelope.
func RespondWithData(w http.ResponseWriter, code int, msg string, data interface{}) {
	RespondWithJSON(w, code, M{"success": true, "message": msg, "data": data})
}

type M map[string]interface{}
