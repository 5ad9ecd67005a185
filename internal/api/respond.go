package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondData wraps a payload in the success envelope the frontend expects.
func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, map[string]interface{}{"success": true, "data": data})
}

// respondMessage is the envelope for operations with no payload.
func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]interface{}{"success": true, "message": msg})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"success": false, "error": message})
}

// validUUID reports whether s parses as a UUID. Ids arriving on the public
// endpoints are checked before they reach the database, so malformed input
// reads as not-found instead of a failed uuid cast.
func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// decodeBody parses a JSON request body into dst, rejecting unknown noise
// only via type mismatches (unknown fields are tolerated).
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
