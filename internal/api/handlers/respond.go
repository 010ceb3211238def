package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/techbay/auth-backend/internal/apperr"
)

// maxBodyBytes caps POST bodies at 140 KiB.
const maxBodyBytes = 140 * 1024

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a size-capped JSON request body into dst. Oversized and
// undecodable bodies both surface the generic invalid-body error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.New(apperr.Validation, "Invalid Body")
	}
	return nil
}
