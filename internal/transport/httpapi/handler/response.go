package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// looseNumber accepts a JSON number or a numeric string and decodes to a
// float64. Anything unparseable coerces to zero rather than failing the
// request: monetary fields arrive from free-form text inputs.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = looseNumber(v)
	return nil
}

// Helper functions for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithErrorCode(w http.ResponseWriter, status int, code, message string) {
	respondWithJSON(w, status, map[string]string{"code": code, "error": message})
}
