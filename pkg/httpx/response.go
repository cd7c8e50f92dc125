package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as JSON with the given status code. HTML characters are left
// unescaped because cosmetic names and descriptions contain "&" and "<".
// Encoding errors are discarded once the header is written.
func JSON(w http.ResponseWriter, status int, v any) {
	setHeaders(w)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// NoContent writes an empty 204.
func NoContent(w http.ResponseWriter) {
	setHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

func setHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
}
