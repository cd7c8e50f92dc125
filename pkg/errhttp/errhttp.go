// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/ghuser/fnbrowser/pkg/httpx"
	cosmeticdomain "github.com/ghuser/fnbrowser/services/cosmetic/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

// Status returns the status code WriteError would use for err.
func Status(err error) int {
	return mapErrorToStatus(err)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, cosmeticdomain.ErrCosmeticNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, cosmeticdomain.ErrInvalidFacet):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, cosmeticdomain.ErrCatalogNotLoaded):
		return http.StatusServiceUnavailable // 503
	case errors.Is(err, cosmeticdomain.ErrUpstream):
		return http.StatusBadGateway // 502
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout // 504
	default:
		return http.StatusInternalServerError // 500
	}
}
