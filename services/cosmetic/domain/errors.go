package domain

import "errors"

// Sentinel errors for the cosmetic domain. Use errors.Is() to check these.
var (
	// ErrCosmeticNotFound indicates the requested cosmetic is not in the loaded catalog.
	ErrCosmeticNotFound = errors.New("cosmetic not found")

	// ErrCatalogNotLoaded indicates no collection has been fetched (or restored) yet.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")

	// ErrInvalidFacet indicates a facet value outside the known options.
	ErrInvalidFacet = errors.New("invalid facet")

	// ErrUpstream indicates the cosmetics API returned a failure or an unusable body.
	ErrUpstream = errors.New("cosmetics api failure")
)
