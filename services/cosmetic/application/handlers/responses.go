package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/fnbrowser/pkg/auth"
	"github.com/ghuser/fnbrowser/pkg/httpx"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"cosmetic not found: CID_001"`
} // @name ErrorResponse

// PageResponse is one window of the filtered catalog.
type PageResponse struct {
	Items    []models.Cosmetic `json:"items"`
	Page     int               `json:"page"      example:"1"`
	PageSize int               `json:"page_size" example:"20"`
	Total    int               `json:"total"     example:"4821"`
	HasMore  bool              `json:"has_more"  example:"true"`
} // @name PageResponse

// DetailResponse is the detail view of one cosmetic.
type DetailResponse struct {
	Cosmetic    models.Cosmetic   `json:"cosmetic"`
	ImageURL    string            `json:"image_url"    example:"https://fortnite-api.com/images/cosmetics/br/cid_028_athena_commando_f/featured.png"`
	RarityLabel string            `json:"rarity_label" example:"Legendary"`
	Related     []models.Cosmetic `json:"related"`
} // @name DetailResponse

// ItemsResponse wraps a list of cosmetics.
type ItemsResponse struct {
	Items []models.Cosmetic `json:"items"`
} // @name ItemsResponse

// CatalogStatusResponse reports the catalog lifecycle.
type CatalogStatusResponse struct {
	State          string    `json:"state"                      example:"ready"`
	Slow           bool      `json:"slow"                       example:"false"`
	Error          string    `json:"error,omitempty"            example:"cosmetics api failure: status 503"`
	RetryInSeconds int       `json:"retry_in_seconds,omitempty" example:"12"`
	Count          int       `json:"count"                      example:"4821"`
	FetchedAt      time.Time `json:"fetched_at,omitzero"        example:"2024-05-01T12:00:00Z"`
	FromSnapshot   bool      `json:"from_snapshot"              example:"false"`
} // @name CatalogStatusResponse

// SearchesResponse lists a visitor's recent searches, most recent first.
type SearchesResponse struct {
	Searches []string `json:"searches" example:"peely,renegade"`
} // @name SearchesResponse

// PopularSearch is one entry of the popular searches ranking.
type PopularSearch struct {
	Query string `json:"query" example:"peely"`
	Count int64  `json:"count" example:"42"`
} // @name PopularSearch

// PopularSearchesResponse lists the most committed searches.
type PopularSearchesResponse struct {
	Searches []PopularSearch `json:"searches"`
} // @name PopularSearchesResponse

// visitor returns the visitor id set by auth.Visitor, writing a 401 when absent.
func visitor(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := auth.VisitorIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "visitor session required"})
		return "", false
	}
	return id, true
}

func nonNil(items []models.Cosmetic) []models.Cosmetic {
	if items == nil {
		return []models.Cosmetic{}
	}
	return items
}

// pathParam returns the decoded URL parameter. chi matches against RawPath
// when it is set, so only then is the value still escaped.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}
