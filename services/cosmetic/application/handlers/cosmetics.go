package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/fnbrowser/pkg/errhttp"
	"github.com/ghuser/fnbrowser/pkg/httpx"
	pkgvalidator "github.com/ghuser/fnbrowser/pkg/validator"
	appsvcs "github.com/ghuser/fnbrowser/services/cosmetic/application/services"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	domainsvcs "github.com/ghuser/fnbrowser/services/cosmetic/domain/services"
)

// ListCosmeticsQuery holds the query parameters of GET /cosmetics.
type ListCosmeticsQuery struct {
	Q        string `query:"q"         validate:"max=100"`
	Type     string `query:"type"      validate:"max=32"`
	Rarity   string `query:"rarity"    validate:"max=32"`
	Season   string `query:"season"    validate:"max=32"`
	Page     int    `query:"page"      validate:"gte=1"`
	PageSize int    `query:"page_size" validate:"gte=1,lte=100"`
}

// RelatedQuery holds the query parameters of GET /cosmetics/{id}/related.
type RelatedQuery struct {
	Limit int `query:"limit" validate:"gte=1,lte=20"`
}

// GetFacetsHandler handles GET /facets.
type GetFacetsHandler struct {
	svc *appsvcs.Services
}

func NewGetFacetsHandler(svc *appsvcs.Services) *GetFacetsHandler {
	return &GetFacetsHandler{svc: svc}
}

// Execute lists the facet toggles.
//
//	@Summary		List facets
//	@Description	Returns the type, rarity and season toggles offered by the browser
//	@Tags			cosmetics
//	@Produce		json
//	@Success		200	{object}	models.FacetCatalog
//	@Router			/facets [get]
func (h *GetFacetsHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Query.Facets())
}

// ListCosmeticsHandler handles GET /cosmetics.
type ListCosmeticsHandler struct {
	svc *appsvcs.Services
}

func NewListCosmeticsHandler(svc *appsvcs.Services) *ListCosmeticsHandler {
	return &ListCosmeticsHandler{svc: svc}
}

// Execute filters the catalog and returns one window of results.
//
//	@Summary		Search cosmetics
//	@Description	Filters the catalog by name and facets and returns the first `page` pages of results
//	@Tags			cosmetics
//	@Produce		json
//	@Param			q			query		string	false	"Case-insensitive name substring"
//	@Param			type		query		string	false	"Type facet"		default(all)
//	@Param			rarity		query		string	false	"Rarity facet"		default(all)
//	@Param			season		query		string	false	"Season facet"		default(all)
//	@Param			page		query		int		false	"Pages revealed"	default(1)
//	@Param			page_size	query		int		false	"Page size"			default(20)
//	@Success		200			{object}	PageResponse
//	@Failure		422			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/cosmetics [get]
func (h *ListCosmeticsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q, ok := pkgvalidator.ValidateQuery(w, r, ListCosmeticsQuery{Page: 1, PageSize: h.pageSize()})
	if !ok {
		return
	}

	page, err := h.svc.Query.Search(q.Q, models.Facets{Type: q.Type, Rarity: q.Rarity, Season: q.Season}, q.Page, q.PageSize)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, PageResponse{
		Items:    nonNil(page.Items),
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
		HasMore:  page.HasMore,
	})
}

func (h *ListCosmeticsHandler) pageSize() int {
	if h.svc.PageSize > 0 {
		return h.svc.PageSize
	}
	return domainsvcs.DefaultPageSize
}

// GetCosmeticHandler handles GET /cosmetics/{id}.
type GetCosmeticHandler struct {
	svc *appsvcs.Services
}

func NewGetCosmeticHandler(svc *appsvcs.Services) *GetCosmeticHandler {
	return &GetCosmeticHandler{svc: svc}
}

// Execute returns the detail view of one cosmetic.
//
//	@Summary		Get cosmetic
//	@Description	Returns a cosmetic with its display image, rarity label and up to four related cosmetics
//	@Tags			cosmetics
//	@Produce		json
//	@Param			id	path		string	true	"Cosmetic ID"
//	@Success		200	{object}	DetailResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/cosmetics/{id} [get]
func (h *GetCosmeticHandler) Execute(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Query.Detail(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, DetailResponse{
		Cosmetic:    d.Cosmetic,
		ImageURL:    d.ImageURL,
		RarityLabel: d.RarityLabel,
		Related:     nonNil(d.Related),
	})
}

// GetRelatedHandler handles GET /cosmetics/{id}/related.
type GetRelatedHandler struct {
	svc *appsvcs.Services
}

func NewGetRelatedHandler(svc *appsvcs.Services) *GetRelatedHandler {
	return &GetRelatedHandler{svc: svc}
}

// Execute lists cosmetics related to one cosmetic.
//
//	@Summary		Related cosmetics
//	@Description	Same set first, then same series, then same rarity and type
//	@Tags			cosmetics
//	@Produce		json
//	@Param			id		path		string	true	"Cosmetic ID"
//	@Param			limit	query		int		false	"Maximum results"	default(4)
//	@Success		200		{object}	ItemsResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/cosmetics/{id}/related [get]
func (h *GetRelatedHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q, ok := pkgvalidator.ValidateQuery(w, r, RelatedQuery{Limit: domainsvcs.DefaultRelatedLimit})
	if !ok {
		return
	}
	items, err := h.svc.Query.Related(chi.URLParam(r, "id"), q.Limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ItemsResponse{Items: nonNil(items)})
}

// GetSetHandler handles GET /sets/{name}.
type GetSetHandler struct {
	svc *appsvcs.Services
}

func NewGetSetHandler(svc *appsvcs.Services) *GetSetHandler {
	return &GetSetHandler{svc: svc}
}

// Execute lists the members of a set. Upstream failures yield an empty list.
//
//	@Summary		Set members
//	@Description	Looks up every cosmetic of the named set; never fails, an unavailable upstream yields an empty list
//	@Tags			cosmetics
//	@Produce		json
//	@Param			name	path		string	true	"Set name"
//	@Success		200		{object}	ItemsResponse
//	@Router			/sets/{name} [get]
func (h *GetSetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid set name"})
		return
	}
	httpx.JSON(w, http.StatusOK, ItemsResponse{Items: h.svc.Sets.Items(r.Context(), name)})
}
