package handlers

import (
	"net/http"

	"github.com/ghuser/fnbrowser/pkg/errhttp"
	"github.com/ghuser/fnbrowser/pkg/httpx"
	pkgvalidator "github.com/ghuser/fnbrowser/pkg/validator"
	appsvcs "github.com/ghuser/fnbrowser/services/cosmetic/application/services"
)

// SubmitSearchRequest is the request body for POST /searches.
type SubmitSearchRequest struct {
	Query string `json:"query" validate:"max=100" example:"peely"`
	// Immediate commits without waiting for the debounce window.
	Immediate bool `json:"immediate" example:"false"`
} // @name SubmitSearchRequest

// ListSearchesHandler handles GET /searches.
type ListSearchesHandler struct {
	svc *appsvcs.Services
}

func NewListSearchesHandler(svc *appsvcs.Services) *ListSearchesHandler {
	return &ListSearchesHandler{svc: svc}
}

// Execute lists the visitor's recent searches.
//
//	@Summary		Recent searches
//	@Description	Up to five recent searches of the current visitor, most recent first
//	@Tags			searches
//	@Produce		json
//	@Success		200	{object}	SearchesResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/searches [get]
func (h *ListSearchesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := visitor(w, r)
	if !ok {
		return
	}
	list, err := h.svc.Search.Recent(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, searchesResponse(list))
}

// PostSearchHandler handles POST /searches.
type PostSearchHandler struct {
	svc *appsvcs.Services
}

func NewPostSearchHandler(svc *appsvcs.Services) *PostSearchHandler {
	return &PostSearchHandler{svc: svc}
}

// Execute records a search. By default the write is debounced: only the last
// search submitted within one second is kept.
//
//	@Summary		Record search
//	@Description	Debounced by default; pass immediate=true to commit at once
//	@Tags			searches
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SubmitSearchRequest	true	"Search"
//	@Success		200		{object}	SearchesResponse
//	@Success		202		{object}	SearchesResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/searches [post]
func (h *PostSearchHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := visitor(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[SubmitSearchRequest](w, r)
	if !ok {
		return
	}

	if !req.Immediate {
		h.svc.Search.Submit(id, req.Query)
		list, err := h.svc.Search.Recent(r.Context(), id)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
		httpx.JSON(w, http.StatusAccepted, searchesResponse(list))
		return
	}

	list, err := h.svc.Search.Commit(r.Context(), id, req.Query)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, searchesResponse(list))
}

// DeleteSearchHandler handles DELETE /searches/{query}.
type DeleteSearchHandler struct {
	svc *appsvcs.Services
}

func NewDeleteSearchHandler(svc *appsvcs.Services) *DeleteSearchHandler {
	return &DeleteSearchHandler{svc: svc}
}

// Execute removes one recent search.
//
//	@Summary		Remove search
//	@Tags			searches
//	@Produce		json
//	@Param			query	path		string	true	"Search to remove"
//	@Success		200		{object}	SearchesResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/searches/{query} [delete]
func (h *DeleteSearchHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := visitor(w, r)
	if !ok {
		return
	}
	query, err := pathParam(r, "query")
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid search"})
		return
	}
	list, err := h.svc.Search.Remove(r.Context(), id, query)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, searchesResponse(list))
}

// ClearSearchesHandler handles DELETE /searches.
type ClearSearchesHandler struct {
	svc *appsvcs.Services
}

func NewClearSearchesHandler(svc *appsvcs.Services) *ClearSearchesHandler {
	return &ClearSearchesHandler{svc: svc}
}

// Execute forgets every recent search of the visitor.
//
//	@Summary		Clear searches
//	@Tags			searches
//	@Success		204
//	@Router			/searches [delete]
func (h *ClearSearchesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := visitor(w, r)
	if !ok {
		return
	}
	if err := h.svc.Search.Clear(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.NoContent(w)
}

// PopularSearchesHandler handles GET /searches/popular.
type PopularSearchesHandler struct {
	svc *appsvcs.Services
}

func NewPopularSearchesHandler(svc *appsvcs.Services) *PopularSearchesHandler {
	return &PopularSearchesHandler{svc: svc}
}

// Execute lists the most committed searches across visitors.
//
//	@Summary		Popular searches
//	@Tags			searches
//	@Produce		json
//	@Success		200	{object}	PopularSearchesResponse
//	@Router			/searches/popular [get]
func (h *PopularSearchesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	top, err := h.svc.Search.Popular(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]PopularSearch, len(top))
	for i, c := range top {
		out[i] = PopularSearch{Query: c.Query, Count: c.Count}
	}
	httpx.JSON(w, http.StatusOK, PopularSearchesResponse{Searches: out})
}

func searchesResponse(list []string) SearchesResponse {
	if list == nil {
		list = []string{}
	}
	return SearchesResponse{Searches: list}
}
