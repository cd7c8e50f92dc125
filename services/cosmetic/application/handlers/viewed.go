package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/fnbrowser/pkg/errhttp"
	"github.com/ghuser/fnbrowser/pkg/httpx"
	appsvcs "github.com/ghuser/fnbrowser/services/cosmetic/application/services"
)

// ListViewedHandler handles GET /viewed.
type ListViewedHandler struct {
	svc *appsvcs.Services
}

func NewListViewedHandler(svc *appsvcs.Services) *ListViewedHandler {
	return &ListViewedHandler{svc: svc}
}

// Execute lists the cosmetics the visitor opened most recently.
//
//	@Summary		Recently viewed
//	@Description	Up to ten cosmetics, most recent first
//	@Tags			viewed
//	@Produce		json
//	@Success		200	{object}	ItemsResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/viewed [get]
func (h *ListViewedHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := visitor(w, r)
	if !ok {
		return
	}
	items, err := h.svc.Viewed.Recent(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ItemsResponse{Items: nonNil(items)})
}

// PostViewedHandler handles POST /viewed/{id}.
type PostViewedHandler struct {
	svc *appsvcs.Services
}

func NewPostViewedHandler(svc *appsvcs.Services) *PostViewedHandler {
	return &PostViewedHandler{svc: svc}
}

// Execute records that the visitor opened a cosmetic.
//
//	@Summary		Record view
//	@Tags			viewed
//	@Param			id	path	string	true	"Cosmetic ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/viewed/{id} [post]
func (h *PostViewedHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := visitor(w, r)
	if !ok {
		return
	}
	if err := h.svc.Viewed.Record(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.NoContent(w)
}
