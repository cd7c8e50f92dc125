package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/fnbrowser/pkg/httpx"
	appsvcs "github.com/ghuser/fnbrowser/services/cosmetic/application/services"
)

// GetCatalogStatusHandler handles GET /catalog/status.
type GetCatalogStatusHandler struct {
	svc *appsvcs.Services
}

func NewGetCatalogStatusHandler(svc *appsvcs.Services) *GetCatalogStatusHandler {
	return &GetCatalogStatusHandler{svc: svc}
}

// Execute reports the catalog lifecycle state.
//
//	@Summary		Catalog status
//	@Description	Lifecycle state, slow-fetch advisory, last error with retry countdown, and served item count
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	CatalogStatusResponse
//	@Router			/catalog/status [get]
func (h *GetCatalogStatusHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, statusResponse(h.svc.Catalog.Status()))
}

// PostCatalogRefreshHandler handles POST /catalog/refresh.
type PostCatalogRefreshHandler struct {
	svc *appsvcs.Services
}

func NewPostCatalogRefreshHandler(svc *appsvcs.Services) *PostCatalogRefreshHandler {
	return &PostCatalogRefreshHandler{svc: svc}
}

// Execute aborts any fetch in flight and starts a new one.
//
//	@Summary		Refresh catalog
//	@Description	Aborts the fetch in flight, if any, and starts a new one in the background
//	@Tags			catalog
//	@Produce		json
//	@Success		202	{object}	CatalogStatusResponse
//	@Router			/catalog/refresh [post]
func (h *PostCatalogRefreshHandler) Execute(w http.ResponseWriter, _ *http.Request) {
	h.svc.Catalog.Refresh()
	httpx.JSON(w, http.StatusAccepted, statusResponse(h.svc.Catalog.Status()))
}

func statusResponse(st appsvcs.Status) CatalogStatusResponse {
	return CatalogStatusResponse{
		State:          string(st.State),
		Slow:           st.Slow,
		Error:          st.Error,
		RetryInSeconds: int(st.RetryIn / time.Second),
		Count:          st.Count,
		FetchedAt:      st.FetchedAt,
		FromSnapshot:   st.FromSnapshot,
	}
}
