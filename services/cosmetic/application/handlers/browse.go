package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/ghuser/fnbrowser/services/cosmetic/application/browse"
	appsvcs "github.com/ghuser/fnbrowser/services/cosmetic/application/services"
)

// BrowseHandler handles GET /browse by upgrading to a WebSocket browse session.
type BrowseHandler struct {
	svc      *appsvcs.Services
	upgrader websocket.Upgrader
}

// NewBrowseHandler returns a BrowseHandler accepting upgrades from
// allowedOrigins, a comma-separated list or "*".
func NewBrowseHandler(svc *appsvcs.Services, allowedOrigins string) *BrowseHandler {
	return &BrowseHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

// Execute runs a browse session until the client disconnects.
//
//	@Summary		Browse session
//	@Description	WebSocket. Client messages: filter, scroll, load_more, randomize, view. Server messages: window, status, shuffle_step, settled, detail, error
//	@Tags			browse
//	@Success		101
//	@Failure		401	{object}	ErrorResponse
//	@Router			/browse [get]
func (h *BrowseHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := visitor(w, r)
	if !ok {
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.svc.Log.WarnContext(r.Context(), "browse upgrade failed", "error", err)
		return
	}
	defer conn.Close() //nolint:errcheck
	conn.SetReadLimit(4096)

	session := browse.NewSession(conn, browse.Options{
		Visitor:  id,
		PageSize: h.svc.PageSize,
		Catalog:  h.svc.Catalog,
		Query:    h.svc.Query,
		Search:   h.svc.Search,
		Viewed:   h.svc.Viewed,
		Log:      h.svc.Log,
	})
	err = session.Run(r.Context())
	if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h.svc.Log.WarnContext(r.Context(), "browse session ended", "error", err)
	}
}

func checkOrigin(allowed string) func(*http.Request) bool {
	origins := map[string]struct{}{}
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[strings.ToLower(o)] = struct{}{}
		}
	}
	if _, wildcard := origins["*"]; wildcard || len(origins) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := origins[strings.ToLower(origin)]; ok {
			return true
		}
		// same-origin requests are always allowed
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}
