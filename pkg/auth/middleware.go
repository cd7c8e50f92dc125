package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/oklog/ulid/v2"

	"github.com/ghuser/fnbrowser/pkg/logger"
)

const sessionName = "fnbrowser_session"
const sessionVisitorKey = "visitor_id"

// Visitor is a chi middleware that gives every browser an anonymous, stable
// visitor ID kept in its session. There is no login: a missing, invalid or
// unreadable session simply yields a new visitor.
//
// After this middleware, handlers can call auth.VisitorIDFromCtx(r.Context()).
func Visitor(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
			}

			id, ok := visitorFromSession(session)
			if !ok {
				id = ulid.Make()
				if session != nil {
					session.Values[sessionVisitorKey] = id.String()
					if err := session.Save(r, w); err != nil {
						log.WarnContext(r.Context(), "visitor session not saved", "error", err)
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(WithVisitorID(r.Context(), id)))
		})
	}
}

func visitorFromSession(session *sessions.Session) (ulid.ULID, bool) {
	if session == nil {
		return ulid.ULID{}, false
	}
	raw, ok := session.Values[sessionVisitorKey].(string)
	if !ok || raw == "" {
		return ulid.ULID{}, false
	}
	id, err := ulid.ParseStrict(raw)
	if err != nil {
		return ulid.ULID{}, false
	}
	return id, true
}
