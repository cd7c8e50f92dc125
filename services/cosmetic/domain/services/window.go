package services

import "github.com/ghuser/fnbrowser/services/cosmetic/domain/models"

const (
	// DefaultPageSize is the number of cosmetics revealed per page.
	DefaultPageSize = 20
	// ScrollThreshold is how close (in content units) the viewport bottom must
	// be to the end of the content before the next page is loaded.
	ScrollThreshold = 1000
)

// Window is the incremental renderer over a filtered view: it exposes a
// growing prefix of the view one page at a time. A Window has a single owner
// and is not safe for concurrent use.
type Window struct {
	view      []models.Cosmetic
	pageSize  int
	page      int
	displayed int
	loading   bool
}

// NewWindow returns an empty window. Non-positive page sizes use DefaultPageSize.
func NewWindow(pageSize int) *Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Window{pageSize: pageSize, page: 1}
}

// WindowAt returns a window over view advanced to page, as if Reset had been
// followed by page-1 calls to LoadMore.
func WindowAt(view []models.Cosmetic, page, pageSize int) *Window {
	w := NewWindow(pageSize)
	w.Reset(view)
	for i := 1; i < page; i++ {
		if !w.LoadMore() {
			break
		}
	}
	return w
}

// Reset installs a new filtered view and rewinds to the first page.
func (w *Window) Reset(view []models.Cosmetic) {
	w.view = view
	w.page = 1
	w.loading = false
	w.displayed = min(w.pageSize, len(view))
}

// LoadMore reveals the next page. It is a no-op returning false while a load
// is in progress or when the whole view is already displayed.
func (w *Window) LoadMore() bool {
	if w.loading || w.displayed >= len(w.view) {
		return false
	}
	w.loading = true
	w.displayed = min((w.page+1)*w.pageSize, len(w.view))
	w.page++
	w.loading = false
	return true
}

// OnScroll is the proximity trigger: position is the bottom edge of the
// viewport and contentLength the total content length. Within
// ScrollThreshold of the end it calls LoadMore once and reports whether a
// page was added.
func (w *Window) OnScroll(position, contentLength float64) bool {
	if position <= contentLength-ScrollThreshold {
		return false
	}
	return w.LoadMore()
}

// Items returns the displayed prefix of the view.
func (w *Window) Items() []models.Cosmetic {
	out := make([]models.Cosmetic, w.displayed)
	copy(out, w.view[:w.displayed])
	return out
}

func (w *Window) IsLoading() bool { return w.loading }
func (w *Window) HasMore() bool   { return w.displayed < len(w.view) }
func (w *Window) Page() int       { return w.page }
func (w *Window) PageSize() int   { return w.pageSize }
func (w *Window) Displayed() int  { return w.displayed }
func (w *Window) Total() int      { return len(w.view) }
