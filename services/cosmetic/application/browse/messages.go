package browse

import (
	"github.com/ghuser/fnbrowser/services/cosmetic/application/services"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	domainsvcs "github.com/ghuser/fnbrowser/services/cosmetic/domain/services"
)

// Client message types.
const (
	TypeFilter    = "filter"
	TypeScroll    = "scroll"
	TypeLoadMore  = "load_more"
	TypeRandomize = "randomize"
	TypeView      = "view"
)

// Server message types.
const (
	TypeWindow      = "window"
	TypeStatus      = "status"
	TypeShuffleStep = "shuffle_step"
	TypeSettled     = "settled"
	TypeDetail      = "detail"
	TypeError       = "error"
)

// ClientMessage is any message a browser sends. Only the fields relevant to
// Type are read.
type ClientMessage struct {
	Type   string        `json:"type"`
	Query  string        `json:"query,omitempty"`
	Facets models.Facets `json:"facets"`
	// Position is the bottom edge of the viewport and ContentLength the total
	// scrollable length, both in pixels.
	Position      float64 `json:"position,omitempty"`
	ContentLength float64 `json:"content_length,omitempty"`
	ID            string  `json:"id,omitempty"`
}

// WindowMessage carries the displayed prefix of the filtered view.
type WindowMessage struct {
	Type    string            `json:"type"`
	Items   []models.Cosmetic `json:"items"`
	Page    int               `json:"page"`
	Total   int               `json:"total"`
	HasMore bool              `json:"has_more"`
	Loading bool              `json:"loading"`
}

// StatusMessage mirrors the catalog lifecycle, including the slow-fetch
// advisory and the retry countdown after a failure.
type StatusMessage struct {
	Type           string                `json:"type"`
	State          services.CatalogState `json:"state"`
	Slow           bool                  `json:"slow"`
	Error          string                `json:"error,omitempty"`
	RetryInSeconds int                   `json:"retry_in_seconds,omitempty"`
	Count          int                   `json:"count"`
}

type ShuffleStepMessage struct {
	Type  string          `json:"type"`
	Step  int             `json:"step"`
	Steps int             `json:"steps"`
	Item  models.Cosmetic `json:"item"`
}

type SettledMessage struct {
	Type         string                  `json:"type"`
	Detail       *services.Detail        `json:"detail"`
	Notification domainsvcs.Notification `json:"notification"`
}

type DetailMessage struct {
	Type   string           `json:"type"`
	Detail *services.Detail `json:"detail"`
}

type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
