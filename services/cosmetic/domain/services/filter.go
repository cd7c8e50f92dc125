// Package services contains the catalog's domain logic: filtering, incremental
// rendering, related-item resolution, the randomizer and history rules. It
// depends only on the domain layer and has no I/O.
package services

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
)

// Matcher evaluates the filter predicate for one query/facet selection.
// A Matcher holds a case folder and must not be shared between goroutines.
type Matcher struct {
	fold   cases.Caser
	query  string
	typ    string
	rarity string
	season string
}

// NewMatcher folds the query and facets once so per-item matching only folds item fields.
func NewMatcher(query string, f models.Facets) *Matcher {
	f = f.Normalize()
	m := &Matcher{fold: cases.Fold()}
	m.query = m.fold.String(query)
	m.typ = m.fold.String(f.Type)
	m.rarity = m.fold.String(f.Rarity)
	m.season = m.fold.String(f.Season)
	return m
}

// Match reports whether item satisfies all four predicates: name contains the
// query, type and rarity equal their facets, and the introduction text
// contains the season facet. A facet equal to "all" always holds.
func (m *Matcher) Match(item models.Cosmetic) bool {
	if m.query != "" && !strings.Contains(m.fold.String(item.Name), m.query) {
		return false
	}
	if m.typ != models.AllFacet && m.fold.String(item.Type.Value) != m.typ {
		return false
	}
	if m.rarity != models.AllFacet && m.fold.String(item.Rarity.Value) != m.rarity {
		return false
	}
	if m.season != models.AllFacet && !strings.Contains(m.fold.String(item.IntroductionText()), m.season) {
		return false
	}
	return true
}

// Filter returns the subsequence of the collection matching query and facets.
// The result is a fresh slice in collection order; it is never cached.
func Filter(c *models.Collection, query string, f models.Facets) []models.Cosmetic {
	m := NewMatcher(query, f)
	out := make([]models.Cosmetic, 0, c.Len())
	for _, item := range c.All() {
		if m.Match(item) {
			out = append(out, item)
		}
	}
	return out
}
