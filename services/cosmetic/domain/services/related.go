package services

import (
	"golang.org/x/text/cases"

	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
)

// DefaultRelatedLimit is the number of related cosmetics shown in a detail view.
const DefaultRelatedLimit = 4

// Related ranks other cosmetics related to current: first every item of the
// same set, then every item of the same series, then every item sharing both
// rarity and type. All three stages are collected in full before the result
// is truncated to limit. current and duplicates are excluded. Tags compare
// under the same full case folding as Filter.
func Related(current models.Cosmetic, all []models.Cosmetic, limit int) []models.Cosmetic {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	seen := map[string]struct{}{current.ID: {}}
	out := []models.Cosmetic{}
	collect := func(match func(models.Cosmetic) bool) {
		for _, item := range all {
			if _, dup := seen[item.ID]; dup || !match(item) {
				continue
			}
			seen[item.ID] = struct{}{}
			out = append(out, item)
		}
	}

	fold := cases.Fold()
	if set := fold.String(current.SetName()); set != "" {
		collect(func(item models.Cosmetic) bool { return fold.String(item.SetName()) == set })
	}
	if series := fold.String(current.SeriesName()); series != "" {
		collect(func(item models.Cosmetic) bool { return fold.String(item.SeriesName()) == series })
	}
	rarity, typ := fold.String(current.Rarity.Value), fold.String(current.Type.Value)
	collect(func(item models.Cosmetic) bool {
		return fold.String(item.Rarity.Value) == rarity && fold.String(item.Type.Value) == typ
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
