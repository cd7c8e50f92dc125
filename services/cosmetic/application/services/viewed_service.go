package services

import (
	"context"
	"fmt"

	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/repositories"
	domainsvcs "github.com/ghuser/fnbrowser/services/cosmetic/domain/services"
)

// ViewedService remembers the cosmetics a visitor opened most recently.
type ViewedService struct {
	history repositories.HistoryStore
	query   *QueryService
}

func NewViewedService(history repositories.HistoryStore, query *QueryService) *ViewedService {
	return &ViewedService{history: history, query: query}
}

// Record puts id first in the visitor's recently viewed list. The id must
// exist in the served collection.
func (s *ViewedService) Record(ctx context.Context, visitor, id string) error {
	if _, err := s.query.Get(id); err != nil {
		return err
	}
	_, err := s.history.Update(ctx, visitor, func(list []string) []string {
		return domainsvcs.PushRecentlyViewed(list, id)
	})
	if err != nil {
		return fmt.Errorf("save recently viewed: %w", err)
	}
	return nil
}

// Recent resolves the visitor's recently viewed ids against the served
// collection. Ids no longer in the catalog are skipped.
func (s *ViewedService) Recent(ctx context.Context, visitor string) ([]models.Cosmetic, error) {
	ids, err := s.history.Recent(ctx, visitor)
	if err != nil {
		return nil, fmt.Errorf("recently viewed: %w", err)
	}
	out := make([]models.Cosmetic, 0, len(ids))
	for _, id := range ids {
		item, err := s.query.Get(id)
		if err != nil {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
