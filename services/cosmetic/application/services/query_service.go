package services

import (
	"fmt"

	cosmeticdomain "github.com/ghuser/fnbrowser/services/cosmetic/domain"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	domainsvcs "github.com/ghuser/fnbrowser/services/cosmetic/domain/services"
)

// Page is one displayed window of a filtered view.
type Page struct {
	Items    []models.Cosmetic `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Total    int               `json:"total"`
	HasMore  bool              `json:"has_more"`
}

// Detail is everything a detail view shows for one cosmetic.
type Detail struct {
	Cosmetic    models.Cosmetic   `json:"cosmetic"`
	ImageURL    string            `json:"image_url"`
	RarityLabel string            `json:"rarity_label"`
	Related     []models.Cosmetic `json:"related"`
}

// QueryService answers read queries against the served collection.
type QueryService struct {
	catalog *CatalogService
	facets  *models.FacetCatalog
}

// NewQueryService returns a QueryService validating facets against facets.
func NewQueryService(catalog *CatalogService, facets *models.FacetCatalog) *QueryService {
	return &QueryService{catalog: catalog, facets: facets}
}

// Facets returns the offered facet toggles.
func (q *QueryService) Facets() *models.FacetCatalog {
	return q.facets
}

// Search filters the collection and returns the window advanced to page.
func (q *QueryService) Search(query string, f models.Facets, page, pageSize int) (*Page, error) {
	if err := q.facets.Validate(f); err != nil {
		return nil, err
	}
	view, err := q.View(query, f)
	if err != nil {
		return nil, err
	}
	w := domainsvcs.WindowAt(view, page, pageSize)
	return &Page{
		Items:    w.Items(),
		Page:     w.Page(),
		PageSize: w.PageSize(),
		Total:    w.Total(),
		HasMore:  w.HasMore(),
	}, nil
}

// View returns the full filtered view without facet validation.
func (q *QueryService) View(query string, f models.Facets) ([]models.Cosmetic, error) {
	c, err := q.catalog.Collection()
	if err != nil {
		return nil, err
	}
	return domainsvcs.Filter(c, query, f), nil
}

// Get returns one cosmetic by id.
func (q *QueryService) Get(id string) (models.Cosmetic, error) {
	c, err := q.catalog.Collection()
	if err != nil {
		return models.Cosmetic{}, err
	}
	item, ok := c.Find(id)
	if !ok {
		return models.Cosmetic{}, fmt.Errorf("%w: %s", cosmeticdomain.ErrCosmeticNotFound, id)
	}
	return item, nil
}

// Related returns up to limit cosmetics related to id.
func (q *QueryService) Related(id string, limit int) ([]models.Cosmetic, error) {
	c, err := q.catalog.Collection()
	if err != nil {
		return nil, err
	}
	item, ok := c.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", cosmeticdomain.ErrCosmeticNotFound, id)
	}
	return domainsvcs.Related(item, c.Items(), limit), nil
}

// Detail builds the detail view for id.
func (q *QueryService) Detail(id string) (*Detail, error) {
	item, err := q.Get(id)
	if err != nil {
		return nil, err
	}
	related, err := q.Related(id, domainsvcs.DefaultRelatedLimit)
	if err != nil {
		return nil, err
	}
	return DetailOf(item, related), nil
}

// DetailOf assembles a Detail from an item and its related items.
func DetailOf(item models.Cosmetic, related []models.Cosmetic) *Detail {
	if related == nil {
		related = []models.Cosmetic{}
	}
	return &Detail{
		Cosmetic:    item,
		ImageURL:    item.ImageURL(),
		RarityLabel: models.RarityLabel(item.Rarity.Value),
		Related:     related,
	}
}
