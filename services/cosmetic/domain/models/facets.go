package models

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ghuser/fnbrowser/services/cosmetic/domain"
)

// AllFacet is the sentinel facet value that disables a facet predicate.
const AllFacet = "all"

// Facets is the categorical part of a catalog query.
type Facets struct {
	Type   string `json:"type"`
	Rarity string `json:"rarity"`
	Season string `json:"season"`
}

// AllFacets returns the default selection with every facet disabled.
func AllFacets() Facets {
	return Facets{Type: AllFacet, Rarity: AllFacet, Season: AllFacet}
}

// Normalize trims each facet and replaces empty values with AllFacet.
func (f Facets) Normalize() Facets {
	norm := func(s string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			return AllFacet
		}
		return s
	}
	return Facets{Type: norm(f.Type), Rarity: norm(f.Rarity), Season: norm(f.Season)}
}

// FacetOption is one toggle in a facet group.
type FacetOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// FacetCatalog lists the toggles offered for each facet.
type FacetCatalog struct {
	Types    []FacetOption `yaml:"types" json:"types"`
	Rarities []FacetOption `yaml:"rarities" json:"rarities"`
	Seasons  []FacetOption `yaml:"seasons" json:"seasons"`
}

//go:embed facets.yaml
var facetsYAML []byte

// DefaultFacetCatalog parses the embedded facet definitions.
func DefaultFacetCatalog() (*FacetCatalog, error) {
	return ParseFacetCatalog(facetsYAML)
}

// ParseFacetCatalog decodes a facet catalog from YAML.
func ParseFacetCatalog(data []byte) (*FacetCatalog, error) {
	var fc FacetCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse facet catalog: %w", err)
	}
	return &fc, nil
}

// Validate reports ErrInvalidFacet when a (normalized) facet is not one of the offered options.
func (fc *FacetCatalog) Validate(f Facets) error {
	f = f.Normalize()
	if !hasOption(fc.Types, f.Type) {
		return fmt.Errorf("%w: type %q", domain.ErrInvalidFacet, f.Type)
	}
	if !hasOption(fc.Rarities, f.Rarity) {
		return fmt.Errorf("%w: rarity %q", domain.ErrInvalidFacet, f.Rarity)
	}
	if !hasOption(fc.Seasons, f.Season) {
		return fmt.Errorf("%w: season %q", domain.ErrInvalidFacet, f.Season)
	}
	return nil
}

func hasOption(opts []FacetOption, value string) bool {
	for _, o := range opts {
		if strings.EqualFold(o.Value, value) {
			return true
		}
	}
	return false
}
