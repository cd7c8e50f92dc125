package models

// PlaceholderImage is served when a cosmetic carries neither a featured nor an icon image.
const PlaceholderImage = "/placeholder.png"

// Tag is a categorical value as the cosmetics API encodes it ({"value": "..."}).
type Tag struct {
	Value        string `json:"value"`
	DisplayValue string `json:"displayValue,omitempty"`
}

// Images holds display image references. Featured is preferred over Icon.
type Images struct {
	Icon      string `json:"icon"`
	SmallIcon string `json:"smallIcon,omitempty"`
	Featured  string `json:"featured,omitempty"`
}

// Introduction describes when a cosmetic was released, e.g. "Introduced in Chapter 2, Season 4.".
type Introduction struct {
	Chapter string `json:"chapter,omitempty"`
	Season  string `json:"season,omitempty"`
	Text    string `json:"text"`
}

// Cosmetic is a catalog item as returned by the cosmetics API. It is never
// mutated after decoding; every optional field has a nil-safe accessor.
type Cosmetic struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Rarity       Tag           `json:"rarity"`
	Type         Tag           `json:"type"`
	Images       Images        `json:"images"`
	Introduction *Introduction `json:"introduction,omitempty"`
	Set          *Tag          `json:"set,omitempty"`
	Series       *Tag          `json:"series,omitempty"`
}

// ImageURL returns the featured image, falling back to the icon and then the placeholder.
func (c Cosmetic) ImageURL() string {
	switch {
	case c.Images.Featured != "":
		return c.Images.Featured
	case c.Images.Icon != "":
		return c.Images.Icon
	default:
		return PlaceholderImage
	}
}

// IntroductionText returns the release text or "" when absent.
func (c Cosmetic) IntroductionText() string {
	if c.Introduction == nil {
		return ""
	}
	return c.Introduction.Text
}

// SetName returns the set tag or "" when absent.
func (c Cosmetic) SetName() string {
	if c.Set == nil {
		return ""
	}
	return c.Set.Value
}

// SeriesName returns the series tag or "" when absent.
func (c Cosmetic) SeriesName() string {
	if c.Series == nil {
		return ""
	}
	return c.Series.Value
}
