package services

import "github.com/ghuser/fnbrowser/services/cosmetic/domain/models"

func cosmetic(id, name, rarity, typ string) models.Cosmetic {
	return models.Cosmetic{
		ID:     id,
		Name:   name,
		Rarity: models.Tag{Value: rarity},
		Type:   models.Tag{Value: typ},
	}
}

func withSet(c models.Cosmetic, set string) models.Cosmetic {
	c.Set = &models.Tag{Value: set}
	return c
}

func withSeries(c models.Cosmetic, series string) models.Cosmetic {
	c.Series = &models.Tag{Value: series}
	return c
}

func introduced(c models.Cosmetic, text string) models.Cosmetic {
	c.Introduction = &models.Introduction{Text: text}
	return c
}

func ids(items []models.Cosmetic) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

// abc is the three-item outfit fixture: a common A, an epic B and an epic C in the Galaxy set.
func abc() []models.Cosmetic {
	return []models.Cosmetic{
		cosmetic("A", "Alpha", "common", "outfit"),
		cosmetic("B", "Bravo", "epic", "outfit"),
		withSet(cosmetic("C", "Charlie", "epic", "outfit"), "Galaxy"),
	}
}
