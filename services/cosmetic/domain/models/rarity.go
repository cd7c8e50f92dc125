package models

import "strings"

var rarityLabels = map[string]string{
	"common":        "Common",
	"uncommon":      "Uncommon",
	"rare":          "Rare",
	"epic":          "Epic",
	"legendary":     "Legendary",
	"mythic":        "Mythic",
	"gaminglegends": "Gaming Legends",
	"marvel":        "Marvel Series",
	"starwars":      "Star Wars Series",
	"dc":            "DC Series",
	"dark":          "Dark Series",
	"frozen":        "Frozen Series",
	"lava":          "Lava Series",
	"shadow":        "Shadow Series",
	"icon":          "Icon Series",
}

// RarityLabel returns the display label for a rarity tag. Unknown tags are returned unchanged.
func RarityLabel(rarity string) string {
	if label, ok := rarityLabels[strings.ToLower(rarity)]; ok {
		return label
	}
	return rarity
}
