package services

import "strings"

const (
	// MaxRecentSearches is how many distinct search strings are remembered.
	MaxRecentSearches = 5
	// MaxRecentlyViewed is how many cosmetic ids are remembered as recently viewed.
	MaxRecentlyViewed = 10
)

// PushRecentSearch puts query first, drops any earlier copy and keeps at most
// MaxRecentSearches entries. Blank queries leave the list unchanged.
func PushRecentSearch(list []string, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return list
	}
	return pushFront(list, query, MaxRecentSearches)
}

// PushRecentlyViewed puts id first, distinct, keeping at most MaxRecentlyViewed ids.
func PushRecentlyViewed(list []string, id string) []string {
	if id == "" {
		return list
	}
	return pushFront(list, id, MaxRecentlyViewed)
}

// RemoveRecent drops every copy of v from list.
func RemoveRecent(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

func pushFront[T comparable](list []T, v T, limit int) []T {
	out := make([]T, 0, limit)
	out = append(out, v)
	for _, item := range list {
		if len(out) == limit {
			break
		}
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
