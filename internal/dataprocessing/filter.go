package dataprocessing

import (
	"moviedash/pkg/contracts/domain"
)

// Filter returns the rows whose genre AND rating are both selected, in their
// original order. A nil selection slice means every value; an empty non-nil
// slice means none, so the result is empty.
func Filter(records []domain.MovieRecord, sel domain.Selection) []domain.MovieRecord {
	genres := toSet(sel.Genres)
	ratings := toSet(sel.Ratings)

	out := make([]domain.MovieRecord, 0, len(records))
	for _, r := range records {
		if genres != nil && !genres[r.Genre] {
			continue
		}
		if ratings != nil && !ratings[r.Rating] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// toSet builds a lookup set; nil input stays nil to signal "no restriction".
func toSet(values []string) map[string]bool {
	if values == nil {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// DistinctGenres lists genres in order of first appearance.
func DistinctGenres(records []domain.MovieRecord) []string {
	return distinct(records, func(r domain.MovieRecord) string { return r.Genre })
}

// DistinctRatings lists non-missing ratings in order of first appearance.
func DistinctRatings(records []domain.MovieRecord) []string {
	return distinct(records, func(r domain.MovieRecord) string { return r.Rating })
}

func distinct(records []domain.MovieRecord, key func(domain.MovieRecord) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, r := range records {
		k := key(r)
		if IsMissing(k) || seen[k] {
			continue
		}
		seen[k] = true
		values = append(values, k)
	}
	return values
}
