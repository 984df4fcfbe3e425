package http

import (
	"net/url"
	"strings"

	"moviedash/pkg/contracts/domain"
)

// Query parameter names for the selection
const (
	ParamGenre  = "genre"
	ParamRating = "rating"
)

// SelectionFromQuery reads the genre and rating parameters. Each may repeat
// or hold a comma separated list. An absent parameter selects every value; a
// parameter present with no values ("genre=") selects none.
func SelectionFromQuery(q url.Values) domain.Selection {
	return domain.Selection{
		Genres:  queryList(q, ParamGenre),
		Ratings: queryList(q, ParamRating),
	}
}

func queryList(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, v := range strings.Split(entry, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

// SelectionQuery is the inverse of SelectionFromQuery
func SelectionQuery(sel domain.Selection) url.Values {
	q := url.Values{}
	addList(q, ParamGenre, sel.Genres)
	addList(q, ParamRating, sel.Ratings)
	return q
}

func addList(q url.Values, key string, values []string) {
	switch {
	case values == nil:
	case len(values) == 0:
		q.Set(key, "")
	default:
		q[key] = append([]string(nil), values...)
	}
}
