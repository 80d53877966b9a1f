package search

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"museum-map-api/internal/models"
)

// Order selects ascending or descending event date ordering.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Valid reports whether the order is one of the two accepted values.
func (o Order) Valid() bool { return o == OrderAsc || o == OrderDesc }

// ByPrefecture returns a new slice ordered by prefecture rank, with ties
// broken by Japanese collation of the kana name. Records whose prefecture is
// not in the table compare by Japanese collation of the prefecture string
// itself, interleaving with ranked records rather than sorting to one end.
// The input is never mutated.
func ByPrefecture(list []models.Museum) []models.Museum {
	out := make([]models.Museum, len(list))
	copy(out, list)

	c := collate.New(language.Japanese)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		rankA, okA := PrefectureRank(a.Prefecture)
		rankB, okB := PrefectureRank(b.Prefecture)
		if okA && okB {
			if rankA == rankB {
				return c.CompareString(a.NameKana, b.NameKana) < 0
			}
			return rankA < rankB
		}
		return c.CompareString(a.Prefecture, b.Prefecture) < 0
	})
	return out
}

// EventsByDate returns a new slice ordered by start date. The sort is stable,
// so events sharing a date keep their relative order. Any order value other
// than OrderDesc sorts ascending.
func EventsByDate(list []models.Event, order Order) []models.Event {
	out := make([]models.Event, len(list))
	copy(out, list)

	sort.SliceStable(out, func(i, j int) bool {
		if order == OrderDesc {
			return out[j].StartDate.Before(out[i].StartDate)
		}
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}
