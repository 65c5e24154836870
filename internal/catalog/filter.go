package catalog

import (
	"sort"
	"strings"

	"github.com/go-faster/errors"
)

// SortOption selects the ordering applied after filtering.
type SortOption string

const (
	SortDefault     SortOption = "default"
	SortPriceAsc    SortOption = "price-asc"
	SortPriceDesc   SortOption = "price-desc"
	SortCaloriesAsc SortOption = "calories-asc"
)

// ErrUnknownSort is returned by ParseSortOption for unrecognized values.
var ErrUnknownSort = errors.New("unknown sort option")

// ParseSortOption validates a raw sort value. An empty string maps to
// SortDefault.
func ParseSortOption(s string) (SortOption, error) {
	switch SortOption(s) {
	case "", SortDefault:
		return SortDefault, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	case SortCaloriesAsc:
		return SortCaloriesAsc, nil
	default:
		return "", errors.Wrapf(ErrUnknownSort, "%q", s)
	}
}

// Filter holds the shopper's current search, tag and sort selections.
// The zero value matches the whole catalog in catalog order.
type Filter struct {
	// Query is lowercased once, then matched case-insensitively against the
	// English name and description and as a plain substring against the
	// Bengali name.
	Query string
	// Tags narrows results to products carrying every listed tag.
	// Empty means no tag filter.
	Tags []string
	Sort SortOption
}

// VisibleList derives the ordered product list to display for the given
// filter. It is a pure function: the catalog slice is never mutated and the
// same inputs always produce the same output. Ties under any sort preserve
// catalog order.
func VisibleList(catalog []Product, f Filter) []Product {
	query := strings.ToLower(f.Query)

	out := make([]Product, 0, len(catalog))
	for _, p := range catalog {
		if !matchesQuery(p, query) {
			continue
		}
		if !hasAllTags(p, f.Tags) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.LessThan(out[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].Price.LessThan(out[i].Price)
		})
	case SortCaloriesAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Calories < out[j].Calories
		})
	}

	return out
}

// matchesQuery reports whether p matches the already-lowercased query. The
// query is lowered once and compared against the lowered English fields but
// the raw Bengali name: Bengali script carries no case distinction, so the
// asymmetry only shows for Latin text embedded in a Bengali name.
func matchesQuery(p Product, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name.EN), lowered) ||
		strings.Contains(p.Name.BN, lowered) ||
		strings.Contains(strings.ToLower(p.Description.EN), lowered)
}

// hasAllTags reports whether every selected tag is present on the product.
func hasAllTags(p Product, selected []string) bool {
	for _, want := range selected {
		found := false
		for _, tag := range p.Tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// TagsByFrequency returns every tag used in the catalog ordered by descending
// occurrence count. Equally frequent tags keep the order of their first
// appearance across the catalog, so the filter chip row is stable between
// renders.
func TagsByFrequency(catalog []Product) []string {
	counts := make(map[string]int)
	var firstSeen []string
	for _, p := range catalog {
		for _, tag := range p.Tags {
			if _, ok := counts[tag]; !ok {
				firstSeen = append(firstSeen, tag)
			}
			counts[tag]++
		}
	}

	out := make([]string, len(firstSeen))
	copy(out, firstSeen)
	sort.SliceStable(out, func(i, j int) bool {
		return counts[out[i]] > counts[out[j]]
	})
	return out
}
