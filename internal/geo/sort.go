package geo

import (
	"cmp"
	"delivery-driver-service/internal/domain"
	"slices"
)

// Locatable is anything that can be placed on the map.
type Locatable interface {
	Position() domain.Coordinates
}

// SortByDistance returns items ordered nearest-first from reference.
//
// With a nil reference or no items the input is returned as is. Otherwise a
// new slice is returned and items is left untouched. Equal distances keep
// their input order.
func SortByDistance[T Locatable](items []T, reference *domain.Coordinates) []T {
	return SortWith(defaultCalculator, items, reference)
}

// SortWith is SortByDistance on the sphere described by c.
func SortWith[T Locatable](c *Calculator, items []T, reference *domain.Coordinates) []T {
	if reference == nil || len(items) == 0 {
		return items
	}

	return permute(items, sortedPermutation(c, items, *reference))
}

// sortedPermutation computes each distance once rather than per comparison.
func sortedPermutation[T Locatable](c *Calculator, items []T, reference domain.Coordinates) []int {
	meters := make([]float64, len(items))
	perm := make([]int, len(items))
	for i, it := range items {
		meters[i] = c.Distance(reference, it.Position())
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		return cmp.Compare(meters[a], meters[b])
	})
	return perm
}

func permute[T any](items []T, perm []int) []T {
	out := make([]T, len(perm))
	for i, j := range perm {
		out[i] = items[j]
	}
	return out
}
