// Package scalar implements the sequential ordered-search primitives that all
// batched dispatch ultimately lowers to.
//
// Every function operates on a single sorted slice with a strict weak ordering
// predicate. Sortedness is a precondition, not checked: searching a slice that
// is not non-decreasing under less yields unspecified positions.
package scalar

// LowerBound returns the first index in [0, len(data)] at which value could be
// inserted without violating the order defined by less. Equivalently, it is
// the index of the first element that is not ordered before value, or
// len(data) if no such element exists.
func LowerBound[T any](data []T, value T, less func(a, b T) bool) int {
	lo, hi := 0, len(data)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if less(data[mid], value) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// UpperBound returns the last index in [0, len(data)] at which value could be
// inserted without violating the order defined by less. Every element before
// the returned index is ordered before or equivalent to value; every element
// at or after it is ordered after value.
func UpperBound[T any](data []T, value T, less func(a, b T) bool) int {
	lo, hi := 0, len(data)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if less(value, data[mid]) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// Contains reports whether data holds an element equivalent to value under
// less, i.e. an element that neither precedes nor follows value.
func Contains[T any](data []T, value T, less func(a, b T) bool) bool {
	i := LowerBound(data, value, less)
	return i < len(data) && !less(value, data[i])
}
