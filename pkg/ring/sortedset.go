package ring

import "sort"

// insertSortedUnique inserts h into the sorted positions slice if it
// is not already present, returning the (possibly reallocated) slice.
func insertSortedUnique(positions []uint64, h uint64) []uint64 {
	idx := sort.Search(len(positions), func(i int) bool { return positions[i] >= h })
	if idx < len(positions) && positions[idx] == h {
		return positions
	}
	positions = append(positions, 0)
	copy(positions[idx+1:], positions[idx:])
	positions[idx] = h
	return positions
}

// removeSorted removes h from the sorted positions slice if present.
func removeSorted(positions []uint64, h uint64) []uint64 {
	idx := sort.Search(len(positions), func(i int) bool { return positions[i] >= h })
	if idx < len(positions) && positions[idx] == h {
		return append(positions[:idx], positions[idx+1:]...)
	}
	return positions
}

// ceilingOrWrap returns the smallest element of the sorted positions
// slice that is >= h, wrapping to the first element if none exists.
// positions must be non-empty.
func ceilingOrWrap(positions []uint64, h uint64) uint64 {
	idx := sort.Search(len(positions), func(i int) bool { return positions[i] >= h })
	if idx == len(positions) {
		idx = 0
	}
	return positions[idx]
}
