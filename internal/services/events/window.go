package eventsvc

import "sort"

// Locate narrows a sorted slice of block timestamps to the index range
// [lo, hi] covered by the inclusive window [start, end].
//
// The lower bound is found by binary search on start; when no block carries
// exactly that timestamp, the next present one up to end stands in for it.
// The upper bound descends from end symmetrically. Each bound then widens to
// the first/last index sharing its timestamp, since multiple events can land
// in the same block. ok is false when no timestamp falls inside the window.
func Locate(ts []int64, start, end int64) (lo, hi int, ok bool) {
	if len(ts) == 0 || start > end {
		return 0, 0, false
	}

	// First index with ts >= start; the probe walks start, start+1, ... and
	// lands on the nearest present second.
	lo = sort.Search(len(ts), func(i int) bool { return ts[i] >= start })
	if lo == len(ts) || ts[lo] > end {
		return 0, 0, false
	}

	// Last index with ts <= end, descending end, end-1, ...
	hi = sort.Search(len(ts), func(i int) bool { return ts[i] > end }) - 1
	if hi < 0 || ts[hi] < start {
		return 0, 0, false
	}

	// Widen both bounds across duplicate block timestamps.
	for lo > 0 && ts[lo-1] == ts[lo] {
		lo--
	}
	for hi < len(ts)-1 && ts[hi+1] == ts[hi] {
		hi++
	}
	return lo, hi, true
}
