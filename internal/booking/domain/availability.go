package domain

import (
	"slices"
	"sort"
)

// AvailabilityIndex answers "is this resource free over that window" for
// many resources from one batch of bookings.
type AvailabilityIndex struct {
	byResource map[ResourceRef][]Interval
}

// NewAvailabilityIndex indexes the active bookings in bookings. Cancelled
// bookings are skipped.
func NewAvailabilityIndex(bookings []*Booking) *AvailabilityIndex {
	idx := &AvailabilityIndex{byResource: make(map[ResourceRef][]Interval)}
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		idx.byResource[b.Resource()] = append(idx.byResource[b.Resource()], b.Window())
	}
	for ref, windows := range idx.byResource {
		slices.SortFunc(windows, func(a, b Interval) int { return a.Start.Compare(b.Start) })
		idx.byResource[ref] = windows
	}
	return idx
}

// IsFree reports whether no indexed booking on ref overlaps window.
//
// Active bookings of one resource never overlap each other, so sorted by
// start they are also sorted by end and the first candidate can be found by
// binary search.
func (x *AvailabilityIndex) IsFree(ref ResourceRef, window Interval) bool {
	windows := x.byResource[ref]
	i := sort.Search(len(windows), func(i int) bool { return windows[i].End.After(window.Start) })
	for ; i < len(windows) && windows[i].Start.Before(window.End); i++ {
		if windows[i].Overlaps(window) {
			return false
		}
	}
	return true
}

// Len returns the number of indexed bookings.
func (x *AvailabilityIndex) Len() int {
	n := 0
	for _, windows := range x.byResource {
		n += len(windows)
	}
	return n
}
