package stonks

import (
	"fmt"
	"iter"
	"slices"
)

// Range represents an inclusive range of dates.
// A zero End means the range is still open (ongoing as of now).
type Range struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// NewRange creates a new closed date range. If 'start' is after 'end', they are swapped.
func NewRange(start, end Date) Range {
	if start.After(end) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// IsOpen reports whether the range has no end yet.
func (r Range) IsOpen() bool { return r.End.IsZero() }

// Contains return true if date is included in the range (boundaries included).
// An open range contains every date from Start on.
func (r Range) Contains(date Date) bool {
	return !date.Before(r.Start) && (r.IsOpen() || !date.After(r.End))
}

// DayCount returns the number of calendar days in a closed range, boundaries included.
func (r Range) DayCount() int { return DaysBetween(r.Start, r.End) + 1 }

// Days returns an iterator that yields each date within a closed range, inclusive.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.Start; !d.After(r.End); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

func (r Range) String() string {
	if r.IsOpen() {
		return fmt.Sprintf("[%s, ...]", r.Start)
	}
	return fmt.Sprintf("[%s, %s]", r.Start, r.End)
}

// Ranges is an ordered list of date ranges, sorted ascending by start and,
// except transiently during construction, non-overlapping. The algebra below
// operates on closed ranges; an open end must be resolved (see Resolve) first.
type Ranges []Range

// Resolve returns a copy of the ranges with any open end replaced by 'end'.
func (rs Ranges) Resolve(end Date) Ranges {
	resolved := slices.Clone(rs)
	for i, r := range resolved {
		if r.IsOpen() {
			resolved[i].End = end
		}
	}
	return resolved
}

// Compact merges consecutive ranges separated by at most maxGap days.
// The result never has more ranges than the input, and every output range
// covers the input ranges it was merged from. Tolerating small gaps keeps the
// number of price fetch requests down.
func (rs Ranges) Compact(maxGap int) Ranges {
	if len(rs) == 0 {
		return rs
	}
	compacted := make(Ranges, 0, len(rs))
	compacted = append(compacted, rs[0])
	for _, r := range rs[1:] {
		last := &compacted[len(compacted)-1]
		if DaysBetween(last.End, r.Start) <= maxGap {
			last.End = r.End
		} else {
			compacted = append(compacted, r)
		}
	}
	return compacted
}

// Equal reports whether both lists hold the same ranges in the same order.
func (rs Ranges) Equal(other Ranges) bool { return slices.Equal(rs, other) }

// rangeEvent is one endpoint of a range in the Union sweep.
type rangeEvent struct {
	on    Date
	start bool
}

// Union combines two sorted range lists into a single sorted, disjoint list.
// Every endpoint becomes an event; a sweep over the events keeps an
// open-interval depth counter: a merged range opens on a 0->1 transition and
// closes on 1->0. A range starting on, or exactly one day after, the previous
// merged range's end coalesces with it.
func Union(a, b Ranges) Ranges {
	events := make([]rangeEvent, 0, 2*(len(a)+len(b)))
	for _, r := range append(slices.Clone(a), b...) {
		events = append(events,
			rangeEvent{on: r.Start, start: true},
			rangeEvent{on: r.End, start: false},
		)
	}
	slices.SortFunc(events, func(x, y rangeEvent) int {
		if d := DaysBetween(y.on, x.on); d != 0 {
			return d
		}
		// Starts sort before ends on the same day so touching ranges
		// keep the depth counter from closing early.
		switch {
		case x.start == y.start:
			return 0
		case x.start:
			return -1
		default:
			return 1
		}
	})

	var merged Ranges
	depth := 0
	for _, e := range events {
		if e.start {
			depth++
			if depth == 1 {
				if len(merged) > 0 {
					last := merged[len(merged)-1].End
					if e.on == last || e.on == last.Add(1) {
						continue // touching: extend the previous merged range
					}
				}
				merged = append(merged, Range{Start: e.on})
			}
		} else {
			depth--
			if depth == 0 {
				merged[len(merged)-1].End = e.on
			}
		}
	}
	return merged
}

// ToFetch returns the subset of 'wanted' not yet covered by 'saved'.
// Both lists must be sorted and disjoint. A wanted range straddling a saved
// range is split into the uncovered pieces. The result is a subset of wanted,
// and Union(saved, ToFetch(saved, wanted)) covers wanted.
func ToFetch(saved, wanted Ranges) Ranges {
	var missing Ranges
	j := 0
	for _, w := range wanted {
		cur := w
		for {
			for j < len(saved) && saved[j].End.Before(cur.Start) {
				j++
			}
			if j == len(saved) || saved[j].Start.After(cur.End) {
				// No saved range overlaps what is left of this wanted range.
				missing = append(missing, cur)
				break
			}
			s := saved[j]
			if s.Start.After(cur.Start) {
				missing = append(missing, Range{Start: cur.Start, End: s.Start.Add(-1)})
			}
			if s.End.Before(cur.End) {
				// Keep looking for cover of the piece after the saved range.
				cur.Start = s.End.Add(1)
				continue
			}
			break // fully covered
		}
	}
	return missing
}
