// Package layout packs a day's entries into non-overlapping display columns
// and allocates horizontal bands across the parent/child nesting hierarchy.
package layout

import "sort"

// Span is one sibling interval handed to the packer, in logical-day minutes.
// Start == End is a milestone: an instantaneous point that still collides
// with anything covering that instant.
type Span struct {
	ID    string
	Start int
	End   int
}

// effEnd is the end used for collision purposes. Milestones occupy one
// minute so they cluster with intervals covering their instant and with
// other milestones at the same instant.
func (s Span) effEnd() int {
	if s.End > s.Start {
		return s.End
	}
	return s.Start + 1
}

// Placement assigns a span to one of the equal-width columns of its
// overlap cluster.
type Placement struct {
	ID          string
	ColumnIndex int
	ColumnCount int
}

// LeftPct returns the column's left edge as a percentage of the band.
func (p Placement) LeftPct() float64 {
	if p.ColumnCount == 0 {
		return 0
	}
	return float64(p.ColumnIndex) / float64(p.ColumnCount) * 100
}

// WidthPct returns the column width as a percentage of the band.
func (p Placement) WidthPct() float64 {
	if p.ColumnCount == 0 {
		return 100
	}
	return 100 / float64(p.ColumnCount)
}

// Pack groups sibling spans into overlap clusters and assigns each span to
// the narrowest set of equal-width columns such that no two spans sharing a
// column overlap in time. The result is deterministic for equal inputs and
// is returned in input order.
//
// Within a cluster, columns are assigned greedy first-fit by end time, which
// yields the minimum column count for interval graphs.
func Pack(spans []Span) []Placement {
	if len(spans) == 0 {
		return nil
	}

	// Sort by start ascending; longer spans first on ties so a long span
	// anchors its cluster before shorter ones are placed. Final id tiebreak
	// keeps the order replayable.
	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := spans[order[a]], spans[order[b]]
		if sa.Start != sb.Start {
			return sa.Start < sb.Start
		}
		if sa.End != sb.End {
			return sa.End > sb.End
		}
		return sa.ID < sb.ID
	})

	placements := make([]Placement, len(spans))

	// Scan sorted spans, cutting a new cluster whenever a span starts at or
	// after the running watermark: clusters connect transitive overlaps only.
	clusterFirst := 0
	watermark := spans[order[0]].effEnd()
	for i := 1; i <= len(order); i++ {
		if i < len(order) && spans[order[i]].Start < watermark {
			if e := spans[order[i]].effEnd(); e > watermark {
				watermark = e
			}
			continue
		}
		packCluster(spans, order[clusterFirst:i], placements)
		if i < len(order) {
			clusterFirst = i
			watermark = spans[order[i]].effEnd()
		}
	}

	return placements
}

// packCluster assigns columns within one cluster by greedy first-fit:
// each span goes into the first column whose last span ends at or before
// the new span's start.
func packCluster(spans []Span, cluster []int, placements []Placement) {
	var colEnds []int
	colOf := make([]int, len(cluster))

	for ci, idx := range cluster {
		s := spans[idx]
		placed := false
		for col, end := range colEnds {
			if end <= s.Start {
				colEnds[col] = s.effEnd()
				colOf[ci] = col
				placed = true
				break
			}
		}
		if !placed {
			colEnds = append(colEnds, s.effEnd())
			colOf[ci] = len(colEnds) - 1
		}
	}

	count := len(colEnds)
	for ci, idx := range cluster {
		placements[idx] = Placement{
			ID:          spans[idx].ID,
			ColumnIndex: colOf[ci],
			ColumnCount: count,
		}
	}
}
