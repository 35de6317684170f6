package layout

import (
	"reflect"
	"testing"
)

func mins(h, m int) int { return h*60 + m }

func placementByID(placements []Placement) map[string]Placement {
	byID := make(map[string]Placement, len(placements))
	for _, p := range placements {
		byID[p.ID] = p
	}
	return byID
}

func TestPackTwoOverlappingOneApart(t *testing.T) {
	// A 09:00-10:00 and B 09:30-11:00 overlap; C 12:00-13:00 stands alone.
	placements := Pack([]Span{
		{ID: "A", Start: mins(9, 0), End: mins(10, 0)},
		{ID: "B", Start: mins(9, 30), End: mins(11, 0)},
		{ID: "C", Start: mins(12, 0), End: mins(13, 0)},
	})
	byID := placementByID(placements)

	if byID["A"].ColumnCount != 2 || byID["B"].ColumnCount != 2 {
		t.Errorf("A and B should split a 2-column cluster, got A=%d B=%d",
			byID["A"].ColumnCount, byID["B"].ColumnCount)
	}
	if byID["A"].ColumnIndex == byID["B"].ColumnIndex {
		t.Errorf("A and B share column %d", byID["A"].ColumnIndex)
	}
	if byID["C"].ColumnCount != 1 || byID["C"].ColumnIndex != 0 {
		t.Errorf("C should be alone full-width, got index=%d count=%d",
			byID["C"].ColumnIndex, byID["C"].ColumnCount)
	}
	if w := byID["A"].WidthPct(); w != 50 {
		t.Errorf("A width = %f%%, want 50%%", w)
	}
	if w := byID["C"].WidthPct(); w != 100 {
		t.Errorf("C width = %f%%, want 100%%", w)
	}
}

func TestPackBoundaryTouchDoesNotOverlap(t *testing.T) {
	// Back-to-back entries share a boundary instant but not a cluster.
	placements := Pack([]Span{
		{ID: "A", Start: mins(9, 0), End: mins(10, 0)},
		{ID: "B", Start: mins(10, 0), End: mins(11, 0)},
	})
	for _, p := range placements {
		if p.ColumnCount != 1 {
			t.Errorf("%s: ColumnCount = %d, want 1", p.ID, p.ColumnCount)
		}
	}
}

func TestPackColumnReuse(t *testing.T) {
	// C starts after A ends, so it can reuse A's column even though all
	// three are one transitive cluster through B.
	placements := Pack([]Span{
		{ID: "A", Start: mins(9, 0), End: mins(10, 0)},
		{ID: "B", Start: mins(9, 30), End: mins(11, 0)},
		{ID: "C", Start: mins(10, 0), End: mins(11, 0)},
	})
	byID := placementByID(placements)

	for _, id := range []string{"A", "B", "C"} {
		if byID[id].ColumnCount != 2 {
			t.Errorf("%s: ColumnCount = %d, want 2", id, byID[id].ColumnCount)
		}
	}
	if byID["A"].ColumnIndex != byID["C"].ColumnIndex {
		t.Errorf("C should reuse A's column: A=%d C=%d",
			byID["A"].ColumnIndex, byID["C"].ColumnIndex)
	}
}

func TestPackNoColumnSharesOverlap(t *testing.T) {
	spans := []Span{
		{ID: "a", Start: mins(8, 0), End: mins(12, 0)},
		{ID: "b", Start: mins(8, 30), End: mins(9, 30)},
		{ID: "c", Start: mins(9, 0), End: mins(10, 0)},
		{ID: "d", Start: mins(9, 45), End: mins(11, 0)},
		{ID: "e", Start: mins(11, 0), End: mins(12, 0)},
		{ID: "f", Start: mins(13, 0), End: mins(14, 0)},
	}
	placements := Pack(spans)
	byID := placementByID(placements)

	for i, a := range spans {
		for _, b := range spans[i+1:] {
			overlap := a.Start < b.effEnd() && b.Start < a.effEnd()
			sameCol := byID[a.ID].ColumnIndex == byID[b.ID].ColumnIndex &&
				byID[a.ID].ColumnCount == byID[b.ID].ColumnCount
			if overlap && sameCol {
				t.Errorf("%s and %s overlap but share column %d", a.ID, b.ID, byID[a.ID].ColumnIndex)
			}
		}
	}
}

func TestPackMinimalColumns(t *testing.T) {
	// Maximum simultaneous occupancy is 3 at 09:45; the packer must not
	// use more columns than that.
	placements := Pack([]Span{
		{ID: "a", Start: mins(9, 0), End: mins(10, 0)},
		{ID: "b", Start: mins(9, 30), End: mins(10, 30)},
		{ID: "c", Start: mins(9, 45), End: mins(11, 0)},
		{ID: "d", Start: mins(10, 0), End: mins(11, 0)},
	})
	for _, p := range placements {
		if p.ColumnCount != 3 {
			t.Errorf("%s: ColumnCount = %d, want 3", p.ID, p.ColumnCount)
		}
	}
}

func TestPackMilestones(t *testing.T) {
	// Two milestones at the same instant must cluster together in distinct
	// columns; a milestone on an entry boundary joins the entry it starts
	// inside of, not the one that just ended.
	placements := Pack([]Span{
		{ID: "m1", Start: mins(10, 0), End: mins(10, 0)},
		{ID: "m2", Start: mins(10, 0), End: mins(10, 0)},
		{ID: "before", Start: mins(9, 0), End: mins(10, 0)},
	})
	byID := placementByID(placements)

	if byID["m1"].ColumnCount != 2 || byID["m2"].ColumnCount != 2 {
		t.Errorf("same-instant milestones should form a 2-column cluster, got m1=%d m2=%d",
			byID["m1"].ColumnCount, byID["m2"].ColumnCount)
	}
	if byID["m1"].ColumnIndex == byID["m2"].ColumnIndex {
		t.Error("same-instant milestones share a column")
	}
	if byID["before"].ColumnCount != 1 {
		t.Errorf("entry ending at the milestone instant should not join the cluster, got count=%d",
			byID["before"].ColumnCount)
	}
}

func TestPackDeterministic(t *testing.T) {
	spans := []Span{
		{ID: "x", Start: mins(9, 0), End: mins(10, 0)},
		{ID: "y", Start: mins(9, 0), End: mins(10, 0)},
		{ID: "z", Start: mins(9, 30), End: mins(11, 0)},
	}
	first := Pack(spans)
	for i := 0; i < 10; i++ {
		if got := Pack(spans); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestPackResultInInputOrder(t *testing.T) {
	spans := []Span{
		{ID: "late", Start: mins(12, 0), End: mins(13, 0)},
		{ID: "early", Start: mins(9, 0), End: mins(10, 0)},
	}
	placements := Pack(spans)
	if placements[0].ID != "late" || placements[1].ID != "early" {
		t.Errorf("placements reordered: %v", placements)
	}
}

func TestPackEmpty(t *testing.T) {
	if got := Pack(nil); got != nil {
		t.Errorf("Pack(nil) = %v, want nil", got)
	}
}
