package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"daygrid/internal/entry"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testDate() time.Time {
	return time.Date(2026, 8, 23, 0, 0, 0, 0, time.Local)
}

func mustCreate(t *testing.T, s *Store, title, start, end, parentID string) *entry.Entry {
	t.Helper()
	e := &entry.Entry{
		Date:     testDate(),
		Start:    start,
		End:      end,
		ParentID: parentID,
		Title:    title,
	}
	if err := s.CreateEntry(context.Background(), e); err != nil {
		t.Fatalf("CreateEntry(%s): %v", title, err)
	}
	return e
}

func TestCreateAndGetEntry(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	e := mustCreate(t, s, "Deep work", "09:00", "10:30", "")
	if e.ID == "" {
		t.Fatal("id not assigned")
	}

	got, err := s.GetEntry(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got == nil {
		t.Fatal("entry not found")
	}
	if got.Title != "Deep work" || got.Start != "09:00" || got.End != "10:30" {
		t.Errorf("got %+v", got)
	}
	if got.Date.Format("2006-01-02") != "2026-08-23" {
		t.Errorf("date = %v", got.Date)
	}
}

func TestGetEntryMissing(t *testing.T) {
	s := testStore(t)
	got, err := s.GetEntry(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestEntriesByDateOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	mustCreate(t, s, "second", "10:00", "11:00", "")
	mustCreate(t, s, "first", "09:00", "10:00", "")
	mustCreate(t, s, "long", "09:00", "12:00", "")

	// An entry on another day must not leak in.
	other := &entry.Entry{Date: testDate().AddDate(0, 0, 1), Start: "09:00", End: "10:00", Title: "tomorrow"}
	if err := s.CreateEntry(ctx, other); err != nil {
		t.Fatal(err)
	}

	entries, err := s.EntriesByDate(ctx, testDate())
	if err != nil {
		t.Fatalf("EntriesByDate: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Title != "long" || entries[1].Title != "first" || entries[2].Title != "second" {
		t.Errorf("order: %s, %s, %s", entries[0].Title, entries[1].Title, entries[2].Title)
	}
}

func TestUpdateEntryPartial(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	e := mustCreate(t, s, "movable", "09:00", "10:00", "")

	start, end := "11:00", "12:00"
	if err := s.UpdateEntry(ctx, e.ID, Changes{Start: &start, End: &end}); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}

	got, err := s.GetEntry(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Start != "11:00" || got.End != "12:00" {
		t.Errorf("span = %s-%s", got.Start, got.End)
	}
	if got.Title != "movable" {
		t.Errorf("untouched field changed: title = %q", got.Title)
	}
}

func TestUpdateEntryNoFields(t *testing.T) {
	s := testStore(t)
	e := mustCreate(t, s, "x", "09:00", "10:00", "")

	err := s.UpdateEntry(context.Background(), e.ID, Changes{})
	if !errors.Is(err, ErrNothingToUpdate) {
		t.Errorf("err = %v, want ErrNothingToUpdate", err)
	}
}

func TestUpdateEntryMissing(t *testing.T) {
	s := testStore(t)
	start := "11:00"
	err := s.UpdateEntry(context.Background(), "nope", Changes{Start: &start})
	if !errors.Is(err, entry.ErrEntryNotFound) {
		t.Errorf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestDeleteEntryReparentsChildren(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	root := mustCreate(t, s, "root", "09:00", "17:00", "")
	mid := mustCreate(t, s, "mid", "10:00", "12:00", root.ID)
	leaf := mustCreate(t, s, "leaf", "10:30", "11:30", mid.ID)

	if err := s.DeleteEntry(ctx, mid.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}

	got, err := s.GetEntry(ctx, leaf.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ParentID != root.ID {
		t.Errorf("leaf parent = %q, want reattached to root %q", got.ParentID, root.ID)
	}
}

func TestDeleteEntryMissing(t *testing.T) {
	s := testStore(t)
	err := s.DeleteEntry(context.Background(), "nope")
	if !errors.Is(err, entry.ErrEntryNotFound) {
		t.Errorf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestLanesSaveListDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	work := entry.Lane{Name: "Work", Order: 0, Color: "#89b4fa"}
	home := entry.Lane{Name: "Home", Order: 1, Color: "#a6e3a1"}
	if err := s.SaveLane(ctx, &work); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveLane(ctx, &home); err != nil {
		t.Fatal(err)
	}
	if work.ID == "" {
		t.Fatal("lane id not assigned")
	}

	lanes, err := s.Lanes(ctx)
	if err != nil {
		t.Fatalf("Lanes: %v", err)
	}
	if len(lanes) != 2 || lanes[0].Name != "Work" || lanes[1].Name != "Home" {
		t.Errorf("lanes = %+v", lanes)
	}

	// Upsert renames in place.
	work.Name = "Office"
	if err := s.SaveLane(ctx, &work); err != nil {
		t.Fatal(err)
	}
	lanes, _ = s.Lanes(ctx)
	if len(lanes) != 2 || lanes[0].Name != "Office" {
		t.Errorf("after rename: %+v", lanes)
	}

	// Deleting a lane uncategorizes its entries.
	e := mustCreate(t, s, "meeting", "09:00", "10:00", "")
	laneID := work.ID
	if err := s.UpdateEntry(ctx, e.ID, Changes{LaneID: &laneID}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteLane(ctx, work.ID); err != nil {
		t.Fatalf("DeleteLane: %v", err)
	}
	got, _ := s.GetEntry(ctx, e.ID)
	if got.LaneID != "" {
		t.Errorf("entry lane = %q, want uncategorized", got.LaneID)
	}
}

func TestDeleteLaneMissing(t *testing.T) {
	s := testStore(t)
	err := s.DeleteLane(context.Background(), "nope")
	if !errors.Is(err, entry.ErrLaneNotFound) {
		t.Errorf("err = %v, want ErrLaneNotFound", err)
	}
}
