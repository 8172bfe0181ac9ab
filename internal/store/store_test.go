package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsertAndGetSnapshot(t *testing.T) {
	s := newTestStore(t)

	rec := &SnapshotRecord{
		Version:   "2.4.9.0",
		CreatedAt: time.Now().Truncate(time.Second),
		Reason:    "manual save",
		Degraded:  false,
		PCSource:  "/usr/local/lib/pkgconfig/opencv.pc",
		LibFiles:  42,
	}
	if err := s.UpsertSnapshot(rec); err != nil {
		t.Fatalf("UpsertSnapshot failed: %v", err)
	}

	got, err := s.GetSnapshot("2.4.9.0")
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected a record")
	}
	if got.Reason != "manual save" || got.LibFiles != 42 || got.PCSource != rec.PCSource {
		t.Errorf("Record round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("Expected created_at %v, got %v", rec.CreatedAt, got.CreatedAt)
	}
}

func TestGetSnapshotMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetSnapshot("9.9.9")
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing record, got %+v", got)
	}
}

func TestUpsertSnapshotReplaces(t *testing.T) {
	s := newTestStore(t)

	first := &SnapshotRecord{
		Version:   "2.4.9.0",
		CreatedAt: time.Now().Add(-time.Hour),
		Reason:    "pre-switch save",
		Degraded:  true,
	}
	if err := s.UpsertSnapshot(first); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}

	second := &SnapshotRecord{
		Version:   "2.4.9.0",
		CreatedAt: time.Now(),
		Reason:    "manual save",
		Degraded:  false,
		LibFiles:  7,
	}
	if err := s.UpsertSnapshot(second); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	records, err := s.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected one record after replace, got %d", len(records))
	}
	if records[0].Reason != "manual save" || records[0].Degraded {
		t.Errorf("Expected the replacement record, got %+v", records[0])
	}
}

func TestListSnapshotsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	base := time.Now().Truncate(time.Second)
	for i, v := range []string{"1.0.0", "2.4.9.0", "3.0.0"} {
		rec := &SnapshotRecord{
			Version:   v,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Reason:    "test",
		}
		if err := s.UpsertSnapshot(rec); err != nil {
			t.Fatalf("UpsertSnapshot failed: %v", err)
		}
	}

	records, err := s.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0].Version != "3.0.0" || records[2].Version != "1.0.0" {
		t.Errorf("Expected newest first ordering, got %s, %s, %s",
			records[0].Version, records[1].Version, records[2].Version)
	}
}

func TestEventJournal(t *testing.T) {
	s := newTestStore(t)

	events := []*Event{
		{Action: ActionSave, ToVersion: "3.0.0"},
		{Action: ActionSwitch, FromVersion: "3.0.0", ToVersion: "2.4.9.0"},
		{Action: ActionExternalChange, Detail: "/usr/local/include/opencv2/core.hpp"},
	}
	for _, ev := range events {
		if err := s.InsertEvent(ev); err != nil {
			t.Fatalf("InsertEvent failed: %v", err)
		}
	}

	got, err := s.ListEvents(10)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(got))
	}
	if got[0].Action != ActionExternalChange {
		t.Errorf("Expected newest first, got %s", got[0].Action)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("Expected timestamp to be filled in on insert")
	}

	limited, err := s.ListEvents(2)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected limit to apply, got %d events", len(limited))
	}
}

func TestLastSwitchEvent(t *testing.T) {
	s := newTestStore(t)

	t.Run("Empty", func(t *testing.T) {
		ev, err := s.LastSwitchEvent()
		if err != nil {
			t.Fatalf("LastSwitchEvent failed: %v", err)
		}
		if ev != nil {
			t.Errorf("Expected nil on empty journal, got %+v", ev)
		}
	})

	t.Run("SkipsNonSwitchActions", func(t *testing.T) {
		if err := s.InsertEvent(&Event{Action: ActionSwitch, FromVersion: "3.0.0", ToVersion: "2.4.9.0"}); err != nil {
			t.Fatalf("InsertEvent failed: %v", err)
		}
		if err := s.InsertEvent(&Event{Action: ActionSave, ToVersion: "2.4.9.0"}); err != nil {
			t.Fatalf("InsertEvent failed: %v", err)
		}
		if err := s.InsertEvent(&Event{Action: ActionExternalChange, Detail: "headers changed"}); err != nil {
			t.Fatalf("InsertEvent failed: %v", err)
		}

		ev, err := s.LastSwitchEvent()
		if err != nil {
			t.Fatalf("LastSwitchEvent failed: %v", err)
		}
		if ev == nil || ev.Action != ActionSwitch || ev.FromVersion != "3.0.0" {
			t.Errorf("Expected the switch entry, got %+v", ev)
		}
	})

	t.Run("UndoCounts", func(t *testing.T) {
		// Undoing an undo bounces back rather than replaying the older
		// switch.
		if err := s.InsertEvent(&Event{Action: ActionUndo, FromVersion: "2.4.9.0", ToVersion: "3.0.0"}); err != nil {
			t.Fatalf("InsertEvent failed: %v", err)
		}

		ev, err := s.LastSwitchEvent()
		if err != nil {
			t.Fatalf("LastSwitchEvent failed: %v", err)
		}
		if ev == nil || ev.Action != ActionUndo || ev.FromVersion != "2.4.9.0" {
			t.Errorf("Expected the undo entry, got %+v", ev)
		}
	})
}
