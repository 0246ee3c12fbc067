package memory_journal_repo

import (
	"context"
	"testing"

	"reel_engine/internal/model"
)

func TestRecentNewestFirst(t *testing.T) {
	r := NewJournalRepository(3)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		if err := r.Append(ctx, model.SpinRecord{Generation: uint64(i)}); err != nil {
			t.Fatal(err)
		}
	}
	got, err := r.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint64{5, 4, 3}
	if len(got) != len(want) {
		t.Fatalf("Recent returned %d records, want %d", len(got), len(want))
	}
	for i, g := range want {
		if got[i].Generation != g {
			t.Errorf("record %d generation = %d, want %d", i, got[i].Generation, g)
		}
	}

	got, _ = r.Recent(ctx, 1)
	if len(got) != 1 || got[0].Generation != 5 {
		t.Errorf("Recent(1) = %+v", got)
	}
	got, _ = r.Recent(ctx, 0)
	if len(got) != 0 {
		t.Errorf("Recent(0) = %+v, want empty", got)
	}
}

func TestAddTotals(t *testing.T) {
	r := NewJournalRepository(0).(*repo)
	ctx := context.Background()
	_ = r.AddTotals(ctx, 50, 500)
	_ = r.AddTotals(ctx, 50, 0)
	if r.spins != 2 || r.totalBet != 100 || r.totalPayout != 500 {
		t.Errorf("totals = %d/%d/%d", r.spins, r.totalBet, r.totalPayout)
	}
	if r.capacity != defaultCapacity {
		t.Errorf("capacity = %d, want %d", r.capacity, defaultCapacity)
	}
}
