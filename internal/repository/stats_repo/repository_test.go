package stats_repo

import (
	"math"
	"testing"

	"reel_engine/internal/model"
)

func TestRecord(t *testing.T) {
	r := NewStatsRepository(2)

	r.Record(model.SpinRecord{Bet: 50, Winnings: 500})
	r.Record(model.SpinRecord{Bet: 50})
	r.Record(model.SpinRecord{Bet: 50})

	got := r.Stats()
	if got.TotalSpins != 3 || got.TotalWins != 1 {
		t.Errorf("spins/wins = %d/%d, want 3/1", got.TotalSpins, got.TotalWins)
	}
	if got.TotalBet != 150 || got.TotalPayout != 500 {
		t.Errorf("bet/payout = %d/%d, want 150/500", got.TotalBet, got.TotalPayout)
	}
	if want := 333.33; math.Abs(got.CurrentRTP-want) > 0.01 {
		t.Errorf("CurrentRTP = %v, want %v", got.CurrentRTP, want)
	}
	// выигрышный спин вышел из окна
	if got.WindowRTP != 0 {
		t.Errorf("WindowRTP = %v, want 0", got.WindowRTP)
	}
	if got.WindowSize != 2 {
		t.Errorf("WindowSize = %d, want 2", got.WindowSize)
	}
}

func TestZeroBetRTP(t *testing.T) {
	r := NewStatsRepository(0)
	r.Record(model.SpinRecord{Bet: 0, Winnings: 0})

	got := r.Stats()
	if got.CurrentRTP != 0 || got.WindowRTP != 0 {
		t.Errorf("RTP = %v/%v, want 0/0", got.CurrentRTP, got.WindowRTP)
	}
	if got.WindowSize != defaultWindowSize {
		t.Errorf("WindowSize = %d, want %d", got.WindowSize, defaultWindowSize)
	}
}
