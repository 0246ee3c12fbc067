package converter

import (
	dto "reel_engine/internal/api/dto/reel"
	"reel_engine/internal/model"

	"github.com/samber/lo"
)

func ToSnapshotResponse(s model.Snapshot) dto.SnapshotResponse {
	return dto.SnapshotResponse{
		Reels:      toReels(s.DisplayedGrid),
		Committed:  toReels(s.CommittedGrid),
		Balance:    s.Ledger.Balance,
		Bet:        s.Ledger.Bet,
		Winnings:   s.Ledger.Winnings,
		Phase:      string(s.Phase),
		Generation: s.Generation,
	}
}

func ToStatsResponse(s model.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalSpins:  s.TotalSpins,
		TotalWins:   s.TotalWins,
		TotalBet:    s.TotalBet,
		TotalPayout: s.TotalPayout,
		CurrentRTP:  s.CurrentRTP,
		WindowRTP:   s.WindowRTP,
		WindowSize:  s.WindowSize,
	}
}

func ToHistoryResponse(records []model.SpinRecord) dto.HistoryResponse {
	return dto.HistoryResponse{
		Spins: lo.Map(records, func(r model.SpinRecord, _ int) dto.SpinRecord {
			return dto.SpinRecord{
				ID:            r.ID,
				Generation:    r.Generation,
				Reels:         toReels(r.Grid),
				Bet:           r.Bet,
				Winnings:      r.Winnings,
				BalanceBefore: r.BalanceBefore,
				BalanceAfter:  r.BalanceAfter,
				RequestedAt:   r.RequestedAt,
				SettledAt:     r.SettledAt,
			}
		}),
	}
}

func toReels(g model.Grid) [model.Reels][model.Rows]string {
	var out [model.Reels][model.Rows]string
	for r := range g {
		for row := range g[r] {
			out[r][row] = string(g[r][row])
		}
	}
	return out
}
