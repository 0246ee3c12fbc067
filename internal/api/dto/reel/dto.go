package reel

import "time"

type SpinResponse struct {
	Generation uint64 `json:"generation"` // Поколение запущенного спина
}

type BetRequest struct {
	Bet int `json:"bet"` // Ставка на следующий спин (>= 0)
}

type SnapshotResponse struct {
	Reels      [3][3]string `json:"reels"`      // Показанное поле, барабан x строка
	Committed  [3][3]string `json:"committed"`  // Зафиксированное поле
	Balance    int          `json:"balance"`    // Баланс
	Bet        int          `json:"bet"`        // Текущая ставка
	Winnings   int          `json:"winnings"`   // Выигрыш последнего спина
	Phase      string       `json:"phase"`      // idle, fast_churn, slow_churn, settled
	Generation uint64       `json:"generation"` // Поколение последнего спина
}

type StatsResponse struct {
	TotalSpins  int     `json:"total_spins"`
	TotalWins   int     `json:"total_wins"`
	TotalBet    int     `json:"total_bet"`
	TotalPayout int     `json:"total_payout"`
	CurrentRTP  float64 `json:"current_rtp"` // RTP за всё время, %
	WindowRTP   float64 `json:"window_rtp"`  // RTP последних window_size спинов, %
	WindowSize  int     `json:"window_size"`
}

type SpinRecord struct {
	ID            string       `json:"id"`
	Generation    uint64       `json:"generation"`
	Reels         [3][3]string `json:"reels"`
	Bet           int          `json:"bet"`
	Winnings      int          `json:"winnings"`
	BalanceBefore int          `json:"balance_before"`
	BalanceAfter  int          `json:"balance_after"`
	RequestedAt   time.Time    `json:"requested_at"`
	SettledAt     time.Time    `json:"settled_at"`
}

type HistoryResponse struct {
	Spins []SpinRecord `json:"spins"`
}
