package model

import "time"

const (
	// Барабаны
	Reels = 3
	// Строки
	Rows = 3
	// Индекс строки выплатной линии
	PaylineRow = 1
)

// Symbol идентификатор символа алфавита
type Symbol string

// Grid игровое поле 3x3, индексация [барабан][строка], строка 0 - верхняя
type Grid [Reels][Rows]Symbol

// Payline символы выплатной линии слева направо
func (g Grid) Payline() [Reels]Symbol {
	var line [Reels]Symbol
	for r := 0; r < Reels; r++ {
		line[r] = g[r][PaylineRow]
	}
	return line
}

// Ledger игровой счёт игрока
type Ledger struct {
	Balance  int
	Bet      int
	Winnings int
}

// Outcome результат спина, вычисленный в момент запроса
type Outcome struct {
	Grid       Grid
	Winnings   int
	NewBalance int
}

// Phase фаза анимации спина
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseFastChurn Phase = "fast_churn"
	PhaseSlowChurn Phase = "slow_churn"
	PhaseSettled   Phase = "settled"
)

// Snapshot состояние движка для отрисовки
type Snapshot struct {
	DisplayedGrid Grid
	CommittedGrid Grid
	Ledger        Ledger
	Phase         Phase
	Generation    uint64
}

// SpinRecord запись о зафиксированном спине
type SpinRecord struct {
	ID            string
	Generation    uint64
	Grid          Grid
	Bet           int
	Winnings      int
	BalanceBefore int
	BalanceAfter  int
	RequestedAt   time.Time
	SettledAt     time.Time
}

// Stats статистика зафиксированных спинов
type Stats struct {
	TotalSpins  int
	TotalWins   int
	TotalBet    int
	TotalPayout int
	CurrentRTP  float64
	WindowRTP   float64
	WindowSize  int
}
