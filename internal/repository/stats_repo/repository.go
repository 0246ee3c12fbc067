package stats_repo

import (
	"sync"

	"reel_engine/internal/model"
	"reel_engine/internal/repository"
)

// defaultWindowSize Размер окна последних спинов для RTP
const defaultWindowSize = 500

// spinResult спин в окне
type spinResult struct {
	bet    int
	payout int
}

// Реализация репозитория статистики зафиксированных спинов
type repo struct {
	mtx        sync.RWMutex
	state      model.Stats
	window     []spinResult
	windowSize int
}

// NewStatsRepository Конструктор репозитория статистики. windowSize <= 0 - размер по умолчанию
func NewStatsRepository(windowSize int) repository.StatsRepository {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	return &repo{
		windowSize: windowSize,
		window:     make([]spinResult, 0, windowSize),
		state:      model.Stats{WindowSize: windowSize},
	}
}

// Stats Возвращает копию текущей статистики
func (r *repo) Stats() model.Stats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.state
}

// Record Обновление статистики после фиксации спина
func (r *repo) Record(rec model.SpinRecord) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.TotalSpins++
	r.state.TotalBet += rec.Bet
	r.state.TotalPayout += rec.Winnings
	if rec.Winnings > 0 {
		r.state.TotalWins++
	}
	r.state.CurrentRTP = rtp(r.state.TotalPayout, r.state.TotalBet)

	// Добавляем спин в окно и поддерживаем его размер
	r.window = append(r.window, spinResult{bet: rec.Bet, payout: rec.Winnings})
	if len(r.window) > r.windowSize {
		r.window = r.window[1:]
	}

	// Пересчитываем RTP в окне
	var windowBet, windowPayout int
	for _, spin := range r.window {
		windowBet += spin.bet
		windowPayout += spin.payout
	}
	r.state.WindowRTP = rtp(windowPayout, windowBet)
}

// rtp процент возврата, 0 при нулевых ставках
func rtp(payout, bet int) float64 {
	if bet <= 0 {
		return 0
	}
	return float64(payout) / float64(bet) * 100
}
