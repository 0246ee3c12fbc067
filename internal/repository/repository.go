package repository

import (
	"context"

	"reel_engine/internal/model"
)

// StatsRepository статистика зафиксированных спинов (в памяти)
type StatsRepository interface {
	Record(rec model.SpinRecord)
	Stats() model.Stats
}

// JournalRepository журнал зафиксированных спинов.
// Только запись и чтение истории: счёт из журнала не восстанавливается.
type JournalRepository interface {
	Append(ctx context.Context, rec model.SpinRecord) error
	AddTotals(ctx context.Context, bet, payout int) error
	Recent(ctx context.Context, limit int) ([]model.SpinRecord, error)
}
