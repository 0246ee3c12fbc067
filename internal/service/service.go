package service

import (
	"context"

	"reel_engine/internal/model"
)

// ReelService сессия барабанов одного игрока
type ReelService interface {
	RequestSpin() uint64
	SetBet(bet int) error
	Snapshot() model.Snapshot
	Subscribe(buffer int) (<-chan model.Snapshot, func())
}

type StatsService interface {
	Stats() model.Stats
}

// JournalService журнал зафиксированных спинов.
// Commit не блокирует вызывающего
type JournalService interface {
	Commit(rec model.SpinRecord)
	Recent(ctx context.Context, limit int) ([]model.SpinRecord, error)
}
