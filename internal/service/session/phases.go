package session

import (
	"fmt"
	"time"

	"reel_engine/internal/model"
)

// PhaseTiming интервал тика и длительность фазы
type PhaseTiming struct {
	TickInterval time.Duration
	Duration     time.Duration
}

// PhaseTable таблица таймингов для фаз прокрутки
type PhaseTable map[model.Phase]PhaseTiming

// DefaultPhaseTable быстрая фаза 50ms/2000ms, медленная 200ms/2000ms
func DefaultPhaseTable() PhaseTable {
	return PhaseTable{
		model.PhaseFastChurn: {TickInterval: 50 * time.Millisecond, Duration: 2000 * time.Millisecond},
		model.PhaseSlowChurn: {TickInterval: 200 * time.Millisecond, Duration: 2000 * time.Millisecond},
	}
}

// churnPhases фазы с тиками в порядке прохождения
var churnPhases = []model.Phase{model.PhaseFastChurn, model.PhaseSlowChurn}

// Validate обе фазы прокрутки заданы, интервалы и длительности положительны
func (t PhaseTable) Validate() error {
	for _, p := range churnPhases {
		timing, ok := t[p]
		if !ok {
			return fmt.Errorf("phase %s: timing not configured", p)
		}
		if timing.TickInterval <= 0 {
			return fmt.Errorf("phase %s: tick interval must be positive, got %v", p, timing.TickInterval)
		}
		if timing.Duration <= 0 {
			return fmt.Errorf("phase %s: duration must be positive, got %v", p, timing.Duration)
		}
	}
	return nil
}

// Total полная длительность анимации
func (t PhaseTable) Total() time.Duration {
	var total time.Duration
	for _, p := range churnPhases {
		total += t[p].Duration
	}
	return total
}

// next фаза, следующая за p
func next(p model.Phase) model.Phase {
	switch p {
	case model.PhaseFastChurn:
		return model.PhaseSlowChurn
	case model.PhaseSlowChurn:
		return model.PhaseSettled
	default:
		return model.PhaseIdle
	}
}
