package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer отменяемый отложенный вызов
type Timer interface {
	// Stop отменяет вызов. Возвращает false, если вызов уже произошёл или был отменён
	Stop() bool
}

// Clock источник времени и планировщик отложенных вызовов
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real реальные часы поверх пакета time
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Manual часы, которые двигаются только вручную через Advance.
// Вызовы выполняются синхронно в горутине, вызвавшей Advance,
// в порядке срока, а при равном сроке - в порядке планирования.
type Manual struct {
	mtx    sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	c       *Manual
	at      time.Time
	seq     uint64
	f       func()
	stopped bool
	fired   bool
}

// NewManual Создать ручные часы с начальным временем start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{c: m, at: m.now.Add(d), seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Advance двигает время вперёд на d, выполняя все наступившие вызовы.
// Вызовы, запланированные во время Advance, тоже выполняются, если их срок наступил.
func (m *Manual) Advance(d time.Duration) {
	m.mtx.Lock()
	target := m.now.Add(d)
	m.mtx.Unlock()

	for {
		t := m.next(target)
		if t == nil {
			break
		}
		t.f()
	}

	m.mtx.Lock()
	m.now = target
	m.mtx.Unlock()
}

// Pending количество запланированных и не отменённых вызовов
func (m *Manual) Pending() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return len(m.timers)
}

// next снимает с очереди ближайший вызов со сроком не позже target
func (m *Manual) next(target time.Time) *manualTimer {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at.Equal(m.timers[j].at) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at.Before(m.timers[j].at)
	})
	t := m.timers[0]
	if t.at.After(target) {
		return nil
	}
	m.timers = m.timers[1:]
	t.fired = true
	m.now = t.at
	return t
}

func (t *manualTimer) Stop() bool {
	m := t.c
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			break
		}
	}
	return true
}
