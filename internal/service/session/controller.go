package session

import (
	"errors"
	"sync"
	"time"

	"reel_engine/internal/model"
	"reel_engine/pkg/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidBet = errors.New("bet must not be negative")

// Spinner авторитетный генератор исхода
type Spinner interface {
	Spin(ledger model.Ledger) model.Outcome
}

// Drawer генератор косметических кадров прокрутки
type Drawer interface {
	DrawGrid() model.Grid
}

// CommitFunc вызывается один раз на каждый зафиксированный спин.
// Вызов идёт под блокировкой контроллера: нельзя блокироваться
// и нельзя обращаться обратно к контроллеру.
type CommitFunc func(rec model.SpinRecord)

type pendingSpin struct {
	id          string
	outcome     model.Outcome
	bet         int
	requestedAt time.Time
}

// Controller конечный автомат сессии спина:
// idle -> fast_churn -> slow_churn -> settled -> idle.
// Колбэки таймеров помечены поколением спина, устаревшие игнорируются.
type Controller struct {
	mtx sync.Mutex

	clk     clock.Clock
	log     *zap.Logger
	phases  PhaseTable
	spinner Spinner
	churn   Drawer
	sinks   []CommitFunc
	hub     *hub

	ledger     model.Ledger
	committed  model.Grid
	displayed  model.Grid
	phase      model.Phase
	generation uint64
	pending    *pendingSpin

	tickTimer  clock.Timer
	phaseTimer clock.Timer
	closed     bool
}

type Option func(*Controller)

func WithClock(c clock.Clock) Option {
	return func(ctl *Controller) { ctl.clk = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(ctl *Controller) { ctl.log = l }
}

func WithPhases(t PhaseTable) Option {
	return func(ctl *Controller) { ctl.phases = t }
}

// WithCommitSink добавить получателя зафиксированных спинов
func WithCommitSink(f CommitFunc) Option {
	return func(ctl *Controller) { ctl.sinks = append(ctl.sinks, f) }
}

// NewController Создать контроллер. initial - начальное поле, показанное до первого спина
func NewController(spinner Spinner, churn Drawer, ledger model.Ledger, initial model.Grid, opts ...Option) (*Controller, error) {
	c := &Controller{
		clk:       clock.Real{},
		log:       zap.NewNop(),
		phases:    DefaultPhaseTable(),
		spinner:   spinner,
		churn:     churn,
		hub:       newHub(),
		ledger:    ledger,
		committed: initial,
		displayed: initial,
		phase:     model.PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.phases.Validate(); err != nil {
		return nil, err
	}
	if ledger.Bet < 0 {
		return nil, ErrInvalidBet
	}
	return c, nil
}

// RequestSpin запускает новый спин. Исход вычисляется сразу,
// счёт меняется только при фиксации. Незавершённый спин отменяется
// и никогда не фиксируется. Возвращает поколение нового спина.
func (c *Controller) RequestSpin() uint64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return c.generation
	}

	c.stopTimersLocked()
	if c.pending != nil {
		c.log.Info("spin superseded",
			zap.Uint64("generation", c.generation),
			zap.String("spin_id", c.pending.id),
			zap.String("phase", string(c.phase)))
	}

	c.generation++
	gen := c.generation
	out := c.spinner.Spin(c.ledger)
	c.pending = &pendingSpin{
		id:          uuid.NewString(),
		outcome:     out,
		bet:         c.ledger.Bet,
		requestedAt: c.clk.Now(),
	}

	c.log.Info("spin requested",
		zap.Uint64("generation", gen),
		zap.String("spin_id", c.pending.id),
		zap.Int("bet", c.pending.bet),
		zap.Int("balance", c.ledger.Balance))

	c.enterLocked(gen, model.PhaseFastChurn)
	return gen
}

// Snapshot копия текущего состояния
func (c *Controller) Snapshot() model.Snapshot {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.snapshotLocked()
}

// Subscribe поток снимков: каждый тик, смена фазы и фиксация.
// Канал закрывается вызовом cancel или Close контроллера.
func (c *Controller) Subscribe(buffer int) (<-chan model.Snapshot, func()) {
	return c.hub.subscribe(buffer)
}

// SetBet меняет ставку, действует со следующего спина
func (c *Controller) SetBet(bet int) error {
	if bet < 0 {
		return ErrInvalidBet
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.ledger.Bet = bet
	c.publishLocked()
	return nil
}

// Phases таблица таймингов
func (c *Controller) Phases() PhaseTable {
	return c.phases
}

// Close останавливает таймеры. Незавершённый спин не фиксируется
func (c *Controller) Close() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopTimersLocked()
	if c.pending != nil {
		c.log.Warn("controller closed with spin in flight",
			zap.Uint64("generation", c.generation),
			zap.String("spin_id", c.pending.id))
		c.pending = nil
		c.displayed = c.committed
		c.phase = model.PhaseIdle
	}
	c.hub.close()
}

func (c *Controller) enterLocked(gen uint64, phase model.Phase) {
	timing := c.phases[phase]
	c.phase = phase
	c.scheduleTickLocked(gen, phase, timing.TickInterval)
	c.phaseTimer = c.clk.AfterFunc(timing.Duration, func() {
		c.onPhaseElapsed(gen, phase)
	})
	c.publishLocked()
}

func (c *Controller) scheduleTickLocked(gen uint64, phase model.Phase, interval time.Duration) {
	c.tickTimer = c.clk.AfterFunc(interval, func() {
		c.onTick(gen, phase, interval)
	})
}

func (c *Controller) onTick(gen uint64, phase model.Phase, interval time.Duration) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.staleLocked(gen, phase) {
		return
	}
	// каждый барабан получает свой случайный кадр
	frame := c.churn.DrawGrid()
	for r := 0; r < model.Reels; r++ {
		c.displayed[r] = frame[r]
	}
	c.scheduleTickLocked(gen, phase, interval)
	c.publishLocked()
}

func (c *Controller) onPhaseElapsed(gen uint64, phase model.Phase) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.staleLocked(gen, phase) {
		return
	}
	c.stopTimersLocked()

	switch to := next(phase); to {
	case model.PhaseSlowChurn:
		c.enterLocked(gen, to)
	case model.PhaseSettled:
		c.settleLocked(gen)
	}
}

// settleLocked фиксирует заранее вычисленный исход и возвращается в idle
func (c *Controller) settleLocked(gen uint64) {
	p := c.pending
	c.pending = nil

	for r := 0; r < model.Reels; r++ {
		c.displayed[r] = p.outcome.Grid[r]
	}
	c.committed = p.outcome.Grid

	before := c.ledger.Balance
	c.ledger.Winnings = p.outcome.Winnings
	c.ledger.Balance += p.outcome.Winnings - p.bet

	c.phase = model.PhaseSettled
	c.publishLocked()

	rec := model.SpinRecord{
		ID:            p.id,
		Generation:    gen,
		Grid:          p.outcome.Grid,
		Bet:           p.bet,
		Winnings:      p.outcome.Winnings,
		BalanceBefore: before,
		BalanceAfter:  c.ledger.Balance,
		RequestedAt:   p.requestedAt,
		SettledAt:     c.clk.Now(),
	}
	for _, sink := range c.sinks {
		sink(rec)
	}

	c.log.Info("spin committed",
		zap.Uint64("generation", gen),
		zap.String("spin_id", rec.ID),
		zap.Int("winnings", rec.Winnings),
		zap.Int("balance", rec.BalanceAfter))

	c.phase = model.PhaseIdle
	c.publishLocked()
}

func (c *Controller) staleLocked(gen uint64, phase model.Phase) bool {
	return c.closed || gen != c.generation || phase != c.phase || c.pending == nil
}

func (c *Controller) stopTimersLocked() {
	if c.tickTimer != nil {
		c.tickTimer.Stop()
		c.tickTimer = nil
	}
	if c.phaseTimer != nil {
		c.phaseTimer.Stop()
		c.phaseTimer = nil
	}
}

func (c *Controller) snapshotLocked() model.Snapshot {
	return model.Snapshot{
		DisplayedGrid: c.displayed,
		CommittedGrid: c.committed,
		Ledger:        c.ledger,
		Phase:         c.phase,
		Generation:    c.generation,
	}
}

func (c *Controller) publishLocked() {
	c.hub.publish(c.snapshotLocked())
}
