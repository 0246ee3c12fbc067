package outcome

import (
	crand "crypto/rand"
	"math/rand/v2"

	"reel_engine/internal/model"
)

// Множитель выплаты при совпадении выплатной линии
const PayoutMultiplier = 10

// Source источник случайности. *rand.Rand из math/rand/v2 подходит.
// Не обязан быть потокобезопасным: вызывающий сериализует доступ.
type Source interface {
	IntN(n int) int
}

// NewSeededSource детерминированный источник для тестов и воспроизведения
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSecureSource источник ChaCha8 с зерном из crypto/rand
func NewSecureSource() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand на поддерживаемых платформах не возвращает ошибок
		panic(err)
	}
	return rand.New(rand.NewChaCha8(seed))
}

// Generator генератор исходов спина
type Generator struct {
	alphabet   Alphabet
	src        Source
	multiplier int
}

// NewGenerator Создать генератор поверх алфавита и источника случайности
func NewGenerator(alphabet Alphabet, src Source) *Generator {
	return &Generator{
		alphabet:   alphabet,
		src:        src,
		multiplier: PayoutMultiplier,
	}
}

// WithMultiplier Задать множитель выплаты (по умолчанию PayoutMultiplier)
func (g *Generator) WithMultiplier(m int) *Generator {
	g.multiplier = m
	return g
}

func (g *Generator) Alphabet() Alphabet {
	return g.alphabet
}

// DrawGrid генерирует поле 3x3, каждая ячейка равновероятно из алфавита
func (g *Generator) DrawGrid() model.Grid {
	var grid model.Grid
	for r := 0; r < model.Reels; r++ {
		grid[r] = g.DrawReel()
	}
	return grid
}

// DrawReel генерирует один барабан
func (g *Generator) DrawReel() [model.Rows]model.Symbol {
	var reel [model.Rows]model.Symbol
	for row := 0; row < model.Rows; row++ {
		reel[row] = g.alphabet.At(g.src.IntN(g.alphabet.Len()))
	}
	return reel
}

// Evaluate выплата по единственной линии с множителем PayoutMultiplier
func Evaluate(grid model.Grid, bet int) int {
	return EvaluateWith(grid, bet, PayoutMultiplier)
}

// EvaluateWith выплата по средней строке: bet*multiplier, если все три символа совпали, иначе 0
func EvaluateWith(grid model.Grid, bet, multiplier int) int {
	line := grid.Payline()
	for r := 1; r < model.Reels; r++ {
		if line[r] != line[0] {
			return 0
		}
	}
	return bet * multiplier
}

// Spin генерирует поле и считает выигрыш и новый баланс.
// Баланс не ограничен снизу.
func (g *Generator) Spin(ledger model.Ledger) model.Outcome {
	grid := g.DrawGrid()
	return Settle(grid, ledger, g.multiplier)
}

// Settle выигрыш и баланс для уже известного поля
func Settle(grid model.Grid, ledger model.Ledger, multiplier int) model.Outcome {
	winnings := EvaluateWith(grid, ledger.Bet, multiplier)
	return model.Outcome{
		Grid:       grid,
		Winnings:   winnings,
		NewBalance: ledger.Balance + winnings - ledger.Bet,
	}
}
