package outcome

import (
	"errors"
	"fmt"

	"reel_engine/internal/model"

	"github.com/samber/lo"
)

var (
	ErrEmptyAlphabet   = errors.New("symbol alphabet is empty")
	ErrDuplicateSymbol = errors.New("symbol alphabet has duplicates")
)

// Alphabet неизменяемый упорядоченный набор символов
type Alphabet struct {
	symbols []model.Symbol
}

// NewAlphabet Создать алфавит. Пустой алфавит или повторы - ошибка конфигурации
func NewAlphabet(symbols []model.Symbol) (Alphabet, error) {
	if len(symbols) == 0 {
		return Alphabet{}, ErrEmptyAlphabet
	}
	if dup := lo.FindDuplicates(symbols); len(dup) > 0 {
		return Alphabet{}, fmt.Errorf("%w: %v", ErrDuplicateSymbol, dup)
	}
	if lo.Contains(symbols, "") {
		return Alphabet{}, errors.New("symbol alphabet has an empty symbol")
	}
	return Alphabet{symbols: append([]model.Symbol(nil), symbols...)}, nil
}

// MustAlphabet как NewAlphabet, но паникует при ошибке
func MustAlphabet(symbols ...model.Symbol) Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Alphabet) Len() int {
	return len(a.symbols)
}

func (a Alphabet) At(i int) model.Symbol {
	return a.symbols[i]
}

func (a Alphabet) Contains(s model.Symbol) bool {
	return lo.Contains(a.symbols, s)
}

// Symbols копия символов в порядке конфигурации
func (a Alphabet) Symbols() []model.Symbol {
	return append([]model.Symbol(nil), a.symbols...)
}
