package outcome

import (
	"errors"
	"math"
	"testing"

	"reel_engine/internal/model"

	"pgregory.net/rapid"
)

// scriptedSource возвращает заранее заданные индексы по кругу
type scriptedSource struct {
	idx []int
	pos int
}

func (s *scriptedSource) IntN(n int) int {
	v := s.idx[s.pos%len(s.idx)] % n
	s.pos++
	return v
}

// gridSource индексы для DrawGrid в порядке барабан за барабаном
func gridSource(cols [model.Reels][model.Rows]int) *scriptedSource {
	var idx []int
	for r := 0; r < model.Reels; r++ {
		idx = append(idx, cols[r][:]...)
	}
	return &scriptedSource{idx: idx}
}

var abc = MustAlphabet("A", "B", "C")

func TestNewAlphabet(t *testing.T) {
	if _, err := NewAlphabet(nil); !errors.Is(err, ErrEmptyAlphabet) {
		t.Errorf("NewAlphabet(nil) err = %v, want ErrEmptyAlphabet", err)
	}
	if _, err := NewAlphabet([]model.Symbol{"A", "B", "A"}); !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("NewAlphabet(dup) err = %v, want ErrDuplicateSymbol", err)
	}
	if _, err := NewAlphabet([]model.Symbol{"A", ""}); err == nil {
		t.Error("NewAlphabet with empty symbol should fail")
	}
	a, err := NewAlphabet([]model.Symbol{"seven", "bar"})
	if err != nil {
		t.Fatalf("NewAlphabet: %v", err)
	}
	if a.Len() != 2 || a.At(0) != "seven" || !a.Contains("bar") || a.Contains("cherry") {
		t.Errorf("alphabet = %v", a.Symbols())
	}
}

func gridGen(symbols []model.Symbol) *rapid.Generator[model.Grid] {
	return rapid.Custom(func(t *rapid.T) model.Grid {
		var g model.Grid
		for r := 0; r < model.Reels; r++ {
			for row := 0; row < model.Rows; row++ {
				g[r][row] = rapid.SampledFrom(symbols).Draw(t, "cell")
			}
		}
		return g
	})
}

func TestEvaluateMiddleRowProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 8).Draw(t, "size")
		symbols := make([]model.Symbol, size)
		for i := range symbols {
			symbols[i] = model.Symbol(rune('A' + i))
		}
		g := gridGen(symbols).Draw(t, "grid")
		bet := rapid.IntRange(0, 10_000).Draw(t, "bet")

		got := Evaluate(g, bet)
		match := g[0][1] == g[1][1] && g[1][1] == g[2][1]
		want := 0
		if match {
			want = bet * 10
		}
		if got != want {
			t.Fatalf("Evaluate(%v, %d) = %d, want %d", g, bet, got, want)
		}
	})
}

func TestEvaluateZeroBet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := gridGen([]model.Symbol{"A", "B"}).Draw(t, "grid")
		if got := Evaluate(g, 0); got != 0 {
			t.Fatalf("Evaluate(%v, 0) = %d, want 0", g, got)
		}
	})
}

func TestEvaluateIgnoresOtherRows(t *testing.T) {
	cases := []struct {
		name string
		grid model.Grid
		want int
	}{
		{"middle match", model.Grid{{"B", "A", "C"}, {"C", "A", "B"}, {"A", "A", "A"}}, 500},
		{"top match only", model.Grid{{"A", "B", "C"}, {"A", "C", "C"}, {"A", "B", "C"}}, 0},
		{"bottom match only", model.Grid{{"A", "B", "C"}, {"B", "C", "C"}, {"A", "B", "C"}}, 0},
		{"two of three", model.Grid{{"A", "A", "A"}, {"B", "B", "B"}, {"A", "A", "A"}}, 0},
		{"diagonal", model.Grid{{"A", "B", "C"}, {"B", "A", "C"}, {"C", "B", "A"}}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Evaluate(c.grid, 50); got != c.want {
				t.Errorf("Evaluate = %d, want %d", got, c.want)
			}
		})
	}
}

func TestSpinBalanceIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64().Draw(t, "seed")
		ledger := model.Ledger{
			Balance:  rapid.IntRange(-1_000_000, 1_000_000).Draw(t, "balance"),
			Bet:      rapid.IntRange(0, 10_000).Draw(t, "bet"),
			Winnings: rapid.IntRange(0, 10_000).Draw(t, "stale_winnings"),
		}
		g := NewGenerator(abc, NewSeededSource(seed))
		out := g.Spin(ledger)
		if out.NewBalance != ledger.Balance+out.Winnings-ledger.Bet {
			t.Fatalf("NewBalance = %d, want %d+%d-%d", out.NewBalance, ledger.Balance, out.Winnings, ledger.Bet)
		}
		if out.Winnings != Evaluate(out.Grid, ledger.Bet) {
			t.Fatalf("Winnings = %d, want %d", out.Winnings, Evaluate(out.Grid, ledger.Bet))
		}
	})
}

func TestSpinDrivesBalanceNegative(t *testing.T) {
	// A B A на линии - проигрыш
	src := gridSource([3][3]int{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}})
	g := NewGenerator(abc, src)
	out := g.Spin(model.Ledger{Balance: 20, Bet: 50})
	if out.Winnings != 0 || out.NewBalance != -30 {
		t.Errorf("Spin = %+v, want winnings 0 balance -30", out)
	}
}

func TestSpinScenarios(t *testing.T) {
	cases := []struct {
		name         string
		middle       [3]int
		wantWinnings int
		wantBalance  int
	}{
		{"AAA wins", [3]int{0, 0, 0}, 500, 1450},
		{"ABA loses", [3]int{0, 1, 0}, 0, 950},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := gridSource([3][3]int{
				{2, c.middle[0], 1},
				{1, c.middle[1], 2},
				{2, c.middle[2], 2},
			})
			out := NewGenerator(abc, src).Spin(model.Ledger{Balance: 1000, Bet: 50})
			if out.Winnings != c.wantWinnings || out.NewBalance != c.wantBalance {
				t.Errorf("Spin = winnings %d balance %d, want %d %d",
					out.Winnings, out.NewBalance, c.wantWinnings, c.wantBalance)
			}
		})
	}
}

func TestDrawGridUniform(t *testing.T) {
	symbols := []model.Symbol{"A", "B", "C", "D", "E", "F", "G"}
	g := NewGenerator(MustAlphabet(symbols...), NewSeededSource(42))
	const n = 70_000
	counts := make(map[model.Symbol]int)
	for i := 0; i < n; i++ {
		grid := g.DrawGrid()
		counts[grid[1][1]]++
		for r := 0; r < model.Reels; r++ {
			for row := 0; row < model.Rows; row++ {
				if !g.Alphabet().Contains(grid[r][row]) {
					t.Fatalf("symbol %q not in alphabet", grid[r][row])
				}
			}
		}
	}
	want := 1.0 / float64(len(symbols))
	for _, s := range symbols {
		freq := float64(counts[s]) / n
		if math.Abs(freq-want) > 0.01 {
			t.Errorf("frequency of %s in cell [1][1] = %.4f, want %.4f±0.01", s, freq, want)
		}
	}
}

func TestDrawGridSeededIsReproducible(t *testing.T) {
	a := NewGenerator(abc, NewSeededSource(7)).DrawGrid()
	b := NewGenerator(abc, NewSeededSource(7)).DrawGrid()
	if a != b {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}

func TestWithMultiplier(t *testing.T) {
	src := gridSource([3][3]int{{0, 2, 0}, {0, 2, 0}, {0, 2, 0}})
	out := NewGenerator(abc, src).WithMultiplier(3).Spin(model.Ledger{Balance: 0, Bet: 10})
	if out.Winnings != 30 || out.NewBalance != 20 {
		t.Errorf("Spin = %+v, want winnings 30 balance 20", out)
	}
}
