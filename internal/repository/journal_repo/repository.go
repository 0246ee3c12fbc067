package journal_repo

import (
	"context"
	"errors"
	"fmt"

	"reel_engine/internal/model"
	"reel_engine/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table            = "spin_journal"
	colID            = "id"
	colGeneration    = "generation"
	colGrid          = "grid"
	colBet           = "bet"
	colWinnings      = "winnings"
	colBalanceBefore = "balance_before"
	colBalanceAfter  = "balance_after"
	colRequestedAt   = "requested_at"
	colSettledAt     = "settled_at"

	totalsTable    = "spin_totals"
	colTotalsID    = "id"
	colSpins       = "spins"
	colTotalBet    = "total_bet"
	colTotalPayout = "total_payout"
	totalsRowID    = 1
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewJournalRepository(dbc *pgxpool.Pool) repository.JournalRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Append - добавляет запись о спине в журнал.
// Внутри txManager.Do использует транзакцию из контекста
func (r *repo) Append(ctx context.Context, rec model.SpinRecord) error {
	sqlStr, args, err := appendQuery(rec).ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("append spin %s: %w", rec.ID, err)
	}
	return nil
}

// AddTotals - увеличивает итоговые счётчики журнала.
// Если строки итогов нет, она создаётся
func (r *repo) AddTotals(ctx context.Context, bet, payout int) error {
	sqlStr, args, err := totalsQuery(bet, payout).ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update spin totals: %w", err)
	}
	return nil
}

// Recent - последние limit записей, новые первыми
func (r *repo) Recent(ctx context.Context, limit int) ([]model.SpinRecord, error) {
	if limit <= 0 {
		return []model.SpinRecord{}, nil
	}

	sqlStr, args, err := recentQuery(limit).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]model.SpinRecord, 0, limit)
	for rows.Next() {
		var (
			rec  model.SpinRecord
			grid [][]string
			gen  int64
		)
		err = rows.Scan(&rec.ID, &gen, &grid, &rec.Bet, &rec.Winnings,
			&rec.BalanceBefore, &rec.BalanceAfter, &rec.RequestedAt, &rec.SettledAt)
		if err != nil {
			return nil, err
		}
		rec.Generation = uint64(gen)
		rec.Grid, err = decodeGrid(grid)
		if err != nil {
			return nil, fmt.Errorf("spin %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func appendQuery(rec model.SpinRecord) sq.InsertBuilder {
	return sq.Insert(table).
		Columns(colID, colGeneration, colGrid, colBet, colWinnings,
			colBalanceBefore, colBalanceAfter, colRequestedAt, colSettledAt).
		Values(rec.ID, int64(rec.Generation), encodeGrid(rec.Grid), rec.Bet, rec.Winnings,
			rec.BalanceBefore, rec.BalanceAfter, rec.RequestedAt, rec.SettledAt).
		PlaceholderFormat(sq.Dollar)
}

func totalsQuery(bet, payout int) sq.InsertBuilder {
	return sq.Insert(totalsTable).
		Columns(colTotalsID, colSpins, colTotalBet, colTotalPayout).
		Values(totalsRowID, 1, bet, payout).
		Suffix("ON CONFLICT (" + colTotalsID + ") DO UPDATE SET " +
			colSpins + " = " + totalsTable + "." + colSpins + " + 1, " +
			colTotalBet + " = " + totalsTable + "." + colTotalBet + " + EXCLUDED." + colTotalBet + ", " +
			colTotalPayout + " = " + totalsTable + "." + colTotalPayout + " + EXCLUDED." + colTotalPayout).
		PlaceholderFormat(sq.Dollar)
}

func recentQuery(limit int) sq.SelectBuilder {
	return sq.Select(colID, colGeneration, colGrid, colBet, colWinnings,
		colBalanceBefore, colBalanceAfter, colRequestedAt, colSettledAt).
		From(table).
		OrderBy(colSettledAt + " DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)
}

// encodeGrid поле в двумерный text[] (барабан x строка)
func encodeGrid(g model.Grid) [][]string {
	out := make([][]string, model.Reels)
	for r := 0; r < model.Reels; r++ {
		out[r] = make([]string, model.Rows)
		for row := 0; row < model.Rows; row++ {
			out[r][row] = string(g[r][row])
		}
	}
	return out
}

func decodeGrid(raw [][]string) (model.Grid, error) {
	var g model.Grid
	if len(raw) != model.Reels {
		return g, errors.New("invalid grid structure: expected 3 reels")
	}
	for r, reel := range raw {
		if len(reel) != model.Rows {
			return g, errors.New("invalid grid structure: expected 3 rows per reel")
		}
		for row, s := range reel {
			g[r][row] = model.Symbol(s)
		}
	}
	return g, nil
}
