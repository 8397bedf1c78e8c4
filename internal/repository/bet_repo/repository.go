package bet_repo

import (
	"context"
	"roulette_backend/internal/repository"
	rouletteModel "roulette_backend/internal/service/roulette/model"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table       = "roulette_bets"
	colID       = "id"
	colUserID   = "user_id"
	colCategory = "category"
	colAmount   = "amount"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewBetRepository(dbc *pgxpool.Pool) repository.BetRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// AddBet - добавляет ставку. Повторная ставка на ту же категорию
// увеличивает сумму существующей записи, позиция в списке сохраняется
func (r *repo) AddBet(ctx context.Context, userID int, bet rouletteModel.Bet) error {
	query := sq.Insert(table).
		Columns(colUserID, colCategory, colAmount).
		Values(userID, string(bet.Category), bet.Amount).
		Suffix("ON CONFLICT (" + colUserID + ", " + colCategory + ") DO UPDATE SET " +
			colAmount + " = " + table + "." + colAmount + " + EXCLUDED." + colAmount).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// ListBets - ставки пользователя в порядке первого размещения
func (r *repo) ListBets(ctx context.Context, userID int) ([]rouletteModel.Bet, error) {
	query := sq.Select(colCategory, colAmount).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bets := []rouletteModel.Bet{}
	for rows.Next() {
		var category string
		var amount int
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, err
		}
		bets = append(bets, rouletteModel.Bet{
			Category: rouletteModel.Category(category),
			Amount:   amount,
		})
	}

	return bets, rows.Err()
}

// ClearBets - удаляет все ставки пользователя
func (r *repo) ClearBets(ctx context.Context, userID int) error {
	query := sq.Delete(table).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}
