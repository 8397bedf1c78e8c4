package round_repo

import (
	"context"
	"roulette_backend/internal/model"
	"roulette_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table          = "roulette_rounds"
	colID          = "id"
	colUserID      = "user_id"
	colNumber      = "number"
	colTotalBet    = "total_bet"
	colTotalPayout = "total_payout"
	colCreatedAt   = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewRoundRepository(dbc *pgxpool.Pool) repository.RoundRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateRound - сохраняет рассчитанный раунд
func (r *repo) CreateRound(ctx context.Context, round *model.Round) (int, error) {
	query := sq.Insert(table).
		Columns(colUserID, colNumber, colTotalBet, colTotalPayout, colCreatedAt).
		Values(round.UserID, round.Number, round.TotalBet, round.TotalPayout, round.CreatedAt).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ListRounds - последние раунды пользователя, новые первыми
func (r *repo) ListRounds(ctx context.Context, userID int, limit uint64) ([]model.Round, error) {
	query := sq.Select(colID, colUserID, colNumber, colTotalBet, colTotalPayout, colCreatedAt).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colID + " DESC").
		Limit(limit).
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

	rounds := []model.Round{}
	for rows.Next() {
		var round model.Round
		if err := rows.Scan(&round.ID, &round.UserID, &round.Number, &round.TotalBet, &round.TotalPayout, &round.CreatedAt); err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}

	return rounds, rows.Err()
}
