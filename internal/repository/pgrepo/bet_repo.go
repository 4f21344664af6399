package pgrepo

import (
	"context"
	"fmt"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
)

const betColumns = `id, created_at, settled_at, user_id, round_id, number, amount, status`

type BetRepository struct {
	conn uow.DBTX
}

func NewBetRepository(conn uow.DBTX) *BetRepository {
	return &BetRepository{conn: conn}
}

// Create сохраняет ставку в статусе PENDING. Повторная ставка того же юзера в том же раунде нарушает
// уникальный индекс и возвращает domain.ErrDuplicateKey.
func (b *BetRepository) Create(ctx context.Context, args repoargs.CreateBet) (*domain.Bet, error) {
	row := b.conn.QueryRow(ctx,
		`INSERT INTO bets (created_at, user_id, round_id, number, amount, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+betColumns,
		args.CreatedAt, args.UserID, args.RoundID, args.Number, args.Amount, string(domain.BetStatusPending),
	)
	bet, err := scanBet(row)
	if err != nil {
		return nil, convertErr(err, "creating bet of user %d in round %d", args.UserID, args.RoundID)
	}
	return bet, nil
}

// ListPendingByRound возвращает все нерассчитанные ставки раунда в порядке создания.
func (b *BetRepository) ListPendingByRound(ctx context.Context, roundID int64) ([]domain.Bet, error) {
	rows, err := b.conn.Query(ctx,
		`SELECT `+betColumns+` FROM bets WHERE round_id = $1 AND status = $2 ORDER BY id`,
		roundID, string(domain.BetStatusPending),
	)
	if err != nil {
		return nil, convertErr(err, "listing pending bets of round %d", roundID)
	}
	bets, err := collectRows(rows, scanBet)
	if err != nil {
		return nil, convertErr(err, "listing pending bets of round %d", roundID)
	}
	return bets, nil
}

// ListPending возвращает нерассчитанные ставки всех раундов.
func (b *BetRepository) ListPending(ctx context.Context, limit uint) ([]domain.Bet, error) {
	lim, err := safeConvertUintToInt32(limit)
	if err != nil {
		return nil, fmt.Errorf("[repository/listing pending bets] %w: %s", domain.ErrUnknown, err.Error())
	}
	rows, err := b.conn.Query(ctx,
		`SELECT `+betColumns+` FROM bets WHERE status = $1 ORDER BY id LIMIT $2`,
		string(domain.BetStatusPending), lim,
	)
	if err != nil {
		return nil, convertErr(err, "listing pending bets")
	}
	bets, err := collectRows(rows, scanBet)
	if err != nil {
		return nil, convertErr(err, "listing pending bets")
	}
	return bets, nil
}

// ListByUser возвращает ставки пользователя, новые первыми.
func (b *BetRepository) ListByUser(ctx context.Context, userID int64, limit uint) ([]domain.Bet, error) {
	lim, err := safeConvertUintToInt32(limit)
	if err != nil {
		return nil, fmt.Errorf("[repository/listing bets of user %d] %w: %s", userID, domain.ErrUnknown, err.Error())
	}
	rows, err := b.conn.Query(ctx,
		`SELECT `+betColumns+` FROM bets WHERE user_id = $1 ORDER BY id DESC LIMIT $2`,
		userID, lim,
	)
	if err != nil {
		return nil, convertErr(err, "listing bets of user %d", userID)
	}
	bets, err := collectRows(rows, scanBet)
	if err != nil {
		return nil, convertErr(err, "listing bets of user %d", userID)
	}
	return bets, nil
}

// MarkSettled переводит ставку из PENDING в WON/LOST. Если ставка уже рассчитана (или ее нет),
// возвращает domain.ErrRecordNotFound, повторного перевода не происходит.
func (b *BetRepository) MarkSettled(ctx context.Context, args repoargs.MarkBetSettled) (*domain.Bet, error) {
	row := b.conn.QueryRow(ctx,
		`UPDATE bets SET status = $2, settled_at = $3
		 WHERE id = $1 AND status = $4
		 RETURNING `+betColumns,
		args.BetID, string(args.Status), args.SettledAt, string(domain.BetStatusPending),
	)
	bet, err := scanBet(row)
	if err != nil {
		return nil, convertErr(err, "marking bet %d as %s", args.BetID, args.Status)
	}
	return bet, nil
}

// SumAmountByUser суммирует ставки в заданном статусе по пользователям.
func (b *BetRepository) SumAmountByUser(
	ctx context.Context,
	status domain.BetStatusType,
) ([]repoargs.UserAmountSum, error) {
	rows, err := b.conn.Query(ctx,
		`SELECT user_id, SUM(amount) FROM bets WHERE status = $1 GROUP BY user_id`,
		string(status),
	)
	if err != nil {
		return nil, convertErr(err, "summing %s bets", status)
	}
	defer rows.Close()

	var sums []repoargs.UserAmountSum
	for rows.Next() {
		var sum repoargs.UserAmountSum
		if scanErr := rows.Scan(&sum.UserID, &sum.Amount); scanErr != nil {
			return nil, convertErr(scanErr, "summing %s bets", status)
		}
		sums = append(sums, sum)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "summing %s bets", status)
	}
	return sums, nil
}

func scanBet(row rowScanner) (*domain.Bet, error) {
	var bet domain.Bet
	var status string
	var number int16
	if err := row.Scan(
		&bet.ID, &bet.CreatedAt, &bet.SettledAt, &bet.UserID, &bet.RoundID, &number, &bet.Amount, &status,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	bet.Number = int(number)
	bet.Status = domain.BetStatusType(status)
	return &bet, nil
}
