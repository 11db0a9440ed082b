package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func scanExpense(row pgx.Row) (Expense, error) {
	var (
		e      Expense
		amount string
	)
	if err := row.Scan(&e.ID, &e.Title, &amount, &e.Category, &e.Date, &e.UserID); err != nil {
		return Expense{}, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Expense{}, fmt.Errorf("parse amount: %w", err)
	}
	e.Amount = d
	return e, nil
}

// ListExpenses returns one page of the owner's expenses matching q, plus the
// total match count across all pages.
func (s *DB) ListExpenses(ctx context.Context, userID uuid.UUID, q ListQuery) ([]Expense, int64, error) {
	sql, args := q.SQL(userID)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list expenses: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}

	countSQL, countArgs := q.CountSQL(userID)
	var total int64
	if err := s.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}

	return expenses, total, nil
}

func (s *DB) CreateExpense(ctx context.Context, params CreateExpenseParams) (Expense, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO expenses (title, amount, category, date, user_id)
		VALUES ($1, $2::numeric, $3, $4, $5)
		RETURNING id, title, amount::text, category, date, user_id`,
		params.Title, params.Amount.String(), params.Category, params.Date, params.UserID,
	)

	e, err := scanExpense(row)
	if err != nil {
		return Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return e, nil
}

// UpdateExpense rewrites every mutable field of the row identified by both id
// and owner. A row belonging to another user yields an empty result, not an
// error.
func (s *DB) UpdateExpense(ctx context.Context, params UpdateExpenseParams) ([]Expense, error) {
	rows, err := s.pool.Query(ctx, `
		UPDATE expenses
		SET title = $1, amount = $2::numeric, category = $3, date = $4
		WHERE id = $5 AND user_id = $6
		RETURNING id, title, amount::text, category, date, user_id`,
		params.Title, params.Amount.String(), params.Category, params.Date, params.ID, params.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	defer rows.Close()

	updated := []Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("update expense: %w", err)
		}
		updated = append(updated, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}

	return updated, nil
}

// DeleteExpenses removes the caller-owned subset of ids in one statement.
// Ids that do not exist or belong to someone else are skipped silently, so
// the call is idempotent.
func (s *DB) DeleteExpenses(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM expenses WHERE id = ANY($1) AND user_id = $2",
		ids, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete expenses: %w", err)
	}
	return tag.RowsAffected(), nil
}
