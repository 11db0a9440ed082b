package service

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"expensed/internal/cache"
	"expensed/internal/db"
)

const maxTitleLength = 200

type ExpenseService interface {
	List(ctx context.Context, userID uuid.UUID, q db.ListQuery) ([]db.Expense, int64, error)
	Create(ctx context.Context, params db.CreateExpenseParams) (db.Expense, error)
	Update(ctx context.Context, params db.UpdateExpenseParams) ([]db.Expense, error)
	Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type expSvc struct {
	store *db.DB
	cache *cache.Cache
	log   *log.Logger
}

func newExpSvc(store *db.DB, c *cache.Cache, lg *log.Logger) ExpenseService {
	return &expSvc{store: store, cache: c, log: lg}
}

func (s *expSvc) List(ctx context.Context, userID uuid.UUID, q db.ListQuery) ([]db.Expense, int64, error) {
	rows, total, err := s.store.ListExpenses(ctx, userID, q)
	if err != nil {
		return nil, 0, wrapErr("ExpenseService.List", err)
	}
	return rows, total, nil
}

func (s *expSvc) Create(ctx context.Context, params db.CreateExpenseParams) (db.Expense, error) {
	if err := validateFields(params.Title, params.Amount.IsNegative(), params.Category, params.Date.IsZero()); err != nil {
		return db.Expense{}, wrapErr("ExpenseService.Create", err)
	}

	expense, err := s.store.CreateExpense(ctx, params)
	if err != nil {
		return db.Expense{}, wrapErr("ExpenseService.Create", err)
	}

	s.cache.Delete(ctx, statsCacheKey(params.UserID))
	s.log.Debug("expense created", "id", expense.ID, "user_id", params.UserID)

	return expense, nil
}

func (s *expSvc) Update(ctx context.Context, params db.UpdateExpenseParams) ([]db.Expense, error) {
	if err := validateFields(params.Title, params.Amount.IsNegative(), params.Category, params.Date.IsZero()); err != nil {
		return nil, wrapErr("ExpenseService.Update", err)
	}

	updated, err := s.store.UpdateExpense(ctx, params)
	if err != nil {
		return nil, wrapErr("ExpenseService.Update", err)
	}

	s.cache.Delete(ctx, statsCacheKey(params.UserID))

	return updated, nil
}

func (s *expSvc) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	deleted, err := s.store.DeleteExpenses(ctx, userID, ids)
	if err != nil {
		return 0, wrapErr("ExpenseService.Delete", err)
	}

	s.cache.Delete(ctx, statsCacheKey(userID))
	s.log.Debug("expenses deleted", "requested", len(ids), "deleted", deleted, "user_id", userID)

	return deleted, nil
}

func validateFields(title string, negative bool, category db.Category, zeroDate bool) error {
	switch {
	case title == "":
		return wrapErr("empty title", ErrValidation)
	case len(title) > maxTitleLength:
		return wrapErr("title too long", ErrValidation)
	case negative:
		return wrapErr("negative amount", ErrValidation)
	case !category.Valid():
		return wrapErr("unknown category", ErrValidation)
	case zeroDate:
		return wrapErr("missing date", ErrValidation)
	}
	return nil
}
