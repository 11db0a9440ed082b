package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

type TestDB struct {
	*DB
	t *testing.T
}

func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if err := RunMigrations(dsn); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	store, err := New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	tdb := &TestDB{DB: store, t: t}

	t.Cleanup(func() {
		store.Close()
	})

	return tdb
}

// CreateTestExpense inserts a row for userID and registers cleanup so tests
// never leak rows into a shared database.
func (tdb *TestDB) CreateTestExpense(ctx context.Context, params CreateExpenseParams) Expense {
	tdb.t.Helper()

	expense, err := tdb.CreateExpense(ctx, params)
	if err != nil {
		tdb.t.Fatalf("failed to create test expense: %v", err)
	}

	tdb.t.Cleanup(func() {
		_, _ = tdb.DeleteExpenses(context.Background(), params.UserID, []uuid.UUID{expense.ID})
	})

	return expense
}
