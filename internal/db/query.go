package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PageSize is the fixed number of rows per page. Clients derive the page count
// as ceil(total / PageSize).
const PageSize = 10

type Sort string

const (
	SortDateAsc    Sort = "date_asc"
	SortDateDesc   Sort = "date_desc"
	SortAmountAsc  Sort = "amount_asc"
	SortAmountDesc Sort = "amount_desc"
)

// ParseSort maps a wire value onto a sort key. The empty string defaults to
// date descending; any other unknown value is rejected, never defaulted.
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case "":
		return SortDateDesc, nil
	case SortDateAsc, SortDateDesc, SortAmountAsc, SortAmountDesc:
		return Sort(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

func (s Sort) orderBy() string {
	switch s {
	case SortDateAsc:
		return "date ASC"
	case SortAmountAsc:
		return "amount ASC"
	case SortAmountDesc:
		return "amount DESC"
	default:
		return "date DESC"
	}
}

// ListQuery describes one bounded, ordered, filtered read of the expenses
// table. All bounds are inclusive. Page is 1-based; All disables pagination.
type ListQuery struct {
	Category  *Category
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	StartDate *time.Time
	EndDate   *time.Time
	Sort      Sort
	Page      int
	All       bool
}

// where builds the filter clause. The owner filter comes first and is always
// present; it cannot be disabled or overridden by any query field.
func (q ListQuery) where(userID uuid.UUID) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{userID}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Category != nil {
		clauses = append(clauses, "category = "+arg(*q.Category))
	}
	if q.MinAmount != nil {
		clauses = append(clauses, "amount >= "+arg(q.MinAmount.String())+"::numeric")
	}
	if q.MaxAmount != nil {
		clauses = append(clauses, "amount <= "+arg(q.MaxAmount.String())+"::numeric")
	}
	if q.StartDate != nil {
		clauses = append(clauses, "date >= "+arg(*q.StartDate))
	}
	if q.EndDate != nil {
		clauses = append(clauses, "date <= "+arg(*q.EndDate))
	}

	return strings.Join(clauses, " AND "), args
}

// Offset returns the 0-based row offset of the requested page. Pages below 1
// are treated as page 1, matching the behaviour of the web client.
func (q ListQuery) Offset() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

func (q ListQuery) limitOffset() string {
	if q.All {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", PageSize, q.Offset())
}

// SQL renders the full SELECT for this query plus its ordered args. Amount is
// cast to text so it can be scanned losslessly into a decimal.
func (q ListQuery) SQL(userID uuid.UUID) (string, []any) {
	where, args := q.where(userID)
	sql := "SELECT id, title, amount::text, category, date, user_id FROM expenses WHERE " +
		where + " ORDER BY " + q.Sort.orderBy() + q.limitOffset()
	return sql, args
}

// CountSQL renders the matching-row count for the same filters. It runs as a
// separate statement from SQL, so the pair is not transactional: under
// concurrent writes the count and the page may disagree.
func (q ListQuery) CountSQL(userID uuid.UUID) (string, []any) {
	where, args := q.where(userID)
	return "SELECT COUNT(*) FROM expenses WHERE " + where, args
}
