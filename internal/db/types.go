package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single row of the expenses table. ID and UserID are assigned
// server-side and never change after creation.
type Expense struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Category Category        `json:"category"`
	Date     time.Time       `json:"date"`
	UserID   uuid.UUID       `json:"user_id"`
}

type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryBills         Category = "Bills"
	CategoryShopping      Category = "Shopping"
	CategoryHealth        Category = "Health"
	CategoryEntertainment Category = "Entertainment"
	CategoryLuxury        Category = "Luxury"
	CategoryOther         Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryBills,
	CategoryShopping,
	CategoryHealth,
	CategoryEntertainment,
	CategoryLuxury,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

type CreateExpenseParams struct {
	UserID   uuid.UUID
	Title    string
	Amount   decimal.Decimal
	Category Category
	Date     time.Time
}

type UpdateExpenseParams struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Title    string
	Amount   decimal.Decimal
	Category Category
	Date     time.Time
}
