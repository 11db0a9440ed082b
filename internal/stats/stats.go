// Package stats computes expense aggregations. Every function is pure: it
// takes a snapshot of rows and recomputes from scratch, so results never
// drift from the underlying data.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"expensed/internal/db"
)

type DailyTotal struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type MonthlyTotal struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type CategoryTotal struct {
	Category db.Category     `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type Summary struct {
	Daily      []DailyTotal    `json:"daily"`
	Monthly    []MonthlyTotal  `json:"monthly"`
	Categories []CategoryTotal `json:"categories"`
}

// civilDay collapses a timestamp to its calendar date in its own location.
// Two expenses logged on the same local day land in the same bucket even
// when their instants differ.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DailySeries totals expenses per calendar day over the eight-day window
// ending at now's date. A record from exactly seven days ago is included no
// matter what time of day it was logged. Days without expenses are omitted,
// and the series is ascending by date.
func DailySeries(expenses []db.Expense, now time.Time) []DailyTotal {
	today := civilDay(now)
	start := today.AddDate(0, 0, -7)

	totals := map[string]decimal.Decimal{}
	for _, e := range expenses {
		day := civilDay(e.Date)
		if day.Before(start) || day.After(today) {
			continue
		}
		key := day.Format("2006-01-02")
		totals[key] = totals[key].Add(e.Amount)
	}

	series := make([]DailyTotal, 0, len(totals))
	for date, total := range totals {
		series = append(series, DailyTotal{Date: date, Total: total.Round(2)})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })

	return series
}

// MonthlySeries totals all expenses per (year, month), sorted chronologically.
// Sorting on the numeric pair keeps December 2024 ahead of January 2025.
func MonthlySeries(expenses []db.Expense) []MonthlyTotal {
	type ym struct {
		year  int
		month int
	}

	totals := map[ym]decimal.Decimal{}
	for _, e := range expenses {
		y, m, _ := e.Date.Date()
		k := ym{year: y, month: int(m)}
		totals[k] = totals[k].Add(e.Amount)
	}

	series := make([]MonthlyTotal, 0, len(totals))
	for k, total := range totals {
		series = append(series, MonthlyTotal{Year: k.year, Month: k.month, Total: total.Round(2)})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})

	return series
}

// CategoryBreakdown totals all expenses per category. The result is a set;
// it is emitted sorted by category name only so the JSON stays stable.
func CategoryBreakdown(expenses []db.Expense) []CategoryTotal {
	totals := map[db.Category]decimal.Decimal{}
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	breakdown := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		breakdown = append(breakdown, CategoryTotal{Category: category, Total: total.Round(2)})
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Category < breakdown[j].Category })

	return breakdown
}

func Summarize(expenses []db.Expense, now time.Time) Summary {
	return Summary{
		Daily:      DailySeries(expenses, now),
		Monthly:    MonthlySeries(expenses),
		Categories: CategoryBreakdown(expenses),
	}
}
