package service

import (
	"expensed/internal/cache"
	"expensed/internal/db"

	"github.com/charmbracelet/log"
)

type Services struct {
	Expenses ExpenseService
	Stats    StatsService
}

func New(store *db.DB, c *cache.Cache, lg *log.Logger) *Services {
	return &Services{
		Expenses: newExpSvc(store, c, lg.WithPrefix("exp")),
		Stats:    newStatsSvc(store, c, lg.WithPrefix("stats")),
	}
}
