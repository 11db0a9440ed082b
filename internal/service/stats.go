package service

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"expensed/internal/cache"
	"expensed/internal/db"
	"expensed/internal/stats"
)

// statsCacheTTL is short because the daily window shifts at midnight and a
// stale summary is worse than a recomputed one.
const statsCacheTTL = 5 * time.Minute

func statsCacheKey(userID uuid.UUID) string {
	return "stats:" + userID.String()
}

type StatsService interface {
	Summary(ctx context.Context, userID uuid.UUID) (stats.Summary, error)
}

type statsSvc struct {
	store *db.DB
	cache *cache.Cache
	log   *log.Logger
	now   func() time.Time
}

func newStatsSvc(store *db.DB, c *cache.Cache, lg *log.Logger) StatsService {
	return &statsSvc{store: store, cache: c, log: lg, now: time.Now}
}

// Summary recomputes all three aggregations from the user's full history.
// Results are cached per user and dropped on every mutation.
func (s *statsSvc) Summary(ctx context.Context, userID uuid.UUID) (stats.Summary, error) {
	key := statsCacheKey(userID)

	var cached stats.Summary
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	rows, _, err := s.store.ListExpenses(ctx, userID, db.ListQuery{Sort: db.SortDateDesc, All: true})
	if err != nil {
		return stats.Summary{}, wrapErr("StatsService.Summary", err)
	}

	summary := stats.Summarize(rows, s.now())
	s.cache.SetJSON(ctx, key, summary, statsCacheTTL)

	return summary, nil
}
