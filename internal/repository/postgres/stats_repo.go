package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"receiptflow/internal/domain"
	"receiptflow/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const pageStatsQuery = `SELECT
	COUNT(*) AS total_pages,
	COUNT(CASE WHEN category_status = 'pending' THEN 1 END) AS pending_pages,
	COUNT(CASE WHEN category_status = 'classified' THEN 1 END) AS classified_pages,
	COUNT(CASE WHEN category_status = 'failed' THEN 1 END) AS failed_pages
FROM uploaded_files_page`

const categoryCountsQuery = `SELECT category, COUNT(*) AS count
FROM uploaded_files_page
WHERE category IS NOT NULL
GROUP BY category
ORDER BY count DESC, category`

const dailyCountsQuery = `SELECT date_trunc('day', uploaded_at) AS day, COUNT(*) AS count
FROM uploaded_files_page
GROUP BY day
ORDER BY day`

func (r *statsRepo) GetStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, pageStatsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats pages: %w", err)
	}

	if err := r.db.SelectContext(ctx, &stats.Categories, categoryCountsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats categories: %w", err)
	}

	if err := r.db.SelectContext(ctx, &stats.PagesPerDay, dailyCountsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats daily: %w", err)
	}

	return &stats, nil
}
