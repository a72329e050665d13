package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Rahmet97/apartment-bot/internal/models"
)

// RecordRun сохраняет запись о проходе скрейпера по источнику.
func (s *Storage) RecordRun(ctx context.Context, run models.ScrapeRun) error {
	const op = "storage.postgres.RecordRun"

	startedAt := run.StartedAt
	if startedAt.IsZero() {
		startedAt = s.nowFn()
	}

	_, err := s.db.Exec(ctx, `
	INSERT INTO scrape_runs (source, status, found, inserted, error, duration_ms, started_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, string(run.Source), string(run.Status), run.Found, run.Inserted, run.Err,
		run.Duration.Milliseconds(), startedAt.UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LastRuns возвращает последние limit записей журнала проходов.
func (s *Storage) LastRuns(ctx context.Context, limit int) ([]models.ScrapeRun, error) {
	const op = "storage.postgres.LastRuns"

	if limit <= 0 {
		limit = 1
	}

	rows, err := s.db.Query(ctx, `
	SELECT id, source, status, found, inserted, error, duration_ms, started_at
	FROM scrape_runs
	ORDER BY started_at DESC, id DESC
	LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var runs []models.ScrapeRun
	for rows.Next() {
		var run models.ScrapeRun
		var src, status string
		var durationMS int64
		if scanErr := rows.Scan(
			&run.ID,
			&src,
			&status,
			&run.Found,
			&run.Inserted,
			&run.Err,
			&durationMS,
			&run.StartedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		run.Source = models.Source(src)
		run.Status = models.RunStatus(status)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		run.StartedAt = run.StartedAt.UTC()

		runs = append(runs, run)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return runs, nil
}
