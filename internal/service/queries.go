package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rahmet97/apartment-bot/internal/models"
	"github.com/Rahmet97/apartment-bot/internal/pkg/log"
)

// normalizeLimit приводит limit к правилам конфига:
// - limit <= 0 -> cfg.Limits.Default;
// - limit > max -> cfg.Limits.Max.
func (s *Service) normalizeLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.Limits.Default
	}

	if s.cfg.Limits.Max > 0 && limit > s.cfg.Limits.Max {
		limit = s.cfg.Limits.Max
	}

	return limit
}

// StatsSummary возвращает сводную статистику по накопленным объявлениям.
//
// Ошибки:
// - ErrUnavailable — хранилище недоступно (исходная ошибка остаётся в логе).
func (s *Service) StatsSummary(ctx context.Context) (*models.Stats, error) {
	const op = "service.queries.StatsSummary"

	lg := log.From(ctx)
	lg.Info("stats_request", slog.String("op", op))

	stats, err := s.storage.Stats(ctx)
	if err != nil {
		lg.Error("stats_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	lg.Info("stats_ok",
		slog.String("op", op),
		slog.Int64("total", stats.Total),
	)

	return stats, nil
}

// RecentApartments возвращает последние найденные объявления.
// Лимит нормализуется по cfg.Limits (см. normalizeLimit).
//
// Ошибки:
// - ErrUnavailable — хранилище недоступно (исходная ошибка остаётся в логе).
func (s *Service) RecentApartments(ctx context.Context, limit int) ([]models.Apartment, error) {
	const op = "service.queries.RecentApartments"

	lg := log.From(ctx)
	lg.Info("recent_request",
		slog.String("op", op),
		slog.Int("limit", limit),
	)

	limit = s.normalizeLimit(limit)

	apts, err := s.storage.RecentApartments(ctx, limit)
	if err != nil {
		lg.Error("recent_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	lg.Info("recent_ok",
		slog.String("op", op),
		slog.Int("items", len(apts)),
	)

	return apts, nil
}

// CheapestApartments возвращает самые дешёвые объявления.
// Лимит нормализуется по cfg.Limits (см. normalizeLimit).
//
// Ошибки:
// - ErrUnavailable — хранилище недоступно (исходная ошибка остаётся в логе).
func (s *Service) CheapestApartments(ctx context.Context, limit int) ([]models.Apartment, error) {
	const op = "service.queries.CheapestApartments"

	lg := log.From(ctx)
	lg.Info("cheapest_request",
		slog.String("op", op),
		slog.Int("limit", limit),
	)

	limit = s.normalizeLimit(limit)

	apts, err := s.storage.CheapestApartments(ctx, limit)
	if err != nil {
		lg.Error("cheapest_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	lg.Info("cheapest_ok",
		slog.String("op", op),
		slog.Int("items", len(apts)),
	)

	return apts, nil
}

// RecentRuns возвращает последние записи журнала проходов скрейперов.
// Лимит нормализуется по cfg.Limits (см. normalizeLimit).
//
// Ошибки:
// - ErrUnavailable — хранилище недоступно (исходная ошибка остаётся в логе).
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]models.ScrapeRun, error) {
	const op = "service.queries.RecentRuns"

	lg := log.From(ctx)
	lg.Info("runs_request",
		slog.String("op", op),
		slog.Int("limit", limit),
	)

	limit = s.normalizeLimit(limit)

	runs, err := s.storage.LastRuns(ctx, limit)
	if err != nil {
		lg.Error("runs_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	lg.Info("runs_ok",
		slog.String("op", op),
		slog.Int("items", len(runs)),
	)

	return runs, nil
}
