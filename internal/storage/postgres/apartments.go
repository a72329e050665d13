package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rahmet97/apartment-bot/internal/models"
	"github.com/Rahmet97/apartment-bot/internal/pkg/log"
	"github.com/Rahmet97/apartment-bot/internal/storage"

	"github.com/jackc/pgx/v5"
)

const apartmentColumns = `id, external_id, title, price, url, location, rooms, area, source, created_at, notified`

// InsertIfNew сохраняет объявление, если его ещё нет.
//
// Дубликаты отсеиваются в два эшелона:
//  1. проверки external_id -> location -> url с коротким замыканием;
//  2. ограничения уникальности БД (external_id, url) через ON CONFLICT DO NOTHING.
//
// Исчерпание повторов при блокировке и нарушение уникальности дают (false, nil):
// объявление считается уже существующим, пропуск дешевле повторного уведомления.
func (s *Storage) InsertIfNew(ctx context.Context, apt models.Apartment) (bool, error) {
	const op = "storage.postgres.InsertIfNew"

	// Порядок проверок фиксирован; sentinel-локация участвует наравне со всеми.
	if exists, err := s.ExistsByExternalID(ctx, apt.ExternalID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	} else if exists {
		return false, nil
	}

	if exists, err := s.ExistsByLocation(ctx, apt.Location); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	} else if exists {
		return false, nil
	}

	if exists, err := s.ExistsByURL(ctx, apt.URL); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	} else if exists {
		return false, nil
	}

	createdAt := apt.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.nowFn()
	}

	var inserted bool
	err := s.withBusyRetry(ctx, func(ctx context.Context) error {
		tag, execErr := s.db.Exec(ctx, `
		INSERT INTO apartments (external_id, title, price, url, location, rooms, area, source, created_at, notified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE)
		ON CONFLICT DO NOTHING
		`, apt.ExternalID, apt.Title, apt.Price, apt.URL, apt.Location, apt.Rooms, apt.Area,
			string(apt.Source), createdAt.UTC())
		if execErr != nil {
			return execErr
		}

		inserted = tag.RowsAffected() == 1
		return nil
	})
	if err != nil {
		if isBusy(err) {
			log.From(ctx).Warn("apartment_insert_busy",
				slog.String("op", op),
				slog.String("external_id", apt.ExternalID),
				slog.String("err", err.Error()))
			return false, nil
		}
		if isUniqueViolation(err) {
			// Конкурирующий писатель успел первым.
			return false, nil
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return inserted, nil
}

// ExistsByExternalID — есть ли объявление с таким external_id.
func (s *Storage) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	const op = "storage.postgres.ExistsByExternalID"
	return s.exists(ctx, op, `SELECT EXISTS (SELECT 1 FROM apartments WHERE external_id = $1)`, externalID)
}

// ExistsByLocation — есть ли объявление с такой локацией.
func (s *Storage) ExistsByLocation(ctx context.Context, location string) (bool, error) {
	const op = "storage.postgres.ExistsByLocation"
	return s.exists(ctx, op, `SELECT EXISTS (SELECT 1 FROM apartments WHERE location = $1)`, location)
}

// ExistsByURL — есть ли объявление с такой ссылкой.
func (s *Storage) ExistsByURL(ctx context.Context, url string) (bool, error) {
	const op = "storage.postgres.ExistsByURL"
	return s.exists(ctx, op, `SELECT EXISTS (SELECT 1 FROM apartments WHERE url = $1)`, url)
}

// exists — общий точечный запрос существования. При исчерпании повторов
// отвечает (true, nil): консервативная сторона — счесть дубликатом.
func (s *Storage) exists(ctx context.Context, op, query string, arg any) (bool, error) {
	var exists bool
	err := s.withBusyRetry(ctx, func(ctx context.Context) error {
		return s.db.QueryRow(ctx, query, arg).Scan(&exists)
	})
	if err != nil {
		if isBusy(err) {
			log.From(ctx).Warn("apartment_exists_busy",
				slog.String("op", op),
				slog.String("err", err.Error()))
			return true, nil
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// UnnotifiedApartments возвращает объявления без отправленного уведомления,
// самые свежие первыми. Сортировка фиксирована: created_at DESC, id DESC.
func (s *Storage) UnnotifiedApartments(ctx context.Context) ([]models.Apartment, error) {
	const op = "storage.postgres.UnnotifiedApartments"

	rows, err := s.db.Query(ctx, `
	SELECT `+apartmentColumns+`
	FROM apartments
	WHERE notified = FALSE
	ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := collectApartments(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// MarkNotified помечает объявление отправленным. Повторный вызов — no-op;
// отсутствие строки — storage.ErrNotFound. Исчерпание повторов при блокировке
// возвращается ошибкой: объявление остаётся в очереди на следующий цикл.
func (s *Storage) MarkNotified(ctx context.Context, id int64) error {
	const op = "storage.postgres.MarkNotified"

	var affected int64
	err := s.withBusyRetry(ctx, func(ctx context.Context) error {
		tag, execErr := s.db.Exec(ctx, `UPDATE apartments SET notified = TRUE WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}

		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// Stats возвращает сводную статистику по накопленным объявлениям.
func (s *Storage) Stats(ctx context.Context) (*models.Stats, error) {
	const op = "storage.postgres.Stats"

	var stats models.Stats
	err := s.db.QueryRow(ctx, `
	SELECT COUNT(*),
	       COALESCE(AVG(price), 0),
	       COALESCE(MIN(price), 0)
	FROM apartments
	`).Scan(&stats.Total, &stats.AvgPrice, &stats.MinPrice)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	since := s.nowFn().Add(-24 * time.Hour)
	err = s.db.QueryRow(ctx, `
	SELECT COUNT(*) FROM apartments WHERE created_at > $1
	`, since).Scan(&stats.Last24h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, `
	SELECT source, COUNT(*)
	FROM apartments
	GROUP BY source
	ORDER BY COUNT(*) DESC, source ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc models.SourceCount
		var src string
		if scanErr := rows.Scan(&src, &sc.Count); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		sc.Source = models.Source(src)
		stats.BySource = append(stats.BySource, sc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return &stats, nil
}

// RecentApartments возвращает последние limit объявлений.
func (s *Storage) RecentApartments(ctx context.Context, limit int) ([]models.Apartment, error) {
	const op = "storage.postgres.RecentApartments"

	if limit <= 0 {
		// Защита от нуля/отрицательного значения.
		limit = 1
	}

	rows, err := s.db.Query(ctx, `
	SELECT `+apartmentColumns+`
	FROM apartments
	ORDER BY created_at DESC, id DESC
	LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := collectApartments(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// CheapestApartments возвращает limit самых дешёвых объявлений.
func (s *Storage) CheapestApartments(ctx context.Context, limit int) ([]models.Apartment, error) {
	const op = "storage.postgres.CheapestApartments"

	if limit <= 0 {
		limit = 1
	}

	rows, err := s.db.Query(ctx, `
	SELECT `+apartmentColumns+`
	FROM apartments
	ORDER BY price ASC, created_at DESC, id DESC
	LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := collectApartments(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// collectApartments вычитывает строки выборки в слайс доменных сущностей.
func collectApartments(rows pgx.Rows) ([]models.Apartment, error) {
	defer rows.Close()

	var items []models.Apartment
	for rows.Next() {
		var apt models.Apartment
		var src string
		if err := rows.Scan(
			&apt.ID,
			&apt.ExternalID,
			&apt.Title,
			&apt.Price,
			&apt.URL,
			&apt.Location,
			&apt.Rooms,
			&apt.Area,
			&src,
			&apt.CreatedAt,
			&apt.Notified,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		apt.Source = models.Source(src)
		// Нормализация в UTC.
		apt.CreatedAt = apt.CreatedAt.UTC()

		items = append(items, apt)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows: %w", rows.Err())
	}

	return items, nil
}
