// postgres — реализация storage.Storage поверх PostgreSQL (pgx/v5 + pgxpool).
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rahmet97/apartment-bot/internal/storage"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Options — политика повторов при конкуренции за БД.
type Options struct {
	// BusyRetries — сколько всего попыток получает операция.
	BusyRetries int
	// BusyRetryDelay — фиксированная пауза между попытками.
	BusyRetryDelay time.Duration
}

func (o *Options) withDefaults() {
	if o.BusyRetries < 1 {
		o.BusyRetries = 3
	}
	if o.BusyRetryDelay <= 0 {
		o.BusyRetryDelay = time.Second
	}
}

type Storage struct {
	db    *pgxpool.Pool
	opts  Options
	nowFn func() time.Time
}

// New создает новое подключение к PostgreSQL.
func New(ctx context.Context, dbURL string, opts Options) (*Storage, error) {
	const op = "storage.postgres.New"

	opts.withDefaults()

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db, opts: opts, nowFn: func() time.Time { return time.Now().UTC() }}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.db.Close()
}

// withBusyRetry выполняет fn, повторяя её при блокировках и конфликтах
// сериализации до исчерпания попыток. Прочие ошибки возвращаются сразу.
// Отмена контекста во время паузы прерывает повторы.
func (s *Storage) withBusyRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var last error

	for attempt := 1; attempt <= s.opts.BusyRetries; attempt++ {
		last = fn(ctx)
		if last == nil || !isBusy(last) {
			return last
		}
		if attempt == s.opts.BusyRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.opts.BusyRetryDelay):
		}
	}

	return fmt.Errorf("busy after %d attempts: %w", s.opts.BusyRetries, last)
}

// isBusy — ошибка относится к классу «БД занята»: блокировка, дедлок
// или конфликт сериализации.
func isBusy(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgerrcode.LockNotAvailable, pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return true
	}

	return false
}

// isUniqueViolation — нарушение ограничения уникальности.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Проверка на соответствие интерфейсу Storage.
var _ storage.Storage = (*Storage)(nil)
