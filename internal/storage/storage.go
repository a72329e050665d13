// storage определяет контракты доступа к БД сервиса мониторинга.
package storage

import (
	"context"
	"errors"

	"github.com/Rahmet97/apartment-bot/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
)

// ApartmentStorage описывает операции над сущностью models.Apartment.
//
// Политика отказов при конкуренции за БД фиксирована контрактом:
//   - операции повторяются при блокировках/конфликтах сериализации
//     ограниченное число раз с фиксированной паузой;
//   - Exists* при исчерпании повторов считают объявление существующим;
//   - InsertIfNew при исчерпании повторов и при нарушении уникальности
//     сообщает (false, nil), а не ошибку.
//
// Пропущенное объявление дешевле повторного уведомления.
type ApartmentStorage interface {
	// InsertIfNew сохраняет объявление, если его ещё нет.
	// Дубликаты отсеиваются проверками в порядке external_id -> location -> url
	// (первое совпадение останавливает проверку), затем ограничениями
	// уникальности самой БД.
	InsertIfNew(ctx context.Context, apt models.Apartment) (bool, error)
	// ExistsByExternalID — есть ли объявление с таким external_id.
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
	// ExistsByLocation — есть ли объявление с такой локацией.
	// Sentinel-локация участвует в проверке наравне с обычными значениями.
	ExistsByLocation(ctx context.Context, location string) (bool, error)
	// ExistsByURL — есть ли объявление с такой ссылкой.
	ExistsByURL(ctx context.Context, url string) (bool, error)
	// UnnotifiedApartments возвращает объявления без отправленного
	// уведомления, самые свежие первыми.
	UnnotifiedApartments(ctx context.Context) ([]models.Apartment, error)
	// MarkNotified помечает объявление отправленным (переход только 0 -> 1).
	// Повторный вызов по уже отправленному — no-op; отсутствие строки — ErrNotFound.
	MarkNotified(ctx context.Context, id int64) error
	// Stats возвращает сводную статистику по базе.
	Stats(ctx context.Context) (*models.Stats, error)
	// RecentApartments возвращает последние limit объявлений (created_at DESC).
	RecentApartments(ctx context.Context, limit int) ([]models.Apartment, error)
	// CheapestApartments возвращает limit самых дешёвых объявлений (price ASC).
	CheapestApartments(ctx context.Context, limit int) ([]models.Apartment, error)
}

// RunStorage описывает журнал проходов скрейперов.
type RunStorage interface {
	// RecordRun сохраняет запись о проходе по источнику.
	RecordRun(ctx context.Context, run models.ScrapeRun) error
	// LastRuns возвращает последние limit записей журнала (started_at DESC).
	LastRuns(ctx context.Context, limit int) ([]models.ScrapeRun, error)
}

// Storage задаёт контракт доступа к хранилищу для сервиса мониторинга.
type Storage interface {
	ApartmentStorage
	RunStorage
	Close()
}
