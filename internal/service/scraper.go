package service

import (
	"context"

	"github.com/Rahmet97/apartment-bot/internal/models"
)

// Scraper описывает абстракцию источника объявлений (Авито, Циан и т.п.),
// который загружает страницу выдачи и возвращает доменные объекты.
//
// Требования к реализации:
// 1) Поля ID/CreatedAt/Notified в возвращаемых объявлениях должны быть
// нулевыми — их проставляют оркестратор и хранилище.
// 2) URL должен быть абсолютным: от него строится ExternalID и на нём
// держится дедупликация на уровне БД.
// 3) Ошибка возвращается только при отказе источника; пустая выдача и
// троттлинг (429/403) — это (nil, nil).
// 4) Реализация обязана уважать ctx (отмена/таймауты).
type Scraper interface {
	Listings(ctx context.Context, searchURL string, maxPrice int64) ([]models.Apartment, error)
	Source() models.Source
}

// SourceJob — один источник в цикле мониторинга: скрейпер и его страница
// выдачи. Порядок jobs задаёт порядок опроса.
type SourceJob struct {
	Scraper Scraper
	URL     string
}
