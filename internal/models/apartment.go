// models содержит доменные сущности сервиса мониторинга объявлений.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import "time"

// Source — источник объявлений.
type Source string

const (
	// SourceAvito — объявления с Avito.
	SourceAvito Source = "Avito"
	// SourceCian — объявления с Cian.
	SourceCian Source = "Cian"
)

// Sentinel-значения доменных полей.
const (
	// LocationUnknown — локация не извлечена ни одним способом.
	LocationUnknown = "Не указано"
	// AreaUnknown — площадь не извлечена ни одним способом.
	AreaUnknown = "Не указано"

	// MaxTitleLen - предел длины заголовка.
	MaxTitleLen = 200
	// MaxLocationLen - предел длины локации.
	MaxLocationLen = 100
	// MaxAreaLen - предел длины строки площади.
	MaxAreaLen = 50

	// MinRooms/MaxRooms — допустимый диапазон количества комнат.
	MinRooms = 1
	MaxRooms = 10

	// MaxPrice — верхняя граница правдоподобной цены аренды, руб/мес.
	MaxPrice = 200000
)

// Apartment — доменная сущность объявления об аренде квартиры.
//
// Особенности:
//   - ExternalID — стабильный идентификатор вида "<источник>_<hash(url)%1e6>";
//   - Временные метки — в UTC.
type Apartment struct {
	// ID — суррогатный идентификатор строки в хранилище (0 до вставки).
	ID int64
	// ExternalID — детерминированный идентификатор объявления у источника.
	ExternalID string
	// Title - заголовок объявления, не длиннее MaxTitleLen.
	Title string
	// Price - цена аренды в рублях за месяц, [0, MaxPrice].
	Price int64
	// URL - абсолютная каноническая ссылка на объявление.
	URL string
	// Location - адрес/район, не длиннее MaxLocationLen; LocationUnknown при неудаче.
	Location string
	// Rooms - количество комнат, [MinRooms, MaxRooms].
	Rooms int
	// Area - площадь в виде "<n> м²", не длиннее MaxAreaLen; AreaUnknown при неудаче.
	Area string
	// Source - источник объявления.
	Source Source
	// CreatedAt - время первого обнаружения объявления (UTC).
	CreatedAt time.Time
	// Notified - отправлено ли уведомление по объявлению.
	Notified bool
}

// SourceCount — количество объявлений по одному источнику.
type SourceCount struct {
	Source Source
	Count  int64
}

// Stats — сводная статистика по накопленным объявлениям.
//
// Особенности:
//   - AvgPrice/MinPrice равны нулю при пустой базе;
//   - BySource отсортирован по убыванию Count.
type Stats struct {
	// Total — всего объявлений в базе.
	Total int64
	// Last24h — обнаружено за последние сутки.
	Last24h int64
	// AvgPrice - средняя цена, руб/мес.
	AvgPrice float64
	// MinPrice - минимальная цена, руб/мес.
	MinPrice int64
	// BySource - распределение по источникам.
	BySource []SourceCount
}

// RunStatus — итог прохода скрейпера по источнику.
type RunStatus string

const (
	// RunOK — проход завершился без ошибок.
	RunOK RunStatus = "ok"
	// RunEmpty — проход завершился без ошибок, но источник не дал объявлений.
	RunEmpty RunStatus = "empty"
	// RunError — проход завершился ошибкой источника.
	RunError RunStatus = "error"
)

// ScrapeRun — запись о проходе скрейпера по одному источнику за цикл.
type ScrapeRun struct {
	// ID — суррогатный идентификатор записи (0 до вставки).
	ID int64
	// Source - источник прохода.
	Source Source
	// Status - итог прохода.
	Status RunStatus
	// Found - сколько объявлений извлечено из выдачи.
	Found int
	// Inserted - сколько из них оказались новыми и сохранены.
	Inserted int
	// Err - текст ошибки источника, пустой при успехе.
	Err string
	// Duration - длительность прохода.
	Duration time.Duration
	// StartedAt - время начала прохода (UTC).
	StartedAt time.Time
}
