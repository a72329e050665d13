// service содержит бизнес-логику сервиса мониторинга объявлений:
// цикл опроса источников, доведение объявлений до инвариантов домена
// и запросы к накопленной базе.
package service

import (
	"errors"

	"github.com/Rahmet97/apartment-bot/internal/config"
	"github.com/Rahmet97/apartment-bot/internal/storage"
)

var (
	// ErrUnavailable — хранилище недоступно.
	// Транспорт: HTTP 503; бот отвечает «временно недоступно».
	ErrUnavailable = errors.New("storage unavailable")
)

// Service — описывает бизнес-логику сервиса мониторинга.
type Service struct {
	storage storage.Storage
	cfg     config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, cfg config.Config) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}
