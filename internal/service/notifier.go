package service

import (
	"context"

	"github.com/Rahmet97/apartment-bot/internal/models"
)

// Notifier отправляет уведомление об одном объявлении.
//
// Ошибка отправки не останавливает цикл: объявление остаётся
// неуведомлённым и попадёт в следующий проход.
type Notifier interface {
	NotifyApartment(ctx context.Context, apt models.Apartment) error
}
