package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Rahmet97/apartment-bot/internal/models"
	"github.com/Rahmet97/apartment-bot/internal/pkg/log"
)

// Notifier отправляет карточки новых объявлений в канал.
// Реализует service.Notifier для монитора.
type Notifier struct {
	client    *Client
	channelID string
}

// NewNotifier создаёт нотификатор канала.
// channelID — числовой id канала либо "@имя_канала".
func NewNotifier(client *Client, channelID string) *Notifier {
	return &Notifier{client: client, channelID: channelID}
}

// NotifyApartment отправляет карточку объявления в канал.
// Предпросмотр ссылки включён: карточка показывает фото объявления.
func (n *Notifier) NotifyApartment(ctx context.Context, apt models.Apartment) error {
	const op = "telegram.NotifyApartment"

	if err := n.client.SendMessage(ctx, n.channelID, apartmentCard(apt), false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("notification_sent",
		slog.String("op", op),
		slog.String("external_id", apt.ExternalID),
	)

	return nil
}

// apartmentCard — Markdown-карточка объявления для канала.
func apartmentCard(apt models.Apartment) string {
	var b strings.Builder

	b.WriteString("🏠 *Новая квартира найдена!*\n\n")
	fmt.Fprintf(&b, "📍 *Локация:* %s\n", apt.Location)
	fmt.Fprintf(&b, "💰 *Цена:* %s ₽/мес\n", groupDigits(apt.Price))
	fmt.Fprintf(&b, "🏠 *Комнат:* %d\n", apt.Rooms)
	fmt.Fprintf(&b, "📐 *Площадь:* %s\n", apt.Area)
	fmt.Fprintf(&b, "🌐 *Источник:* %s\n\n", apt.Source)
	fmt.Fprintf(&b, "*%s*\n\n", apt.Title)
	fmt.Fprintf(&b, "🔗 [Посмотреть объявление](%s)\n\n", apt.URL)
	fmt.Fprintf(&b, "⏰ Найдено: %s", apt.CreatedAt.Format("2006-01-02 15:04:05"))

	return b.String()
}

// groupDigits форматирует цену с разделителями тысяч: 25000 -> "25,000".
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return b.String()
}
