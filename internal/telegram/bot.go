package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Rahmet97/apartment-bot/internal/models"
	"github.com/Rahmet97/apartment-bot/internal/pkg/log"
)

// Queries — читающее API сервиса, нужное командному боту.
type Queries interface {
	StatsSummary(ctx context.Context) (*models.Stats, error)
	RecentApartments(ctx context.Context, limit int) ([]models.Apartment, error)
	CheapestApartments(ctx context.Context, limit int) ([]models.Apartment, error)
}

// pollRetryPause — пауза перед повтором после неудачного getUpdates.
const pollRetryPause = 3 * time.Second

const startMessage = `🏠 *Добро пожаловать в бот мониторинга квартир!*

Я помогу вам отслеживать новые предложения аренды квартир.

*Доступные команды:*
/help - Показать это сообщение
/stats - Статистика по найденным квартирам
/recent - Последние найденные квартиры
/cheap - Самые дешевые квартиры

Бот автоматически мониторит Avito и Cian.`

const helpMessage = `🤖 *Помощь по боту мониторинга квартир*

*Команды:*
/start - Приветствие и основная информация
/stats - Показать статистику найденных квартир
/recent - Показать последние найденные квартиры
/cheap - Показать самые дешевые квартиры

*Как работает бот:*
• Периодически сканирует Avito и Cian
• Автоматически отправляет уведомления о новых находках
• Сохраняет все объявления в базу данных

*Источники:*
• Avito.ru
• Cian.ru`

const (
	// replyUnavailable — ответ при недоступном хранилище; внутренние детали не раскрываются.
	replyUnavailable = "❌ Сервис временно недоступен, попробуйте позже"
	replyEmpty       = "🔍 Пока не найдено ни одной квартиры"
)

// Bot — командный фронтенд: /start, /help, /stats, /recent, /cheap.
//
// Особенности:
//   - обновления читаются long-poll'ом getUpdates с возрастающим offset;
//   - команды только читают данные; любая ошибка запроса сводится к
//     одному безопасному ответу replyUnavailable;
//   - останавливается по ctx.
type Bot struct {
	client      *Client
	queries     Queries
	pollTimeout time.Duration
}

// NewBot создаёт командный фронтенд.
func NewBot(client *Client, queries Queries, pollTimeout time.Duration) *Bot {
	if pollTimeout <= 0 {
		pollTimeout = 30 * time.Second
	}

	return &Bot{client: client, queries: queries, pollTimeout: pollTimeout}
}

// Run крутит long-poll цикл до отмены ctx.
// Ошибка одного запроса getUpdates не останавливает бота.
func (b *Bot) Run(ctx context.Context) error {
	const op = "telegram.Run"

	lg := log.From(ctx)
	lg.Info("bot_start",
		slog.String("op", op),
		slog.Duration("poll_timeout", b.pollTimeout),
	)

	var offset int64
	for {
		if ctx.Err() != nil {
			lg.Info("bot_stop", slog.String("op", op))
			return nil
		}

		updates, err := b.client.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				lg.Info("bot_stop", slog.String("op", op))
				return nil
			}

			lg.Warn("get_updates_error",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)

			select {
			case <-ctx.Done():
				lg.Info("bot_stop", slog.String("op", op))
				return nil
			case <-time.After(pollRetryPause):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

// handleUpdate разбирает одно обновление и отвечает на известные команды.
// Неизвестные команды и обычные сообщения молча пропускаются.
func (b *Bot) handleUpdate(ctx context.Context, upd Update) {
	const op = "telegram.handleUpdate"

	if upd.Message == nil {
		return
	}

	cmd := command(upd.Message.Text)
	if cmd == "" {
		return
	}

	lg := log.From(ctx)

	var reply string
	var disablePreview bool

	switch cmd {
	case "/start":
		reply = startMessage
	case "/help":
		reply = helpMessage
	case "/stats":
		reply = b.statsReply(ctx)
	case "/recent":
		reply = b.listReply(ctx, "🕐 *Последние найденные квартиры:*", b.queries.RecentApartments)
		disablePreview = true
	case "/cheap":
		reply = b.listReply(ctx, "💰 *Самые дешевые квартиры:*", b.queries.CheapestApartments)
		disablePreview = true
	default:
		return
	}

	lg.Info("bot_command",
		slog.String("op", op),
		slog.String("command", cmd),
		slog.Int64("chat_id", upd.Message.Chat.ID),
	)

	chatID := strconv.FormatInt(upd.Message.Chat.ID, 10)
	if err := b.client.SendMessage(ctx, chatID, reply, disablePreview); err != nil {
		lg.Warn("reply_error",
			slog.String("op", op),
			slog.String("command", cmd),
			slog.String("err", err.Error()),
		)
	}
}

// command выделяет команду из текста: "/stats@my_bot 10" -> "/stats".
func command(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}

	if i := strings.IndexAny(text, " \t\n"); i > 0 {
		text = text[:i]
	}
	if i := strings.Index(text, "@"); i > 0 {
		text = text[:i]
	}

	return text
}

// statsReply собирает сводку /stats.
func (b *Bot) statsReply(ctx context.Context) string {
	stats, err := b.queries.StatsSummary(ctx)
	if err != nil {
		return replyUnavailable
	}

	var sb strings.Builder
	sb.WriteString("📊 *Статистика мониторинга квартир*\n\n")
	sb.WriteString("📈 *Общая статистика:*\n")
	fmt.Fprintf(&sb, "• Всего найдено: %d квартир\n", stats.Total)
	fmt.Fprintf(&sb, "• За последние 24 часа: %d квартир\n", stats.Last24h)
	fmt.Fprintf(&sb, "• Средняя цена: %s ₽\n", groupDigits(int64(math.Round(stats.AvgPrice))))
	fmt.Fprintf(&sb, "• Минимальная цена: %s ₽\n\n", groupDigits(stats.MinPrice))
	sb.WriteString("📋 *По источникам:*")
	for _, sc := range stats.BySource {
		fmt.Fprintf(&sb, "\n• %s: %d квартир", sc.Source, sc.Count)
	}

	return sb.String()
}

// listReply собирает нумерованный список для /recent и /cheap.
// Лимит 0 — сервис подставит серверный default.
func (b *Bot) listReply(ctx context.Context, header string, query func(context.Context, int) ([]models.Apartment, error)) string {
	apts, err := query(ctx, 0)
	if err != nil {
		return replyUnavailable
	}
	if len(apts) == 0 {
		return replyEmpty
	}

	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	for i, apt := range apts {
		fmt.Fprintf(&sb, "%d. *%s*\n", i+1, shortTitle(apt.Title))
		fmt.Fprintf(&sb, "💰 %s ₽ | 📍 %s\n", groupDigits(apt.Price), apt.Location)
		fmt.Fprintf(&sb, "🌐 %s | ⏰ %s\n", apt.Source, apt.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&sb, "🔗 [Посмотреть](%s)\n\n", apt.URL)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// shortTitle режет заголовок до 50 рун с многоточием (формат списка).
func shortTitle(title string) string {
	r := []rune(title)
	if len(r) <= 50 {
		return title
	}

	return string(r[:50]) + "..."
}
