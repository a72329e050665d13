// http собирает служебный HTTP-интерфейс сервиса мониторинга:
// проверка живости и read-only доступ к накопленным данным.
//
// Принципы:
//   - middleware в порядке Recover -> RequestID -> Logging -> Timeout;
//   - ответы — JSON с единым форматом ошибок;
//   - внутренние ошибки сервиса наружу не раскрываются.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Rahmet97/apartment-bot/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		Recover(),            // безопасно ловим паники
		RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := newHandlers(svc)

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех эндпойнтов.
func registerRoutes(r chi.Router, h *handlers) {
	r.Get("/healthz", h.Healthz)
	r.Get("/stats", h.Stats)
	r.Get("/recent", h.Recent)
	r.Get("/runs", h.Runs)
}
