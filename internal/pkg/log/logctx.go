// log связывает *slog.Logger с context.Context.
//
// Монитор кладёт в контекст логгер с атрибутами цикла (cycle_id, источник),
// нижние слои достают его через From и пишут события без прокидывания
// логгера по сигнатурам.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into кладёт логгер в контекст.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From достаёт логгер из контекста (или возвращает slog.Default()).
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}

	return slog.Default()
}

// With достаёт логгер из контекста, навешивает атрибуты и кладёт обратно.
// Возвращает новый контекст и производный логгер.
func With(ctx context.Context, attrs ...any) (context.Context, *slog.Logger) {
	l := From(ctx).With(attrs...)
	return Into(ctx, l), l
}
