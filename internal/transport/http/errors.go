package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rahmet97/apartment-bot/internal/service"
)

// errInvalidArgument — локальная ошибка разбора параметров запроса.
var errInvalidArgument = errors.New("invalid argument")

// apiError — единый формат ошибки наружу.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// errorResponse — корневой объект в ответе об ошибке.
type errorResponse struct {
	Error apiError `json:"error"`
}

// toHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - errInvalidArgument (битые параметры запроса) -> 400/invalid_argument;
//   - service.ErrUnavailable -> 503/unavailable;
//   - прочее, включая nil, -> 500/internal (без утечки деталей).
func toHTTP(err error) (int, errorResponse) {
	switch {
	case errors.Is(err, errInvalidArgument):
		return http.StatusBadRequest, errorResponse{
			Error: apiError{Code: "invalid_argument", Message: "invalid argument"},
		}
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, errorResponse{
			Error: apiError{Code: "unavailable", Message: "service unavailable"},
		}
	default:
		return http.StatusInternalServerError, errorResponse{
			Error: apiError{Code: "internal", Message: "internal error"},
		}
	}
}

// writeError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := toHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
