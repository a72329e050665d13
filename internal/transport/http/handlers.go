package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Rahmet97/apartment-bot/internal/service"
)

// handlers агрегирует зависимости эндпойнтов.
type handlers struct {
	service *service.Service
}

func newHandlers(svc *service.Service) *handlers {
	return &handlers{service: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через writeError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// limitQuery разбирает необязательный query-параметр limit.
// Отсутствие параметра -> 0, лимит по умолчанию подставит сервис.
func limitQuery(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, errInvalidArgument
	}

	return int(n), nil
}

// Healthz — проверка живости процесса.
func (h *handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Stats отдаёт сводную статистику по накопленным объявлениям.
func (h *handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.StatsSummary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statsViewFrom(stats))
}

// Recent отдаёт последние найденные объявления.
func (h *handlers) Recent(w http.ResponseWriter, r *http.Request) {
	limit, err := limitQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	apts, err := h.service.RecentApartments(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, apartmentsResponse{Items: apartmentViewsFrom(apts)})
}

// Runs отдаёт журнал последних проходов скрейперов.
func (h *handlers) Runs(w http.ResponseWriter, r *http.Request) {
	limit, err := limitQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	runs, err := h.service.RecentRuns(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, runsResponse{Items: runViewsFrom(runs)})
}
