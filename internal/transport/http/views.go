package http

import (
	"github.com/Rahmet97/apartment-bot/internal/models"
)

// Представления ответов. Временные метки — Unix UTC.

type apartmentsResponse struct {
	Items []apartmentView `json:"items"`
}

type apartmentView struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Title      string `json:"title"`
	Price      int64  `json:"price"`
	URL        string `json:"url"`
	Location   string `json:"location"`
	Rooms      int    `json:"rooms"`
	Area       string `json:"area"`
	Source     string `json:"source"`
	CreatedAt  int64  `json:"created_at"` // Unix UTC
	Notified   bool   `json:"notified"`
}

type statsView struct {
	Total    int64             `json:"total"`
	Last24h  int64             `json:"last_24h"`
	AvgPrice float64           `json:"avg_price"`
	MinPrice int64             `json:"min_price"`
	BySource []sourceCountView `json:"by_source"`
}

type sourceCountView struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

type runsResponse struct {
	Items []runView `json:"items"`
}

type runView struct {
	ID         int64  `json:"id"`
	Source     string `json:"source"`
	Status     string `json:"status"`
	Found      int    `json:"found"`
	Inserted   int    `json:"inserted"`
	Err        string `json:"err,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	StartedAt  int64  `json:"started_at"` // Unix UTC
}

func apartmentViewsFrom(items []models.Apartment) []apartmentView {
	out := make([]apartmentView, 0, len(items))
	for _, item := range items {
		out = append(out, apartmentView{
			ID:         item.ID,
			ExternalID: item.ExternalID,
			Title:      item.Title,
			Price:      item.Price,
			URL:        item.URL,
			Location:   item.Location,
			Rooms:      item.Rooms,
			Area:       item.Area,
			Source:     string(item.Source),
			CreatedAt:  item.CreatedAt.Unix(),
			Notified:   item.Notified,
		})
	}

	return out
}

func statsViewFrom(s *models.Stats) statsView {
	if s == nil {
		return statsView{BySource: []sourceCountView{}}
	}

	bySource := make([]sourceCountView, 0, len(s.BySource))
	for _, sc := range s.BySource {
		bySource = append(bySource, sourceCountView{
			Source: string(sc.Source),
			Count:  sc.Count,
		})
	}

	return statsView{
		Total:    s.Total,
		Last24h:  s.Last24h,
		AvgPrice: s.AvgPrice,
		MinPrice: s.MinPrice,
		BySource: bySource,
	}
}

func runViewsFrom(items []models.ScrapeRun) []runView {
	out := make([]runView, 0, len(items))
	for _, item := range items {
		out = append(out, runView{
			ID:         item.ID,
			Source:     string(item.Source),
			Status:     string(item.Status),
			Found:      item.Found,
			Inserted:   item.Inserted,
			Err:        item.Err,
			DurationMs: item.Duration.Milliseconds(),
			StartedAt:  item.StartedAt.Unix(),
		})
	}

	return out
}
