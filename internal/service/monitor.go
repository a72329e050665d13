package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Rahmet97/apartment-bot/internal/models"
	"github.com/Rahmet97/apartment-bot/internal/pkg/log"
)

// cycleState — фаза цикла мониторинга.
type cycleState string

const (
	stateScraping   cycleState = "scraping"
	statePersisting cycleState = "persisting"
	stateNotifying  cycleState = "notifying"
	stateSleeping   cycleState = "sleeping"
	stateCooldown   cycleState = "cooldown"
)

// StartMonitor запускает вечный цикл мониторинга источников.
//
// Особенности:
//   - источники опрашиваются последовательно в порядке jobs с паузой
//     cfg.Scrape.SourcePause между ними;
//   - отказ одного источника записывается в журнал проходов и не мешает
//     остальным; ошибки хранилища фатальны для цикла;
//   - уведомления отправляются только когда цикл нашёл новые объявления;
//   - ошибка цикла (включая перехваченную панику) переводит паузу в
//     cooldown вместо обычного интервала;
//   - nil notifier — цикл работает без уведомлений;
//   - останавливается по ctx.
func (s *Service) StartMonitor(ctx context.Context, jobs []SourceJob, notifier Notifier) error {
	const op = "service/monitor/StartMonitor"

	if len(jobs) == 0 {
		return fmt.Errorf("%s: no sources configured", op)
	}

	lg := log.From(ctx)
	lg.Info("monitor_start",
		slog.String("op", op),
		slog.Int("sources", len(jobs)),
		slog.Duration("interval", s.cfg.Scrape.Interval),
	)

	for {
		err := s.runCycle(ctx, jobs, notifier)

		pause := s.cfg.Scrape.Interval
		state := stateSleeping
		if err != nil {
			lg.Warn("cycle_error",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			pause = s.cfg.Scrape.Cooldown
			state = stateCooldown
		}

		lg.Info("cycle_pause",
			slog.String("op", op),
			slog.String("state", string(state)),
			slog.Duration("pause", pause),
		)

		select {
		case <-ctx.Done():
			lg.Info("monitor_stop", slog.String("op", op))
			return nil
		case <-time.After(pause):
		}
	}
}

// runCycle — один проход: опрос источников, сохранение, уведомления.
// Паника внутри цикла перехватывается и возвращается как ошибка.
func (s *Service) runCycle(ctx context.Context, jobs []SourceJob, notifier Notifier) (err error) {
	const op = "service/monitor/runCycle"

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", op, r)
		}
	}()

	ctx, lg := log.With(ctx, slog.String("cycle_id", uuid.NewString()))
	lg.Info("cycle_start", slog.String("op", op), slog.Int("sources", len(jobs)))

	insertedTotal := 0
	for i, job := range jobs {
		if i > 0 {
			if err := sleepCtx(ctx, s.cfg.Scrape.SourcePause); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		inserted, err := s.scrapeAndPersist(ctx, job)
		if err != nil {
			return err
		}
		insertedTotal += inserted
	}

	if notifier == nil || insertedTotal == 0 {
		lg.Info("cycle_done", slog.String("op", op), slog.Int("inserted", insertedTotal))
		return nil
	}

	if err := s.notifyNew(ctx, notifier); err != nil {
		return err
	}

	lg.Info("cycle_done", slog.String("op", op), slog.Int("inserted", insertedTotal))
	return nil
}

// scrapeAndPersist опрашивает один источник и сохраняет его объявления.
// Итог прохода всегда попадает в журнал, включая отказ источника;
// возвращаемая ошибка означает отказ хранилища.
func (s *Service) scrapeAndPersist(ctx context.Context, job SourceJob) (int, error) {
	const op = "service/monitor/scrapeAndPersist"

	lg := log.From(ctx)
	source := job.Scraper.Source()
	started := time.Now().UTC()

	lg.Debug("cycle_state",
		slog.String("state", string(stateScraping)),
		slog.String("source", string(source)),
	)

	listings, scrapeErr := job.Scraper.Listings(ctx, job.URL, s.cfg.Scrape.MaxPrice)

	run := models.ScrapeRun{
		Source:    source,
		StartedAt: started,
	}

	inserted := 0
	if scrapeErr != nil {
		lg.Warn("source_error",
			slog.String("op", op),
			slog.String("source", string(source)),
			slog.String("err", scrapeErr.Error()),
		)
		run.Status = models.RunError
		run.Err = scrapeErr.Error()
	} else {
		lg.Debug("cycle_state",
			slog.String("state", string(statePersisting)),
			slog.String("source", string(source)),
		)

		for _, raw := range listings {
			apt, ok := finalizeApartment(raw, source)
			if !ok {
				continue
			}

			saved, err := s.storage.InsertIfNew(ctx, apt)
			if err != nil {
				return inserted, fmt.Errorf("%s: insert: %w", op, err)
			}
			if saved {
				inserted++
			}
		}

		run.Found = len(listings)
		run.Inserted = inserted
		run.Status = models.RunOK
		if len(listings) == 0 {
			run.Status = models.RunEmpty
		}
	}
	run.Duration = time.Since(started)

	if err := s.storage.RecordRun(ctx, run); err != nil {
		// Журнал проходов вспомогательный: его отказ не валит цикл.
		lg.Warn("record_run_error",
			slog.String("op", op),
			slog.String("source", string(source)),
			slog.String("err", err.Error()),
		)
	}

	lg.Info("source_done",
		slog.String("op", op),
		slog.String("source", string(source)),
		slog.String("status", string(run.Status)),
		slog.Int("found", run.Found),
		slog.Int("inserted", run.Inserted),
	)

	return inserted, nil
}

// notifyNew отправляет уведомления по накопившимся объявлениям.
// Объявление помечается отправленным только после подтверждённой отправки;
// при ошибке отправки оно остаётся в очереди до следующего цикла.
func (s *Service) notifyNew(ctx context.Context, notifier Notifier) error {
	const op = "service/monitor/notifyNew"

	lg := log.From(ctx)
	lg.Debug("cycle_state", slog.String("state", string(stateNotifying)))

	backlog, err := s.storage.UnnotifiedApartments(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(backlog) == 0 {
		return nil
	}

	lg.Info("notify_start", slog.String("op", op), slog.Int("pending", len(backlog)))

	sent := 0
	for _, apt := range backlog {
		if err := notifier.NotifyApartment(ctx, apt); err != nil {
			lg.Warn("notify_error",
				slog.String("op", op),
				slog.String("external_id", apt.ExternalID),
				slog.String("err", err.Error()),
			)
		} else if err := s.storage.MarkNotified(ctx, apt.ID); err != nil {
			// Пометка не прошла: объявление уйдёт повторно в следующем цикле.
			lg.Warn("mark_notified_error",
				slog.String("op", op),
				slog.Int64("id", apt.ID),
				slog.String("err", err.Error()),
			)
		} else {
			sent++
		}

		if err := sleepCtx(ctx, s.cfg.Telegram.NotifyPause); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	lg.Info("notify_done", slog.String("op", op), slog.Int("sent", sent))
	return nil
}

// sleepCtx ждёт d или отмену контекста.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
