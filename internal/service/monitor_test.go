package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Rahmet97/apartment-bot/internal/config"
	"github.com/Rahmet97/apartment-bot/internal/models"
	"github.com/Rahmet97/apartment-bot/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// stubScraper — минимальный Scraper для тестов monitor.go.
type stubScraper struct {
	mu       sync.Mutex
	source   models.Source
	items    []models.Apartment
	err      error
	panicMsg string

	calls  int
	gotURL string
	gotMax int64
}

func (s *stubScraper) Source() models.Source { return s.source }

func (s *stubScraper) Listings(_ context.Context, searchURL string, maxPrice int64) ([]models.Apartment, error) {
	s.mu.Lock()
	s.calls++
	s.gotURL = searchURL
	s.gotMax = maxPrice
	s.mu.Unlock()

	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.err != nil {
		return nil, s.err
	}

	return append([]models.Apartment(nil), s.items...), nil
}

func (s *stubScraper) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubScraper) got() (string, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gotURL, s.gotMax
}

// stubNotifier — минимальный Notifier для тестов monitor.go.
type stubNotifier struct {
	mu   sync.Mutex
	err  error
	sent []models.Apartment
}

func (n *stubNotifier) NotifyApartment(_ context.Context, apt models.Apartment) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, apt)

	return nil
}

func (n *stubNotifier) sentItems() []models.Apartment {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Apartment(nil), n.sent...)
}

// newServiceWithScrapeConfig — фабрика сервиса с заданной конфигурацией цикла.
func newServiceWithScrapeConfig(t *testing.T, st *mocks.MockStorage, interval, cooldown time.Duration) *Service {
	t.Helper()
	cfg := config.Config{
		Scrape: config.ScrapeConfig{
			MaxPrice: 30000,
			Interval: interval,
			Cooldown: cooldown,
		},
	}

	return New(st, cfg)
}

// rawApt — валидное «сырое» объявление, как его отдаёт скрейпер.
func rawApt(extID, title string, price int64) models.Apartment {
	return models.Apartment{
		ExternalID: extID,
		Title:      title,
		Price:      price,
		URL:        "https://example.org/" + extID,
	}
}

// TestRunCycle_SourceError_RecordsRunAndContinues — отказ одного источника
// попадает в журнал проходов и не мешает собрать другой.
func TestRunCycle_SourceError_RecordsRunAndContinues(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	bad := &stubScraper{source: models.SourceCian, err: errors.New("blocked")}
	good := &stubScraper{source: models.SourceAvito, items: []models.Apartment{rawApt("avito_1", "T", 20000)}}

	var runs []models.ScrapeRun
	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, run models.ScrapeRun) error {
			runs = append(runs, run)
			return nil
		}).
		Times(2)
	st.EXPECT().
		InsertIfNew(gomock.Any(), gomock.Any()).
		Return(true, nil)

	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	jobs := []SourceJob{
		{Scraper: bad, URL: "https://cian.example/search"},
		{Scraper: good, URL: "https://avito.example/search"},
	}
	require.NoError(t, svc.runCycle(context.Background(), jobs, nil))

	require.Len(t, runs, 2)
	require.Equal(t, models.SourceCian, runs[0].Source)
	require.Equal(t, models.RunError, runs[0].Status)
	require.Contains(t, runs[0].Err, "blocked")
	require.False(t, runs[0].StartedAt.IsZero(), "StartedAt должен быть установлен")

	require.Equal(t, models.SourceAvito, runs[1].Source)
	require.Equal(t, models.RunOK, runs[1].Status)
	require.Equal(t, 1, runs[1].Found)
	require.Equal(t, 1, runs[1].Inserted)

	url, maxPrice := good.got()
	require.Equal(t, "https://avito.example/search", url)
	require.Equal(t, int64(30000), maxPrice)
}

// TestRunCycle_FinalizeFiltersInvalid — невалидные элементы отсекаются до
// хранилища; Found в журнале считает сырые элементы выдачи.
func TestRunCycle_FinalizeFiltersInvalid(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceAvito, items: []models.Apartment{
		{URL: "https://a/1", ExternalID: "avito_1", Price: 100},
		rawApt("avito_2", "Дороже потолка", models.MaxPrice+1),
		rawApt("avito_3", "Годное", 20000),
	}}

	var inserted []models.Apartment
	st.EXPECT().
		InsertIfNew(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, apt models.Apartment) (bool, error) {
			inserted = append(inserted, apt)
			return true, nil
		})

	var run models.ScrapeRun
	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r models.ScrapeRun) error {
			run = r
			return nil
		})

	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	require.NoError(t, svc.runCycle(context.Background(), []SourceJob{{Scraper: src, URL: "u"}}, nil))

	require.Len(t, inserted, 1)
	require.Equal(t, "avito_3", inserted[0].ExternalID)
	require.Equal(t, models.LocationUnknown, inserted[0].Location, "доводка должна подставить sentinel")
	require.Equal(t, models.MinRooms, inserted[0].Rooms)
	require.Equal(t, models.SourceAvito, inserted[0].Source)

	require.Equal(t, models.RunOK, run.Status)
	require.Equal(t, 3, run.Found)
	require.Equal(t, 1, run.Inserted)
}

// TestRunCycle_EmptySource_RunEmpty — пустая выдача без ошибки -> RunEmpty.
func TestRunCycle_EmptySource_RunEmpty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceCian}

	var run models.ScrapeRun
	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r models.ScrapeRun) error {
			run = r
			return nil
		})

	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	require.NoError(t, svc.runCycle(context.Background(), []SourceJob{{Scraper: src, URL: "u"}}, nil))

	require.Equal(t, models.RunEmpty, run.Status)
	require.Equal(t, 0, run.Found)
	require.Equal(t, 0, run.Inserted)
	require.Empty(t, run.Err)
}

// TestRunCycle_DuplicatesNotCounted — InsertIfNew(false, nil) не увеличивает Inserted.
func TestRunCycle_DuplicatesNotCounted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceAvito, items: []models.Apartment{
		rawApt("avito_1", "A", 100),
		rawApt("avito_2", "B", 200),
	}}

	gomock.InOrder(
		st.EXPECT().InsertIfNew(gomock.Any(), gomock.Any()).Return(true, nil),
		st.EXPECT().InsertIfNew(gomock.Any(), gomock.Any()).Return(false, nil),
	)

	var run models.ScrapeRun
	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r models.ScrapeRun) error {
			run = r
			return nil
		})

	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	require.NoError(t, svc.runCycle(context.Background(), []SourceJob{{Scraper: src, URL: "u"}}, nil))

	require.Equal(t, models.RunOK, run.Status)
	require.Equal(t, 2, run.Found)
	require.Equal(t, 1, run.Inserted)
}

// TestRunCycle_InsertError_Fatal — ошибка хранилища при вставке валит цикл;
// журнал прохода при этом не пишется.
func TestRunCycle_InsertError_Fatal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceAvito, items: []models.Apartment{rawApt("avito_1", "T", 100)}}

	st.EXPECT().
		InsertIfNew(gomock.Any(), gomock.Any()).
		Return(false, errors.New("db down"))

	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	err := svc.runCycle(context.Background(), []SourceJob{{Scraper: src, URL: "u"}}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "insert")
}

// TestRunCycle_RecordRunError_Soft — отказ журнала проходов не валит цикл.
func TestRunCycle_RecordRunError_Soft(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceCian}

	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		Return(errors.New("db fail"))

	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	require.NoError(t, svc.runCycle(context.Background(), []SourceJob{{Scraper: src, URL: "u"}}, nil))
}

// TestRunCycle_NotifiesOnlyWhenInserted — без новых объявлений очередь
// уведомлений даже не читается.
func TestRunCycle_NotifiesOnlyWhenInserted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceAvito, items: []models.Apartment{rawApt("avito_1", "T", 100)}}

	st.EXPECT().
		InsertIfNew(gomock.Any(), gomock.Any()).
		Return(false, nil)
	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		Return(nil)

	notifier := &stubNotifier{}
	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	require.NoError(t, svc.runCycle(context.Background(), []SourceJob{{Scraper: src, URL: "u"}}, notifier))
	require.Empty(t, notifier.sentItems())
}

// TestRunCycle_NotifyFlow_MarksAfterSend — уведомляются все накопившиеся
// объявления (включая хвост прошлых циклов); пометка после отправки.
func TestRunCycle_NotifyFlow_MarksAfterSend(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceAvito, items: []models.Apartment{rawApt("avito_1", "T", 100)}}

	st.EXPECT().
		InsertIfNew(gomock.Any(), gomock.Any()).
		Return(true, nil)
	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		Return(nil)

	backlog := []models.Apartment{
		{ID: 11, ExternalID: "avito_1", Title: "A"},
		{ID: 12, ExternalID: "cian_9", Title: "B"},
	}
	st.EXPECT().
		UnnotifiedApartments(gomock.Any()).
		Return(backlog, nil)
	gomock.InOrder(
		st.EXPECT().MarkNotified(gomock.Any(), int64(11)).Return(nil),
		st.EXPECT().MarkNotified(gomock.Any(), int64(12)).Return(nil),
	)

	notifier := &stubNotifier{}
	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	require.NoError(t, svc.runCycle(context.Background(), []SourceJob{{Scraper: src, URL: "u"}}, notifier))

	sent := notifier.sentItems()
	require.Len(t, sent, 2)
	require.Equal(t, "avito_1", sent[0].ExternalID)
	require.Equal(t, "cian_9", sent[1].ExternalID)
}

// TestRunCycle_NotifyError_LeavesQueued — ошибка отправки не помечает
// объявление и не валит цикл: оно уйдёт в следующем.
func TestRunCycle_NotifyError_LeavesQueued(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceAvito, items: []models.Apartment{rawApt("avito_1", "T", 100)}}

	st.EXPECT().
		InsertIfNew(gomock.Any(), gomock.Any()).
		Return(true, nil)
	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		Return(nil)
	st.EXPECT().
		UnnotifiedApartments(gomock.Any()).
		Return([]models.Apartment{{ID: 5, ExternalID: "avito_1"}}, nil)

	notifier := &stubNotifier{err: errors.New("telegram 500")}
	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	require.NoError(t, svc.runCycle(context.Background(), []SourceJob{{Scraper: src, URL: "u"}}, notifier))
	require.Empty(t, notifier.sentItems())
}

// TestRunCycle_MarkNotifiedError_Soft — отправка состоялась, пометка нет:
// цикл продолжает работать (объявление уйдёт повторно).
func TestRunCycle_MarkNotifiedError_Soft(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceAvito, items: []models.Apartment{rawApt("avito_1", "T", 100)}}

	st.EXPECT().
		InsertIfNew(gomock.Any(), gomock.Any()).
		Return(true, nil)
	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		Return(nil)
	st.EXPECT().
		UnnotifiedApartments(gomock.Any()).
		Return([]models.Apartment{{ID: 6, ExternalID: "avito_1"}}, nil)
	st.EXPECT().
		MarkNotified(gomock.Any(), int64(6)).
		Return(errors.New("db busy"))

	notifier := &stubNotifier{}
	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	require.NoError(t, svc.runCycle(context.Background(), []SourceJob{{Scraper: src, URL: "u"}}, notifier))
	require.Len(t, notifier.sentItems(), 1)
}

// TestRunCycle_BacklogError_Fatal — отказ чтения очереди уведомлений валит цикл.
func TestRunCycle_BacklogError_Fatal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceAvito, items: []models.Apartment{rawApt("avito_1", "T", 100)}}

	st.EXPECT().
		InsertIfNew(gomock.Any(), gomock.Any()).
		Return(true, nil)
	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		Return(nil)
	st.EXPECT().
		UnnotifiedApartments(gomock.Any()).
		Return(nil, errors.New("db fail"))

	notifier := &stubNotifier{}
	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	err := svc.runCycle(context.Background(), []SourceJob{{Scraper: src, URL: "u"}}, notifier)
	require.Error(t, err)
	require.Contains(t, err.Error(), "notifyNew")
}

// TestRunCycle_PanicRecovered — паника внутри скрейпера превращается в ошибку цикла.
func TestRunCycle_PanicRecovered(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceAvito, panicMsg: "selector table corrupted"}

	svc := newServiceWithScrapeConfig(t, st, time.Hour, time.Hour)

	err := svc.runCycle(context.Background(), []SourceJob{{Scraper: src, URL: "u"}}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "panic")
	require.Contains(t, err.Error(), "selector table corrupted")
}

// TestStartMonitor_NoJobs_ReturnsError — если источников нет, возвращается ошибка.
func TestStartMonitor_NoJobs_ReturnsError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	svc := newServiceWithScrapeConfig(t, st, time.Minute, time.Minute)

	err := svc.StartMonitor(context.Background(), nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no sources configured")
}

// TestStartMonitor_OneShotAndCancel — стартуем, выполняем первый цикл и
// корректно останавливаемся по ctx.
func TestStartMonitor_OneShotAndCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceAvito, items: []models.Apartment{rawApt("avito_1", "T", 100)}}

	st.EXPECT().
		InsertIfNew(gomock.Any(), gomock.Any()).
		Return(true, nil)

	recordedCh := make(chan struct{}, 1)
	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, run models.ScrapeRun) error {
			require.Equal(t, models.RunOK, run.Status)
			select {
			case recordedCh <- struct{}{}:
			default:
			}
			return nil
		})

	svc := newServiceWithScrapeConfig(t, st, 24*time.Hour, 24*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- svc.StartMonitor(ctx, []SourceJob{{Scraper: src, URL: "https://avito.example/s"}}, nil)
	}()

	select {
	case <-recordedCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for first monitor cycle")
	}

	url, maxPrice := src.got()
	require.Equal(t, "https://avito.example/s", url)
	require.Equal(t, int64(30000), maxPrice)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for StartMonitor to return")
	}
}

// TestStartMonitor_ErrorCooldown_ThenRecovers — ошибка цикла переводит паузу
// в cooldown: при interval=24h второй цикл достижим только через него.
func TestStartMonitor_ErrorCooldown_ThenRecovers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)

	src := &stubScraper{source: models.SourceAvito, items: []models.Apartment{rawApt("avito_1", "T", 100)}}

	gomock.InOrder(
		st.EXPECT().InsertIfNew(gomock.Any(), gomock.Any()).Return(false, errors.New("db down")),
		st.EXPECT().InsertIfNew(gomock.Any(), gomock.Any()).Return(true, nil),
	)

	recoveredCh := make(chan struct{}, 1)
	st.EXPECT().
		RecordRun(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.ScrapeRun) error {
			select {
			case recoveredCh <- struct{}{}:
			default:
			}
			return nil
		})

	svc := newServiceWithScrapeConfig(t, st, 24*time.Hour, 30*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- svc.StartMonitor(ctx, []SourceJob{{Scraper: src, URL: "u"}}, nil)
	}()

	select {
	case <-recoveredCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for recovery cycle after cooldown")
	}

	require.GreaterOrEqual(t, src.callCount(), 2)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for StartMonitor to return")
	}
}
