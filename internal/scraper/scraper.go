// scraper извлекает объявления об аренде квартир из HTML-выдачи площадок.
// Каждый источник описан декларативной стратегией (селекторы, паузы,
// лимиты); сетевое поведение и разбор карточек общие для всех источников.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Rahmet97/apartment-bot/internal/models"
	"github.com/Rahmet97/apartment-bot/internal/pkg/log"
)

// defaultCity используется, когда город поиска не задан.
const defaultCity = "Уфа"

// errThrottled — источник ответил 429/403: доступ временно ограничен.
var errThrottled = errors.New("source throttled request")

// strategy — декларативное описание источника: селекторы выдачи и полей
// карточки, паузы между запросами и лимиты.
type strategy struct {
	source   models.Source
	idPrefix string

	// itemSelectors — селекторы карточек выдачи в порядке приоритета;
	// используется первый, давший непустой результат.
	itemSelectors []string
	// maxItems — сколько карточек выдачи обрабатывается за проход.
	maxItems int

	titleSelectors []string
	// linkSelectors — откуда брать ссылку объявления; пустой список
	// означает href самого элемента заголовка.
	linkSelectors     []string
	priceSelectors    []string
	locationSelectors []string
	areaSelectors     []string

	// baseDelay — минимальная пауза между запросами к источнику;
	// jitterMin/jitterMax — случайная добавка к остатку паузы.
	baseDelay time.Duration
	jitterMin time.Duration
	jitterMax time.Duration
	// timeout — таймаут HTTP-клиента по умолчанию для этого источника.
	timeout time.Duration

	userAgents []string
	headers    map[string]string
}

// Scraper загружает страницу выдачи одного источника и извлекает объявления.
//
// Особенности:
//   - пауза между запросами хранится в экземпляре: два скрейпера одного
//     источника не делят состояние;
//   - не потокобезопасен: монитор опрашивает источники последовательно.
type Scraper struct {
	client    *http.Client
	strategy  strategy
	city      string
	addressRx []*regexp.Regexp

	// lastRequest — момент предыдущего запроса к источнику.
	lastRequest time.Time
	now         func() time.Time
}

func newScraper(client *http.Client, city string, st strategy) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: st.timeout}
	}
	if city == "" {
		city = defaultCity
	}
	return &Scraper{
		client:    client,
		strategy:  st,
		city:      city,
		addressRx: addressPatterns(city),
		now:       time.Now,
	}
}

// Source возвращает источник, который обслуживает скрейпер.
func (s *Scraper) Source() models.Source {
	return s.strategy.source
}

// Listings загружает страницу выдачи и извлекает из неё объявления.
//
// Особенности:
//   - перед запросом выдерживается пауза источника;
//   - HTTP 429/403 означает, что источник ограничил доступ: возвращается
//     пустой срез без ошибки, цикл продолжится со следующим источником;
//   - объявления дороже maxPrice отбрасываются (maxPrice <= 0 — без потолка);
//   - карточки без заголовка, ссылки или цены пропускаются молча.
func (s *Scraper) Listings(ctx context.Context, searchURL string, maxPrice int64) ([]models.Apartment, error) {
	const op = "scraper.scraper.Listings"

	lg := log.From(ctx)
	lg.Info("scrape_start",
		slog.String("source", string(s.strategy.source)),
		slog.String("url", searchURL),
	)

	if err := s.waitRateLimit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	doc, err := s.fetch(ctx, searchURL)
	if err != nil {
		if errors.Is(err, errThrottled) {
			lg.Warn("scrape_throttled",
				slog.String("source", string(s.strategy.source)),
				slog.String("error", err.Error()),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, selector := s.selectItems(doc)
	if items == nil {
		lg.Warn("scrape_no_items", slog.String("source", string(s.strategy.source)))
		return nil, nil
	}
	lg.Info("items_found",
		slog.String("source", string(s.strategy.source)),
		slog.String("selector", selector),
		slog.Int("count", items.Length()),
	)
	if items.Length() > s.strategy.maxItems {
		items = items.Slice(0, s.strategy.maxItems)
	}

	base := baseFrom(searchURL)

	var out []models.Apartment
	items.Each(func(_ int, item *goquery.Selection) {
		ap, ok := s.parseItem(item, base)
		if !ok {
			return
		}
		if maxPrice > 0 && ap.Price > maxPrice {
			lg.Debug("listing_above_ceiling",
				slog.String("source", string(s.strategy.source)),
				slog.Int64("price", ap.Price),
			)
			return
		}
		out = append(out, ap)
	})

	lg.Info("scrape_done",
		slog.String("source", string(s.strategy.source)),
		slog.Int("found", len(out)),
	)
	return out, nil
}

// waitRateLimit выдерживает паузу источника перед запросом. Пауза
// отсчитывается от предыдущего запроса этого экземпляра; к остатку
// добавляется случайный разброс, чтобы запросы не шли с ровным периодом.
func (s *Scraper) waitRateLimit(ctx context.Context) error {
	defer func() { s.lastRequest = s.now() }()

	if s.lastRequest.IsZero() {
		return nil
	}
	elapsed := s.now().Sub(s.lastRequest)
	if elapsed >= s.strategy.baseDelay {
		return nil
	}

	wait := s.strategy.baseDelay - elapsed + s.jitter()
	log.From(ctx).Info("rate_limit_wait",
		slog.String("source", string(s.strategy.source)),
		slog.Duration("wait", wait),
	)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

func (s *Scraper) jitter() time.Duration {
	span := s.strategy.jitterMax - s.strategy.jitterMin
	if span <= 0 {
		return s.strategy.jitterMin
	}
	return s.strategy.jitterMin + rand.N(span)
}

// fetch загружает страницу выдачи и разбирает её в документ.
func (s *Scraper) fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	const op = "scraper.scraper.fetch"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.applyHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		log.From(ctx).Warn("http_error",
			slog.String("op", op),
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, errThrottled)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: parse: %w", op, err)
	}
	return doc, nil
}

// applyHeaders маскирует запрос под обычный браузер: случайный User-Agent
// из пула источника плюс его базовые заголовки. Accept-Encoding не
// выставляется: транспорт сам договаривается о gzip и прозрачно распаковывает.
func (s *Scraper) applyHeaders(req *http.Request) {
	req.Header.Set("User-Agent", s.strategy.userAgents[rand.IntN(len(s.strategy.userAgents))])
	for k, v := range s.strategy.headers {
		req.Header.Set(k, v)
	}
}

// selectItems находит карточки объявлений первым сработавшим селектором выдачи.
func (s *Scraper) selectItems(doc *goquery.Document) (*goquery.Selection, string) {
	for _, sel := range s.strategy.itemSelectors {
		if items := doc.Find(sel); items.Length() > 0 {
			return items, sel
		}
	}
	return nil, ""
}

// parseItem собирает объявление из одной карточки выдачи. Второе значение
// false, если в карточке нет заголовка, ссылки или цены.
func (s *Scraper) parseItem(item *goquery.Selection, base string) (models.Apartment, bool) {
	titleElem := firstMatch(item, s.strategy.titleSelectors)
	if titleElem == nil {
		return models.Apartment{}, false
	}
	title := strings.TrimSpace(titleElem.Text())

	var link string
	if len(s.strategy.linkSelectors) == 0 {
		link, _ = titleElem.Attr("href")
	} else if linkElem := firstMatch(item, s.strategy.linkSelectors); linkElem != nil {
		link, _ = linkElem.Attr("href")
	}
	link = strings.TrimSpace(link)

	var price int64
	priceOK := false
	if priceElem := firstMatch(item, s.strategy.priceSelectors); priceElem != nil {
		price, priceOK = priceFromText(priceElem.Text())
	}

	if title == "" || link == "" || !priceOK {
		return models.Apartment{}, false
	}

	fullURL := absoluteURL(base, link)
	itemText := item.Text()

	return models.Apartment{
		ExternalID: externalID(s.strategy.idPrefix, fullURL),
		Title:      truncateRunes(title, models.MaxTitleLen),
		Price:      price,
		URL:        fullURL,
		Location:   locationFrom(item, s.strategy.locationSelectors, s.addressRx, s.city),
		Rooms:      roomsFrom(title + " " + itemText),
		Area:       truncateRunes(areaFrom(item, s.strategy.areaSelectors), models.MaxAreaLen),
		Source:     s.strategy.source,
	}, true
}

// firstMatch возвращает первый элемент по списку селекторов в порядке приоритета.
func firstMatch(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if found := root.Find(sel).First(); found.Length() > 0 {
			return found
		}
	}
	return nil
}

// baseFrom выделяет схему и хост страницы выдачи: относительные ссылки
// карточек достраиваются от них (у источников бывают региональные поддомены).
func baseFrom(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
