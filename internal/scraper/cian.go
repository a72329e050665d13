package scraper

import (
	"net/http"
	"time"

	"github.com/Rahmet97/apartment-bot/internal/models"
)

var cianUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

var cianHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "ru-RU,ru;q=0.8,en-US;q=0.5,en;q=0.3",
	"Connection":      "keep-alive",
}

// NewCian создаёт скрейпер Циана. При nil client используется клиент
// по умолчанию с таймаутом источника. city участвует в адресных шаблонах
// и служит запасной локацией.
func NewCian(client *http.Client, city string) *Scraper {
	return newScraper(client, city, strategy{
		source:   models.SourceCian,
		idPrefix: "cian",

		itemSelectors: []string{
			`[data-name="CardComponent"]`,
		},
		maxItems: 15,

		titleSelectors: []string{
			`[data-mark="OfferTitle"]`,
			`a[href*="/rent/flat/"]`,
		},
		// Ссылка берётся отдельным селектором: заголовок у Циана
		// не всегда является ссылкой.
		linkSelectors: []string{
			`a[href*="/rent/flat/"]`,
		},
		priceSelectors: []string{
			`[data-mark="MainPrice"]`,
		},
		locationSelectors: []string{
			`[data-name="GeoLabel"]`,
			`[data-mark="GeoLabel"]`,
			`.a10a3f92e9--address--SMU25`,
			`.a10a3f92e9--geo--RNXJ5`,
			`[data-name="AddressContainer"]`,
		},
		areaSelectors: []string{
			`[data-mark="OfferSummary"]`,
			`[data-mark*="Area"]`,
			`.a10a3f92e9--area--3xKvp`,
			`[title*="м²"]`,
			`[data-testid*="area"]`,
		},

		baseDelay: 5 * time.Second,
		jitterMin: time.Second,
		jitterMax: 3 * time.Second,
		timeout:   45 * time.Second,

		userAgents: cianUserAgents,
		headers:    cianHeaders,
	})
}
