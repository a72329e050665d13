package scraper

import (
	"net/http"
	"time"

	"github.com/Rahmet97/apartment-bot/internal/models"
)

var avitoUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

var avitoHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "ru-RU,ru;q=0.8,en-US;q=0.5,en;q=0.3",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"Cache-Control":             "no-cache",
	"Pragma":                    "no-cache",
}

// NewAvito создаёт скрейпер Авито.
//
// Авито агрессивно банит частые запросы, поэтому паузы у него заметно
// длиннее, чем у других источников. При nil client используется клиент
// по умолчанию с таймаутом источника. city участвует в адресных шаблонах
// и служит запасной локацией.
func NewAvito(client *http.Client, city string) *Scraper {
	return newScraper(client, city, strategy{
		source:   models.SourceAvito,
		idPrefix: "avito",

		itemSelectors: []string{
			`[data-marker="item"]`,
			`.items-item`,
			`.iva-item-root`,
		},
		maxItems: 10,

		titleSelectors: []string{
			`[data-marker="item-title"]`,
			`h3 a`,
			`a[href*="/kvartiry/"]`,
		},
		priceSelectors: []string{
			`[data-marker="item-price"]`,
			`.price-text`,
		},
		// Классы с хешами — из актуальной вёрстки, живут до следующего
		// редизайна площадки.
		locationSelectors: []string{
			`[data-marker="item-address"]`,
			`.item-address-georeferences-item__content`,
			`.style-item-address-georeferences-item-TZsrp`,
			`.geo-georeferences-item__content`,
			`.item-address`,
		},
		areaSelectors: []string{
			`[data-marker="item-specific-params"]`,
			`.item-params`,
			`.params-paramsList`,
			`.iva-item-text`,
		},

		baseDelay: 15 * time.Second,
		jitterMin: 5 * time.Second,
		jitterMax: 10 * time.Second,
		timeout:   60 * time.Second,

		userAgents: avitoUserAgents,
		headers:    avitoHeaders,
	})
}
