package scraper

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/Rahmet97/apartment-bot/internal/models"
)

const (
	// locationMinRunes — тексты короче не считаются адресом (мусор вёрстки).
	locationMinRunes = 5
	// locationMaxMatches — сколько совпадений берём у сработавшего шаблона.
	locationMaxMatches = 2

	// minPlausibleArea/maxPlausibleArea — границы правдоподобной площади
	// квартиры при поиске по полному тексту карточки, м².
	minPlausibleArea = 10
	maxPlausibleArea = 500
)

var (
	digitsRx = regexp.MustCompile(`\d+`)
	spaceRx  = regexp.MustCompile(`\s+`)

	// areaPatterns — шаблоны площади в порядке приоритета. Группа 1 — число.
	areaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*м²`),
		regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*кв\.?\s*м`),
		regexp.MustCompile(`(?i)S:\s*(\d+(?:[.,]\d+)?)`),
		regexp.MustCompile(`(?i)площадь[:\s]*(\d+(?:[.,]\d+)?)`),
	}

	// roomsPatterns — формы записи количества комнат: «2-комн», «2 комн», «2-к», «2к».
	roomsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)-комн`),
		regexp.MustCompile(`(?i)(\d+)\s*комн`),
		regexp.MustCompile(`(?i)(\d+)-к`),
		regexp.MustCompile(`(?i)(\d+)к`),
	}
)

// addressPatterns собирает шаблоны адреса для города поиска, от самых
// специфичных к общим: область -> город -> «г. <город>» -> улица ->
// проспект -> переулок -> бульвар. Хвост «метро ...» опционален.
func addressPatterns(city string) []*regexp.Regexp {
	q := regexp.QuoteMeta(city)
	const house = `(?:,\s*\d+[^,\n]*)?`
	const metro = `(?:,\s*метро\s*[^,\n]+)?`
	const street = `[А-Яа-я\s\-]+`

	return []*regexp.Regexp{
		regexp.MustCompile(`[А-Яа-я]+\s+обл(?:асть|\.)?,\s*` + q + `,\s*[^,\n]+` + house + metro),
		regexp.MustCompile(q + `,\s*[^,\n]+` + house + metro),
		regexp.MustCompile(`г\.\s*` + q + `,\s*[^,\n]+` + house + metro),
		regexp.MustCompile(`ул\.\s*` + street + house + metro),
		regexp.MustCompile(`пр\.\s*` + street + house + metro),
		regexp.MustCompile(`пер\.\s*` + street + house + metro),
		regexp.MustCompile(`б-р\s*` + street + house + metro),
	}
}

// priceFromText извлекает цену из текста вида «25 000 ₽/мес.»: группы цифр
// склеиваются и разбираются как целое. Второе значение false, если цифр нет
// или результат выходит за правдоподобные границы [0, models.MaxPrice].
func priceFromText(text string) (int64, bool) {
	digits := digitsRx.FindAllString(text, -1)
	if len(digits) == 0 {
		return 0, false
	}
	price, err := strconv.ParseInt(strings.Join(digits, ""), 10, 64)
	if err != nil || price < 0 || price > models.MaxPrice {
		return 0, false
	}
	return price, true
}

// locationFrom извлекает адрес из карточки объявления.
//
// Особенности:
//   - сначала тексты элементов по селекторам (длиннее locationMinRunes рун);
//   - если селекторы ничего не дали — regex-поиск по полному тексту карточки,
//     совпадения даёт первый сработавший шаблон (не более locationMaxMatches);
//   - из кандидатов выбирается самый длинный, пробелы схлопываются,
//     длина ограничивается models.MaxLocationLen;
//   - если кандидатов нет вовсе — fallback (имя города).
func locationFrom(item *goquery.Selection, selectors []string, patterns []*regexp.Regexp, fallback string) string {
	var parts []string
	for _, sel := range selectors {
		item.Find(sel).Each(func(_ int, e *goquery.Selection) {
			text := strings.TrimSpace(e.Text())
			if utf8.RuneCountInString(text) > locationMinRunes {
				parts = append(parts, text)
			}
		})
	}

	if len(parts) == 0 {
		itemText := item.Text()
		for _, rx := range patterns {
			if matches := rx.FindAllString(itemText, locationMaxMatches); len(matches) > 0 {
				parts = append(parts, matches...)
				break
			}
		}
	}

	if len(parts) == 0 {
		return fallback
	}

	best := parts[0]
	for _, p := range parts[1:] {
		if utf8.RuneCountInString(p) > utf8.RuneCountInString(best) {
			best = p
		}
	}
	best = strings.TrimSpace(spaceRx.ReplaceAllString(best, " "))
	return ellipsize(best, models.MaxLocationLen)
}

// areaFrom извлекает площадь из карточки объявления.
//
// Особенности:
//   - сначала тексты элементов по селекторам, шаблоны в порядке приоритета;
//   - затем полный текст карточки, но только со значениями в правдоподобных
//     границах [minPlausibleArea, maxPlausibleArea] — в полном тексте
//     встречаются посторонние числа (этаж, год постройки);
//   - число сохраняется как в объявлении, включая запятую: «65,5 м²».
func areaFrom(item *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		elem := item.Find(sel).First()
		if elem.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(elem.Text())
		for _, rx := range areaPatterns {
			if m := rx.FindStringSubmatch(text); m != nil {
				return m[1] + " м²"
			}
		}
	}

	itemText := item.Text()
	for _, rx := range areaPatterns {
		for _, m := range rx.FindAllStringSubmatch(itemText, -1) {
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
			if err != nil {
				continue
			}
			if v >= minPlausibleArea && v <= maxPlausibleArea {
				return m[1] + " м²"
			}
		}
	}

	return models.AreaUnknown
}

// roomsFrom извлекает количество комнат из заголовка и текста карточки.
// Совпадения вне диапазона [models.MinRooms, models.MaxRooms] отбрасываются,
// при полном отсутствии валидных совпадений возвращается models.MinRooms.
func roomsFrom(text string) int {
	for _, rx := range roomsPatterns {
		m := rx.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		rooms, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if rooms >= models.MinRooms && rooms <= models.MaxRooms {
			return rooms
		}
	}
	return models.MinRooms
}

// externalID строит стабильный идентификатор объявления: FNV-1a от
// канонической ссылки, свёрнутый до шести десятичных знаков. Один и тот же
// URL даёт один и тот же идентификатор между перезапусками сервиса.
func externalID(prefix, rawURL string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(rawURL))
	return fmt.Sprintf("%s_%d", prefix, h.Sum32()%1_000_000)
}

// absoluteURL достраивает относительную ссылку выдачи до абсолютной.
func absoluteURL(base, link string) string {
	if strings.HasPrefix(link, "/") {
		return base + link
	}
	return link
}

// truncateRunes обрезает строку до limit рун.
func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// ellipsize обрезает строку до limit рун, помечая обрезку многоточием.
func ellipsize(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
