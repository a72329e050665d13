package service

import (
	"strings"
	"time"

	"github.com/Rahmet97/apartment-bot/internal/models"
)

// finalizeApartment доводит объявление до инвариантов домена:
//   - Title/URL/ExternalID обязательны (после TrimSpace) — иначе запись отбрасывается;
//   - Price вне [0, models.MaxPrice] — запись отбрасывается;
//   - Location/Area := sentinel при пустом значении, длины ограничиваются;
//   - Rooms вне [MinRooms, MaxRooms] := MinRooms;
//   - Source := source при пустом значении;
//   - ID/CreatedAt/Notified обнуляются (перекрывают любые внешние значения):
//     их проставляет хранилище.
//
// Возвращает (объявление, ok=false если запись следует отбросить).
func finalizeApartment(apt models.Apartment, source models.Source) (models.Apartment, bool) {
	apt.Title = strings.TrimSpace(apt.Title)
	apt.URL = strings.TrimSpace(apt.URL)
	apt.ExternalID = strings.TrimSpace(apt.ExternalID)

	if apt.Title == "" || apt.URL == "" || apt.ExternalID == "" {
		return models.Apartment{}, false
	}

	if apt.Price < 0 || apt.Price > models.MaxPrice {
		return models.Apartment{}, false
	}

	apt.Location = strings.TrimSpace(apt.Location)
	if apt.Location == "" {
		apt.Location = models.LocationUnknown
	}

	apt.Area = strings.TrimSpace(apt.Area)
	if apt.Area == "" {
		apt.Area = models.AreaUnknown
	}

	apt.Title = cutRunes(apt.Title, models.MaxTitleLen)
	apt.Location = cutRunes(apt.Location, models.MaxLocationLen)
	apt.Area = cutRunes(apt.Area, models.MaxAreaLen)

	if apt.Rooms < models.MinRooms || apt.Rooms > models.MaxRooms {
		apt.Rooms = models.MinRooms
	}

	if apt.Source == "" {
		apt.Source = source
	}

	apt.ID = 0
	apt.CreatedAt = time.Time{}
	apt.Notified = false

	return apt, true
}

// cutRunes обрезает строку до limit рун.
func cutRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
