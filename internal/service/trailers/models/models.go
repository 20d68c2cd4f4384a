package models

import (
	"github.com/jla-rentals/JLA-BookingService/internal/domain"
)

// TrailerResponse ответ с данными прицепа
type TrailerResponse struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	RatePerDay float64  `json:"ratePerDay"`
	ColorHex   *string  `json:"colorHex,omitempty"`
	PhotoURLs  []string `json:"photoUrls,omitempty"`
}

// TrailerListResponse ответ со списком прицепов
type TrailerListResponse struct {
	Trailers []TrailerResponse `json:"trailers"`
}

// CalendarEntry одна запись календаря сотрудников.
// Status здесь — отображаемый статус: бронирования без rental ID
// (ручные блокировки) показываются как Blocked.
type CalendarEntry struct {
	BookingID   int64   `json:"bookingId"`
	RentalID    string  `json:"rentalId,omitempty"`
	TrailerID   int64   `json:"trailerId"`
	TrailerName string  `json:"trailerName"`
	ColorHex    *string `json:"colorHex,omitempty"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Days        int     `json:"days"`
	Status      string  `json:"status"`
	Imported    bool    `json:"imported"`
}

// CalendarResponse ответ календаря за период
type CalendarResponse struct {
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Entries   []CalendarEntry `json:"entries"`
}

// FromDomainTrailer конвертирует domain модель в DTO
func FromDomainTrailer(t *domain.Trailer) TrailerResponse {
	return TrailerResponse{
		ID:         t.ID,
		Name:       t.Name,
		RatePerDay: t.RatePerDay,
		ColorHex:   t.ColorHex,
		PhotoURLs:  t.PhotoURLs,
	}
}
