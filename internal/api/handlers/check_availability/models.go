package check_availability

import (
	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	"github.com/jla-rentals/JLA-BookingService/internal/service/availability"
)

// ConflictResponse занятый диапазон дат
type ConflictResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}

// AvailabilityResponse результат проверки доступности.
// Rental ID конфликтующих бронирований наружу не отдается: публичному
// клиенту достаточно занятых диапазонов.
type AvailabilityResponse struct {
	TrailerID int64              `json:"trailerId"`
	StartDate string             `json:"startDate"`
	EndDate   string             `json:"endDate"`
	Available bool               `json:"available"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// FromResult конвертирует результат проверки в HTTP response
func FromResult(trailerID int64, startDate, endDate string, result *availability.Result) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		TrailerID: trailerID,
		StartDate: startDate,
		EndDate:   endDate,
		Available: result.Available,
		Conflicts: make([]ConflictResponse, len(result.Conflicts)),
	}
	for i, c := range result.Conflicts {
		resp.Conflicts[i] = ConflictResponse{
			StartDate: c.StartDate.Format(domain.DateFormat),
			EndDate:   c.EndDate.Format(domain.DateFormat),
			Status:    string(c.Status),
		}
	}
	return resp
}
