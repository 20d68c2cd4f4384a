package reschedule_booking

import (
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	"github.com/jla-rentals/JLA-BookingService/internal/service/bookings/models"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	StartDate string `json:"startDate"` // "2025-06-10"
	EndDate   string `json:"endDate"`
}

// ConflictResponse занятый диапазон в ответе 409
type ConflictResponse struct {
	RentalID  string `json:"rentalId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// UnavailableResponse тело ответа 409 с занятыми диапазонами
type UnavailableResponse struct {
	Error     string             `json:"error"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RescheduleBookingRequest) ToServiceRequest() (*models.RescheduleRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}
	return &models.RescheduleRequest{
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}
