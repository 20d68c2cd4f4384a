package create_booking

import (
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	createBooking "github.com/jla-rentals/JLA-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TrailerID int64  `json:"trailerId"`
	StartDate string `json:"startDate"` // "2025-06-10"
	EndDate   string `json:"endDate"`

	PickupTime *string `json:"pickupTime,omitempty"` // "10:00"
	ReturnTime *string `json:"returnTime,omitempty"`

	DeliveryRequested bool `json:"deliveryRequested"`

	Email         string  `json:"email"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Phone         string  `json:"phone"`
	TowingVehicle *string `json:"towingVehicle,omitempty"`
	Comments      *string `json:"comments,omitempty"`
}

// CreateBookingResponse HTTP response model.
// accessKey отдается клиенту один-единственный раз.
type CreateBookingResponse struct {
	ID             int64   `json:"id"`
	RentalID       string  `json:"rentalId"`
	AccessKey      string  `json:"accessKey"`
	TrailerID      int64   `json:"trailerId"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	Status         string  `json:"status"`
	Days           int     `json:"days"`
	EstimatedTotal float64 `json:"estimatedTotal"`
	CreatedAt      string  `json:"createdAt"`
}

// ConflictResponse занятый диапазон в ответе 409
type ConflictResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// UnavailableResponse тело ответа 409 с занятыми диапазонами
type UnavailableResponse struct {
	Error     string             `json:"error"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TrailerID:         r.TrailerID,
		StartDate:         startDate,
		EndDate:           endDate,
		PickupTime:        r.PickupTime,
		ReturnTime:        r.ReturnTime,
		DeliveryRequested: r.DeliveryRequested,
		Email:             r.Email,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Phone:             r.Phone,
		TowingVehicle:     r.TowingVehicle,
		Comments:          r.Comments,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:             resp.ID,
		RentalID:       resp.RentalID,
		AccessKey:      resp.AccessKey,
		TrailerID:      resp.TrailerID,
		StartDate:      resp.StartDate.Format(domain.DateFormat),
		EndDate:        resp.EndDate.Format(domain.DateFormat),
		Status:         resp.Status,
		Days:           resp.Days,
		EstimatedTotal: resp.EstimatedTotal,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
