package models

import (
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
)

// Request модели

// ApproveRequest запрос на подтверждение бронирования
type ApproveRequest struct {
	PaymentLink string `json:"paymentLink"`
}

// CloseRequest запрос на закрытие бронирования
type CloseRequest struct {
	Outcome string  `json:"outcome"` // completed | cancelled
	Reason  *string `json:"reason,omitempty"`
}

// RescheduleRequest запрос на перенос дат бронирования
type RescheduleRequest struct {
	StartDate time.Time
	EndDate   time.Time
}

// LookupRequest запрос самостоятельного поиска бронирования клиентом
type LookupRequest struct {
	RentalID  string `json:"rentalId"`
	AccessKey string `json:"accessKey"`
}

// Response модели

// BookingResponse ответ с данными бронирования.
// Ключ доступа и его хеш наружу не отдаются.
type BookingResponse struct {
	ID                int64   `json:"id"`
	RentalID          string  `json:"rentalId"`
	TrailerID         int64   `json:"trailerId"`
	ClientID          int64   `json:"clientId"`
	StartDate         string  `json:"startDate"` // "2025-06-10"
	EndDate           string  `json:"endDate"`
	PickupTime        *string `json:"pickupTime,omitempty"`
	ReturnTime        *string `json:"returnTime,omitempty"`
	DeliveryRequested bool    `json:"deliveryRequested"`
	Status            string  `json:"status"`
	DisplayStatus     string  `json:"displayStatus"`
	PaymentLink       *string `json:"paymentLink,omitempty"`

	ApprovedAt         *string `json:"approvedAt,omitempty"` // ISO 8601
	PaidAt             *string `json:"paidAt,omitempty"`
	PaymentLinkSentAt  *string `json:"paymentLinkSentAt,omitempty"`
	ConfirmationSentAt *string `json:"confirmationSentAt,omitempty"`

	CloseOutcome *string `json:"closeOutcome,omitempty"`
	CloseReason  *string `json:"closeReason,omitempty"`

	Imported bool `json:"imported"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		RentalID:           b.RentalID,
		TrailerID:          b.TrailerID,
		ClientID:           b.ClientID,
		StartDate:          b.StartDate.Format(domain.DateFormat),
		EndDate:            b.EndDate.Format(domain.DateFormat),
		PickupTime:         b.PickupTime,
		ReturnTime:         b.ReturnTime,
		DeliveryRequested:  b.DeliveryRequested,
		Status:             string(b.Status),
		DisplayStatus:      b.DisplayStatus(),
		PaymentLink:        b.PaymentLink,
		ApprovedAt:         formatTime(b.ApprovedAt),
		PaidAt:             formatTime(b.PaidAt),
		PaymentLinkSentAt:  formatTime(b.PaymentLinkSentAt),
		ConfirmationSentAt: formatTime(b.ConfirmationSentAt),
		CloseReason:        b.CloseReason,
		Imported:           b.IsImported(),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CloseOutcome != nil {
		outcome := string(*b.CloseOutcome)
		resp.CloseOutcome = &outcome
	}

	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
