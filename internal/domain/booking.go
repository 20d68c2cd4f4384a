package domain

import "time"

// BookingStatus represents the status of a rental booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "Pending"
	StatusApproved BookingStatus = "Approved"
	StatusPaid     BookingStatus = "Paid"
	StatusClosed   BookingStatus = "Closed"
	StatusRejected BookingStatus = "Rejected"
)

// CloseOutcome is recorded when a booking reaches the Closed status
type CloseOutcome string

const (
	OutcomeCompleted CloseOutcome = "completed"
	OutcomeCancelled CloseOutcome = "cancelled"
)

// StatusBlocked is a presentation-only label for bookings without a
// rental ID (manual calendar blocks). It is never stored.
const StatusBlocked = "Blocked"

// Booking represents a trailer rental booking in the system
type Booking struct {
	ID       int64
	RentalID string // human-facing identifier, "JLA-######"

	TrailerID int64
	ClientID  int64

	StartDate time.Time // inclusive
	EndDate   time.Time // inclusive

	PickupTime *string // "15:04", no timezone
	ReturnTime *string

	DeliveryRequested bool
	Status            BookingStatus

	AccessKeyHash string
	PaymentLink   *string

	ApprovedAt         *time.Time
	PaidAt             *time.Time
	PaymentLinkSentAt  *time.Time
	ConfirmationSentAt *time.Time

	CloseOutcome *CloseOutcome
	CloseReason  *string

	// CalendarEventID links a booking imported from the external
	// calendar to its source event; unique when present.
	CalendarEventID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts against availability
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusApproved || b.Status == StatusPaid
}

// IsTerminal returns true if no further transitions are permitted
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusClosed || b.Status == StatusRejected
}

// CanBeApproved returns true if the booking can move to Approved
func (b *Booking) CanBeApproved() bool {
	return b.Status == StatusPending
}

// CanBeMarkedPaid returns true if markPaid is meaningful for the booking.
// A booking already Paid is a valid idempotent no-op target, not an error.
func (b *Booking) CanBeMarkedPaid() bool {
	return b.Status == StatusApproved || b.Status == StatusPaid
}

// CanBeRescheduled returns true if the booking dates can be changed
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusApproved || b.Status == StatusPaid
}

// CanBeCancelled returns true if the booking can be closed as cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// CanBeCompleted returns true if the booking can be closed as completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusPaid
}

// IsImported returns true if the booking originated from the external calendar
func (b *Booking) IsImported() bool {
	return b.CalendarEventID != nil && *b.CalendarEventID != ""
}

// DisplayStatus returns the status label shown to staff.
// Bookings without a rental ID are manual calendar blocks and are
// displayed as Blocked; the stored status is untouched.
func (b *Booking) DisplayStatus() string {
	if b.RentalID == "" {
		return StatusBlocked
	}
	return string(b.Status)
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	TrailerID  *int64         // Фильтр по прицепу (опционально)
	StartDate  *time.Time     // Начало периода (опционально)
	EndDate    *time.Time     // Конец периода (опционально)
	Status     *BookingStatus // Фильтр по статусу (опционально)
	ActiveOnly bool           // Только активные бронирования (Pending/Approved/Paid)
}
