package bookings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jla-rentals/JLA-BookingService/internal/service/availability"
	"github.com/jla-rentals/JLA-BookingService/pkg/dates"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено.
	// Также возвращается при несовпадении ключа доступа — наружу нельзя
	// раскрывать, что именно оказалось неверным: rental ID или ключ.
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidPaymentLink возвращается, когда ссылка на оплату не
	// является корректным https URL
	ErrInvalidPaymentLink = errors.New("bookings: invalid payment link")

	// ErrNotPending возвращается при попытке подтвердить бронирование
	// не в статусе Pending
	ErrNotPending = errors.New("bookings: booking is not pending")

	// ErrCannotMarkPaid возвращается при попытке отметить оплату
	// бронирования, не находящегося в статусе Approved
	ErrCannotMarkPaid = errors.New("bookings: booking cannot be marked paid")

	// ErrCannotReschedule возвращается, когда перенос дат недоступен
	// для текущего статуса бронирования
	ErrCannotReschedule = errors.New("bookings: booking cannot be rescheduled")

	// ErrInvalidOutcome возвращается при недопустимой комбинации
	// статуса и исхода закрытия
	ErrInvalidOutcome = errors.New("bookings: invalid close outcome for booking status")

	// ErrTerminalState возвращается при попытке изменить закрытое или
	// отклоненное бронирование
	ErrTerminalState = errors.New("bookings: booking is in a terminal state")

	// ErrDateUnavailable возвращается, когда запрошенный диапазон дат
	// пересекается с другим активным бронированием
	ErrDateUnavailable = errors.New("bookings: requested dates are unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)

// DateUnavailableError несет список конфликтующих бронирований,
// чтобы вызывающая сторона могла предложить альтернативные даты.
// errors.Is(err, ErrDateUnavailable) для него истинно.
type DateUnavailableError struct {
	Conflicts []availability.Conflict
}

func (e *DateUnavailableError) Error() string {
	ranges := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		ranges[i] = fmt.Sprintf("%s (%s..%s)",
			c.RentalID, c.StartDate.Format(dates.Format), c.EndDate.Format(dates.Format))
	}
	return fmt.Sprintf("%v: %s", ErrDateUnavailable, strings.Join(ranges, ", "))
}

func (e *DateUnavailableError) Is(target error) bool {
	return target == ErrDateUnavailable
}
