package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jla-rentals/JLA-BookingService/internal/service/availability"
	"github.com/jla-rentals/JLA-BookingService/pkg/dates"
)

var (
	// ErrTrailerNotFound возвращается, когда прицеп не найден
	ErrTrailerNotFound = errors.New("create_booking: trailer not found")

	// ErrTrailerInactive возвращается, когда прицеп снят с аренды
	ErrTrailerInactive = errors.New("create_booking: trailer is not available for rent")

	// ErrDateUnavailable возвращается, когда запрошенный диапазон дат
	// пересекается с активным бронированием этого прицепа
	ErrDateUnavailable = errors.New("create_booking: requested dates are unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// DateUnavailableError несет конфликтующие диапазоны, чтобы клиенту
// можно было показать занятые даты. errors.Is(err, ErrDateUnavailable)
// для него истинно.
type DateUnavailableError struct {
	Conflicts []availability.Conflict
}

func (e *DateUnavailableError) Error() string {
	ranges := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		ranges[i] = fmt.Sprintf("%s..%s", c.StartDate.Format(dates.Format), c.EndDate.Format(dates.Format))
	}
	return fmt.Sprintf("%v: %s", ErrDateUnavailable, strings.Join(ranges, ", "))
}

func (e *DateUnavailableError) Is(target error) bool {
	return target == ErrDateUnavailable
}
