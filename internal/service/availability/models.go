package availability

import (
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
)

// Conflict описывает активное бронирование, пересекающееся с
// запрошенным диапазоном дат
type Conflict struct {
	RentalID  string
	StartDate time.Time
	EndDate   time.Time
	Status    domain.BookingStatus
}

// Result результат проверки доступности
type Result struct {
	Available bool
	Conflicts []Conflict
}
