package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/jla-rentals/JLA-BookingService/pkg/dates"
)

// Service проверяет доступность прицепа на диапазон дат.
// Активные бронирования (Pending/Approved/Paid) занимают прицеп;
// Closed и Rejected освобождают его.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Check проверяет, свободен ли прицеп на включительный диапазон
// [startDate, endDate]. excludeBookingID исключает бронирование из
// множества конфликтов — при переносе дат бронирование не должно
// конфликтовать само с собой.
func (s *Service) Check(ctx context.Context, trailerID int64, startDate, endDate time.Time, excludeBookingID *int64) (*Result, error) {
	if dates.DateOnly(startDate).After(dates.DateOnly(endDate)) {
		return nil, ErrInvalidRange
	}

	active, err := s.bookingRepo.GetActiveByTrailer(ctx, trailerID, excludeBookingID)
	if err != nil {
		s.logger.Error("Check: repository error for trailer=%d: %v", trailerID, err)
		return nil, fmt.Errorf("%w: Check - repository error: %v", ErrInternal, err)
	}

	conflicts := make([]Conflict, 0)
	for _, booking := range active {
		if dates.Overlaps(booking.StartDate, booking.EndDate, startDate, endDate) {
			conflicts = append(conflicts, Conflict{
				RentalID:  booking.RentalID,
				StartDate: booking.StartDate,
				EndDate:   booking.EndDate,
				Status:    booking.Status,
			})
		}
	}

	if len(conflicts) > 0 {
		s.logger.Info("Check: trailer=%d range %s..%s has %d conflict(s)",
			trailerID, startDate.Format(dates.Format), endDate.Format(dates.Format), len(conflicts))
	}

	return &Result{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}
