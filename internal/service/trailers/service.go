package trailers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	trailerRepo "github.com/jla-rentals/JLA-BookingService/internal/infra/storage/trailer"
	"github.com/jla-rentals/JLA-BookingService/internal/service/trailers/models"
	"github.com/jla-rentals/JLA-BookingService/pkg/dates"
	"github.com/jla-rentals/JLA-BookingService/pkg/ptr"
)

// Service справочник прицепов и агрегированный календарь бронирований
type Service struct {
	trailerRepo TrailerRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса прицепов
func NewService(trailerRepo TrailerRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		trailerRepo: trailerRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// ListActive возвращает активные прицепы для витрины
func (s *Service) ListActive(ctx context.Context) (*models.TrailerListResponse, error) {
	trailers, err := s.trailerRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	resp := &models.TrailerListResponse{Trailers: make([]models.TrailerResponse, len(trailers))}
	for i, t := range trailers {
		resp.Trailers[i] = models.FromDomainTrailer(t)
	}
	return resp, nil
}

// GetByID возвращает прицеп по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TrailerResponse, error) {
	trailer, err := s.trailerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, trailerRepo.ErrTrailerNotFound) {
			return nil, ErrTrailerNotFound
		}
		s.logger.Error("GetByID: repository error for trailer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	result := models.FromDomainTrailer(trailer)
	return &result, nil
}

// GetCalendar собирает календарь бронирований за период: активные
// бронирования всех прицепов, пересекающиеся с окном, включая
// импортированные из внешнего календаря. Ручные блокировки без
// rental ID отображаются как Blocked.
func (s *Service) GetCalendar(ctx context.Context, startDate, endDate time.Time) (*models.CalendarResponse, error) {
	if dates.DateOnly(startDate).After(dates.DateOnly(endDate)) {
		return nil, fmt.Errorf("%w: start date is after end date", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		StartDate:  ptr.Ptr(startDate),
		EndDate:    ptr.Ptr(endDate),
		ActiveOnly: true,
	})
	if err != nil {
		s.logger.Error("GetCalendar: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCalendar - repository error: %v", ErrInternal, err)
	}

	trailers, err := s.trailerRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("GetCalendar: failed to list trailers: %v", err)
		return nil, fmt.Errorf("%w: GetCalendar - failed to list trailers: %v", ErrInternal, err)
	}

	trailersByID := make(map[int64]*domain.Trailer, len(trailers))
	for _, t := range trailers {
		trailersByID[t.ID] = t
	}

	entries := make([]models.CalendarEntry, 0, len(bookings))
	for _, b := range bookings {
		entry := models.CalendarEntry{
			BookingID: b.ID,
			RentalID:  b.RentalID,
			TrailerID: b.TrailerID,
			StartDate: b.StartDate.Format(dates.Format),
			EndDate:   b.EndDate.Format(dates.Format),
			Days:      dates.DaysBetween(b.StartDate, b.EndDate) + 1,
			Status:    b.DisplayStatus(),
			Imported:  b.IsImported(),
		}
		if t, ok := trailersByID[b.TrailerID]; ok {
			entry.TrailerName = t.Name
			entry.ColorHex = t.ColorHex
		}
		entries = append(entries, entry)
	}

	s.logger.Info("GetCalendar: %d entries for %s..%s",
		len(entries), startDate.Format(dates.Format), endDate.Format(dates.Format))

	return &models.CalendarResponse{
		StartDate: startDate.Format(dates.Format),
		EndDate:   endDate.Format(dates.Format),
		Entries:   entries,
	}, nil
}
