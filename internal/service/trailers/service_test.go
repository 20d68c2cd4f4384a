package trailers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
)

type mockTrailerRepo struct {
	mock.Mock
}

func (m *mockTrailerRepo) GetByID(ctx context.Context, id int64) (*domain.Trailer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trailer), args.Error(1)
}

func (m *mockTrailerRepo) ListActive(ctx context.Context) ([]*domain.Trailer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Trailer), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestListActive(t *testing.T) {
	trailerRepo := new(mockTrailerRepo)
	trailerRepo.On("ListActive", mock.Anything).Return([]*domain.Trailer{
		{ID: 1, Name: "6x12 Utility Trailer", RatePerDay: 45, Active: true},
		{ID: 2, Name: "Car Hauler", RatePerDay: 65, Active: true},
	}, nil)

	svc := NewService(trailerRepo, new(mockBookingRepo), noopLogger{})

	resp, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Trailers, 2)
	assert.Equal(t, "6x12 Utility Trailer", resp.Trailers[0].Name)
	assert.Equal(t, float64(65), resp.Trailers[1].RatePerDay)
}

func TestGetCalendar(t *testing.T) {
	eventID := "evt-1"
	trailerRepo := new(mockTrailerRepo)
	trailerRepo.On("ListActive", mock.Anything).Return([]*domain.Trailer{
		{ID: 1, Name: "6x12 Utility Trailer", Active: true},
	}, nil)

	bookingRepo := new(mockBookingRepo)
	bookingRepo.On("GetWithFilter", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.ActiveOnly && f.StartDate != nil && f.EndDate != nil
	})).Return([]*domain.Booking{
		{
			ID: 10, RentalID: "JLA-123456", TrailerID: 1,
			StartDate: date("2025-06-10"), EndDate: date("2025-06-12"),
			Status: domain.StatusApproved,
		},
		{
			ID: 11, RentalID: "", TrailerID: 1,
			StartDate: date("2025-06-20"), EndDate: date("2025-06-20"),
			Status:          domain.StatusPending,
			CalendarEventID: &eventID,
		},
	}, nil)

	svc := NewService(trailerRepo, bookingRepo, noopLogger{})

	resp, err := svc.GetCalendar(context.Background(), date("2025-06-01"), date("2025-06-30"))
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)

	approved := resp.Entries[0]
	assert.Equal(t, "JLA-123456", approved.RentalID)
	assert.Equal(t, "Approved", approved.Status)
	assert.Equal(t, "6x12 Utility Trailer", approved.TrailerName)
	assert.Equal(t, 3, approved.Days)
	assert.False(t, approved.Imported)

	blocked := resp.Entries[1]
	assert.Equal(t, "Blocked", blocked.Status, "manual block without rental ID is shown as Blocked")
	assert.Equal(t, 1, blocked.Days)
	assert.True(t, blocked.Imported)
}

func TestGetCalendar_InvalidRange(t *testing.T) {
	svc := NewService(new(mockTrailerRepo), new(mockBookingRepo), noopLogger{})

	_, err := svc.GetCalendar(context.Background(), date("2025-06-30"), date("2025-06-01"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
