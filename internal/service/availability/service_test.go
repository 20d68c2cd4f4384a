package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	"github.com/jla-rentals/JLA-BookingService/pkg/dates"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetActiveByTrailer(ctx context.Context, trailerID int64, excludeBookingID *int64) ([]*domain.Booking, error) {
	args := m.Called(ctx, trailerID, excludeBookingID)
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
	t, err := dates.Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func activeBooking(rentalID, start, end string) *domain.Booking {
	return &domain.Booking{
		ID:        1,
		RentalID:  rentalID,
		TrailerID: 7,
		StartDate: date(start),
		EndDate:   date(end),
		Status:    domain.StatusApproved,
	}
}

func TestCheck_TouchingEndpointConflicts(t *testing.T) {
	repo := new(mockBookingRepo)
	repo.On("GetActiveByTrailer", mock.Anything, int64(7), (*int64)(nil)).
		Return([]*domain.Booking{activeBooking("JLA-111111", "2025-06-10", "2025-06-12")}, nil)

	svc := NewService(repo, noopLogger{})

	result, err := svc.Check(context.Background(), 7, date("2025-06-12"), date("2025-06-14"), nil)
	require.NoError(t, err)

	assert.False(t, result.Available)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "JLA-111111", result.Conflicts[0].RentalID)
	assert.Equal(t, domain.StatusApproved, result.Conflicts[0].Status)
}

func TestCheck_AdjacentRangeIsFree(t *testing.T) {
	repo := new(mockBookingRepo)
	repo.On("GetActiveByTrailer", mock.Anything, int64(7), (*int64)(nil)).
		Return([]*domain.Booking{activeBooking("JLA-111111", "2025-06-10", "2025-06-12")}, nil)

	svc := NewService(repo, noopLogger{})

	result, err := svc.Check(context.Background(), 7, date("2025-06-13"), date("2025-06-14"), nil)
	require.NoError(t, err)

	assert.True(t, result.Available)
	assert.Empty(t, result.Conflicts)
}

func TestCheck_SingleDayRange(t *testing.T) {
	repo := new(mockBookingRepo)
	repo.On("GetActiveByTrailer", mock.Anything, int64(7), (*int64)(nil)).
		Return([]*domain.Booking{activeBooking("JLA-111111", "2025-06-10", "2025-06-10")}, nil)

	svc := NewService(repo, noopLogger{})

	result, err := svc.Check(context.Background(), 7, date("2025-06-10"), date("2025-06-10"), nil)
	require.NoError(t, err)
	assert.False(t, result.Available)

	result, err = svc.Check(context.Background(), 7, date("2025-06-11"), date("2025-06-11"), nil)
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheck_PassesExclusionToRepository(t *testing.T) {
	exclude := int64(42)

	repo := new(mockBookingRepo)
	repo.On("GetActiveByTrailer", mock.Anything, int64(7), &exclude).
		Return([]*domain.Booking{}, nil)

	svc := NewService(repo, noopLogger{})

	result, err := svc.Check(context.Background(), 7, date("2025-06-10"), date("2025-06-12"), &exclude)
	require.NoError(t, err)
	assert.True(t, result.Available)
	repo.AssertExpectations(t)
}

func TestCheck_InvalidRange(t *testing.T) {
	svc := NewService(new(mockBookingRepo), noopLogger{})

	_, err := svc.Check(context.Background(), 7, date("2025-06-14"), date("2025-06-10"), nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCheck_RepositoryError(t *testing.T) {
	repo := new(mockBookingRepo)
	repo.On("GetActiveByTrailer", mock.Anything, int64(7), (*int64)(nil)).
		Return(nil, errors.New("connection refused"))

	svc := NewService(repo, noopLogger{})

	_, err := svc.Check(context.Background(), 7, date("2025-06-10"), date("2025-06-12"), nil)
	assert.ErrorIs(t, err, ErrInternal)
}
