package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	bookingRepo "github.com/jla-rentals/JLA-BookingService/internal/infra/storage/booking"
	trailerRepo "github.com/jla-rentals/JLA-BookingService/internal/infra/storage/trailer"
	"github.com/jla-rentals/JLA-BookingService/internal/service/availability"
	"github.com/jla-rentals/JLA-BookingService/internal/service/credentials"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) SetConfirmationSent(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) Upsert(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

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

type mockAvailability struct {
	mock.Mock
}

func (m *mockAvailability) Check(ctx context.Context, trailerID int64, startDate, endDate time.Time, excludeBookingID *int64) (*availability.Result, error) {
	args := m.Called(ctx, trailerID, startDate, endDate, excludeBookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Result), args.Error(1)
}

type mockIssuer struct {
	mock.Mock
}

func (m *mockIssuer) Issue() (*credentials.Credentials, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentials.Credentials), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, kind, recipient string, data map[string]interface{}) error {
	return m.Called(ctx, kind, recipient, data).Error(0)
}

// fakeTxManager прогоняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	bookings *mockBookingRepo
	clients  *mockClientRepo
	trailers *mockTrailerRepo
	avail    *mockAvailability
	issuer   *mockIssuer
	notifier *mockNotifier
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings: new(mockBookingRepo),
		clients:  new(mockClientRepo),
		trailers: new(mockTrailerRepo),
		avail:    new(mockAvailability),
		issuer:   new(mockIssuer),
		notifier: new(mockNotifier),
	}
	f.uc = NewUseCase(f.bookings, f.clients, f.trailers, f.avail, f.issuer, f.notifier, fakeTxManager{}, noopLogger{})
	return f
}

func testRequest() *Request {
	start := time.Now().AddDate(0, 0, 7)
	return &Request{
		TrailerID: 1,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		Email:     "Jane@Example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "305-555-0100",
	}
}

func testTrailer() *domain.Trailer {
	return &domain.Trailer{ID: 1, Name: "6x12 Utility Trailer", RatePerDay: 45, Active: true}
}

func testCreds() *credentials.Credentials {
	return &credentials.Credentials{
		RentalID:      "JLA-777777",
		AccessKey:     "123456",
		AccessKeyHash: "$2a$10$hash",
	}
}

func createdFrom(req *Request) *domain.Booking {
	return &domain.Booking{
		ID:        100,
		RentalID:  "JLA-777777",
		TrailerID: req.TrailerID,
		ClientID:  3,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}
}

func TestExecute_HappyPath(t *testing.T) {
	f := newFixture()
	req := testRequest()

	f.trailers.On("GetByID", mock.Anything, int64(1)).Return(testTrailer(), nil)
	f.avail.On("Check", mock.Anything, int64(1), req.StartDate, req.EndDate, (*int64)(nil)).
		Return(&availability.Result{Available: true}, nil)
	f.clients.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.Email == "jane@example.com"
	})).Return(&domain.Client{ID: 3, Email: "jane@example.com"}, nil)
	f.issuer.On("Issue").Return(testCreds(), nil)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.RentalID == "JLA-777777" && b.Status == domain.StatusPending && b.AccessKeyHash == "$2a$10$hash"
	})).Return(createdFrom(req), nil)
	f.notifier.On("Send", mock.Anything, "booking_received", "Jane@Example.com", mock.MatchedBy(func(data map[string]interface{}) bool {
		return data["AccessKey"] == "123456" && data["RentalID"] == "JLA-777777"
	})).Return(nil)
	f.bookings.On("SetConfirmationSent", mock.Anything, int64(100)).Return(nil)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "JLA-777777", resp.RentalID)
	assert.Equal(t, "123456", resp.AccessKey, "plaintext key is returned exactly once")
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, float64(3)*45, resp.EstimatedTotal)
	f.bookings.AssertExpectations(t)
}

func TestExecute_DateConflict(t *testing.T) {
	f := newFixture()
	req := testRequest()

	f.trailers.On("GetByID", mock.Anything, int64(1)).Return(testTrailer(), nil)
	f.avail.On("Check", mock.Anything, int64(1), req.StartDate, req.EndDate, (*int64)(nil)).
		Return(&availability.Result{
			Available: false,
			Conflicts: []availability.Conflict{{
				RentalID:  "JLA-111111",
				StartDate: req.StartDate,
				EndDate:   req.EndDate,
				Status:    domain.StatusApproved,
			}},
		}, nil)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateUnavailable)

	var unavailable *DateUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Len(t, unavailable.Conflicts, 1)

	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_TrailerNotFound(t *testing.T) {
	f := newFixture()
	f.trailers.On("GetByID", mock.Anything, int64(1)).Return(nil, trailerRepo.ErrTrailerNotFound)

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrTrailerNotFound)
}

func TestExecute_TrailerInactive(t *testing.T) {
	f := newFixture()
	inactive := testTrailer()
	inactive.Active = false
	f.trailers.On("GetByID", mock.Anything, int64(1)).Return(inactive, nil)

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrTrailerInactive)
}

func TestExecute_RentalIDCollisionRetries(t *testing.T) {
	f := newFixture()
	req := testRequest()

	f.trailers.On("GetByID", mock.Anything, int64(1)).Return(testTrailer(), nil)
	f.avail.On("Check", mock.Anything, int64(1), req.StartDate, req.EndDate, (*int64)(nil)).
		Return(&availability.Result{Available: true}, nil)
	f.clients.On("Upsert", mock.Anything, mock.Anything).
		Return(&domain.Client{ID: 3, Email: "jane@example.com"}, nil)

	first := testCreds()
	second := &credentials.Credentials{RentalID: "JLA-888888", AccessKey: "654321", AccessKeyHash: "$2a$10$other"}
	f.issuer.On("Issue").Return(first, nil).Once()
	f.issuer.On("Issue").Return(second, nil).Once()

	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.RentalID == "JLA-777777"
	})).Return(nil, bookingRepo.ErrDuplicateRentalID).Once()

	created := createdFrom(req)
	created.RentalID = "JLA-888888"
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.RentalID == "JLA-888888"
	})).Return(created, nil)
	f.notifier.On("Send", mock.Anything, "booking_received", "Jane@Example.com", mock.Anything).Return(nil)
	f.bookings.On("SetConfirmationSent", mock.Anything, int64(100)).Return(nil)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "JLA-888888", resp.RentalID)
	assert.Equal(t, "654321", resp.AccessKey)
	f.issuer.AssertNumberOfCalls(t, "Issue", 2)
}

func TestExecute_NotificationFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture()
	req := testRequest()

	f.trailers.On("GetByID", mock.Anything, int64(1)).Return(testTrailer(), nil)
	f.avail.On("Check", mock.Anything, int64(1), req.StartDate, req.EndDate, (*int64)(nil)).
		Return(&availability.Result{Available: true}, nil)
	f.clients.On("Upsert", mock.Anything, mock.Anything).
		Return(&domain.Client{ID: 3, Email: "jane@example.com"}, nil)
	f.issuer.On("Issue").Return(testCreds(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(createdFrom(req), nil)
	f.notifier.On("Send", mock.Anything, "booking_received", "Jane@Example.com", mock.Anything).
		Return(assert.AnError)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "JLA-777777", resp.RentalID)

	f.bookings.AssertNotCalled(t, "SetConfirmationSent", mock.Anything, mock.Anything)
}
