package import_calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	bookingRepo "github.com/jla-rentals/JLA-BookingService/internal/infra/storage/booking"
	"github.com/jla-rentals/JLA-BookingService/internal/integrations/gcalendar"
	"github.com/jla-rentals/JLA-BookingService/internal/service/availability"
	"github.com/jla-rentals/JLA-BookingService/internal/service/credentials"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) ListEvents(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.ExternalEvent, error) {
	args := m.Called(ctx, windowStart, windowEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExternalEvent), args.Error(1)
}

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

func (m *mockBookingRepo) ExistsByCalendarEventID(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
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

func (m *mockTrailerRepo) ListActive(ctx context.Context) ([]*domain.Trailer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Trailer), args.Error(1)
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

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	source   *mockSource
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
		source:   new(mockSource),
		bookings: new(mockBookingRepo),
		clients:  new(mockClientRepo),
		trailers: new(mockTrailerRepo),
		avail:    new(mockAvailability),
		issuer:   new(mockIssuer),
		notifier: new(mockNotifier),
	}
	f.uc = NewUseCase(f.source, f.bookings, f.clients, f.trailers, f.avail, f.issuer, f.notifier, noopLogger{})
	return f
}

func testWindow() *Request {
	return &Request{
		WindowStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
	}
}

func testTrailers() []*domain.Trailer {
	return []*domain.Trailer{
		{ID: 1, Name: "6x12 Utility Trailer", Active: true},
		{ID: 2, Name: "Car Hauler", Active: true},
	}
}

func testCreds() *credentials.Credentials {
	return &credentials.Credentials{
		RentalID:      "JLA-777777",
		AccessKey:     "123456",
		AccessKeyHash: "$2a$10$hash",
	}
}

func phoneBookingEvent() domain.ExternalEvent {
	return domain.ExternalEvent{
		ID:          "evt-1",
		Summary:     "Jane Doe - 6x12 Utility",
		Description: "phone=305-555-0100\nemail=jane@example.com\ndelivery=yes",
		Start:       "2025-07-01",
		End:         "2025-07-03",
	}
}

func available() *availability.Result {
	return &availability.Result{Available: true}
}

func TestExecute_ImportsPhoneBooking(t *testing.T) {
	f := newFixture()
	req := testWindow()

	f.source.On("ListEvents", mock.Anything, req.WindowStart, req.WindowEnd).
		Return([]domain.ExternalEvent{phoneBookingEvent()}, nil)
	f.trailers.On("ListActive", mock.Anything).Return(testTrailers(), nil)
	f.bookings.On("ExistsByCalendarEventID", mock.Anything, "evt-1").Return(false, nil)
	f.avail.On("Check", mock.Anything, int64(1), mock.Anything, mock.Anything, (*int64)(nil)).
		Return(available(), nil)
	f.issuer.On("Issue").Return(testCreds(), nil)

	f.clients.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.Email == "jane@example.com" && c.FirstName == "Jane" && c.LastName == "Doe" &&
			c.Phone == "305-555-0100"
	})).Return(&domain.Client{ID: 3, Email: "jane@example.com", FirstName: "Jane"}, nil)

	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.RentalID == "JLA-777777" &&
			b.TrailerID == 1 &&
			b.Status == domain.StatusPending &&
			b.DeliveryRequested &&
			b.CalendarEventID != nil && *b.CalendarEventID == "evt-1" &&
			b.StartDate.Format("2006-01-02") == "2025-07-01" &&
			b.EndDate.Format("2006-01-02") == "2025-07-03"
	})).Return(&domain.Booking{
		ID:        100,
		RentalID:  "JLA-777777",
		TrailerID: 1,
		Status:    domain.StatusPending,
		StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
	}, nil)

	f.notifier.On("Send", mock.Anything, "booking_received", "jane@example.com", mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 0, resp.SkippedExisting)
	assert.Equal(t, 0, resp.Ignored)
	f.bookings.AssertExpectations(t)
}

func TestExecute_RerunSkipsImportedEvent(t *testing.T) {
	f := newFixture()
	req := testWindow()

	f.source.On("ListEvents", mock.Anything, req.WindowStart, req.WindowEnd).
		Return([]domain.ExternalEvent{phoneBookingEvent()}, nil)
	f.trailers.On("ListActive", mock.Anything).Return(testTrailers(), nil)
	f.bookings.On("ExistsByCalendarEventID", mock.Anything, "evt-1").Return(true, nil)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 1, resp.SkippedExisting)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_ConstraintViolationCountsAsSkipped(t *testing.T) {
	// Гонка двух параллельных синхронизаций: пре-чек прошел, но вставка
	// уперлась в уникальность calendar_event_id
	f := newFixture()
	req := testWindow()

	f.source.On("ListEvents", mock.Anything, req.WindowStart, req.WindowEnd).
		Return([]domain.ExternalEvent{phoneBookingEvent()}, nil)
	f.trailers.On("ListActive", mock.Anything).Return(testTrailers(), nil)
	f.bookings.On("ExistsByCalendarEventID", mock.Anything, "evt-1").Return(false, nil)
	f.avail.On("Check", mock.Anything, int64(1), mock.Anything, mock.Anything, (*int64)(nil)).
		Return(available(), nil)
	f.issuer.On("Issue").Return(testCreds(), nil)
	f.clients.On("Upsert", mock.Anything, mock.Anything).
		Return(&domain.Client{ID: 3, Email: "jane@example.com"}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil, bookingRepo.ErrDuplicateCalendarEvent)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 1, resp.SkippedExisting)
	assert.Equal(t, 0, resp.Ignored)
}

func TestExecute_IgnoresNonBookingEvent(t *testing.T) {
	f := newFixture()
	req := testWindow()

	f.source.On("ListEvents", mock.Anything, req.WindowStart, req.WindowEnd).
		Return([]domain.ExternalEvent{{
			ID:      "evt-2",
			Summary: "Walk-in block",
			Start:   "2025-07-01",
			End:     "2025-07-03",
		}}, nil)
	f.trailers.On("ListActive", mock.Anything).Return(testTrailers(), nil)
	f.bookings.On("ExistsByCalendarEventID", mock.Anything, "evt-2").Return(false, nil)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Ignored)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_IgnoresEventWithoutID(t *testing.T) {
	f := newFixture()
	req := testWindow()

	event := phoneBookingEvent()
	event.ID = ""
	f.source.On("ListEvents", mock.Anything, req.WindowStart, req.WindowEnd).
		Return([]domain.ExternalEvent{event}, nil)
	f.trailers.On("ListActive", mock.Anything).Return(testTrailers(), nil)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Ignored)
}

func TestExecute_IgnoresUnknownTrailer(t *testing.T) {
	f := newFixture()
	req := testWindow()

	event := phoneBookingEvent()
	event.Summary = "Jane Doe - Dump Trailer"
	f.source.On("ListEvents", mock.Anything, req.WindowStart, req.WindowEnd).
		Return([]domain.ExternalEvent{event}, nil)
	f.trailers.On("ListActive", mock.Anything).Return(testTrailers(), nil)
	f.bookings.On("ExistsByCalendarEventID", mock.Anything, "evt-1").Return(false, nil)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Ignored)
}

func TestExecute_PerItemFailureDoesNotAbortBatch(t *testing.T) {
	f := newFixture()
	req := testWindow()

	broken := phoneBookingEvent()
	broken.ID = "evt-broken"
	good := phoneBookingEvent()
	good.ID = "evt-good"

	f.source.On("ListEvents", mock.Anything, req.WindowStart, req.WindowEnd).
		Return([]domain.ExternalEvent{broken, good}, nil)
	f.trailers.On("ListActive", mock.Anything).Return(testTrailers(), nil)
	f.bookings.On("ExistsByCalendarEventID", mock.Anything, "evt-broken").Return(false, nil)
	f.bookings.On("ExistsByCalendarEventID", mock.Anything, "evt-good").Return(false, nil)
	f.avail.On("Check", mock.Anything, int64(1), mock.Anything, mock.Anything, (*int64)(nil)).
		Return(available(), nil)
	f.issuer.On("Issue").Return(testCreds(), nil)
	f.clients.On("Upsert", mock.Anything, mock.Anything).
		Return(&domain.Client{ID: 3, Email: "jane@example.com"}, nil)

	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return *b.CalendarEventID == "evt-broken"
	})).Return(nil, assert.AnError)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return *b.CalendarEventID == "evt-good"
	})).Return(&domain.Booking{ID: 101, RentalID: "JLA-777777", StartDate: time.Now(), EndDate: time.Now()}, nil)
	f.notifier.On("Send", mock.Anything, "booking_received", "jane@example.com", mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 1, resp.Ignored)
}

func TestExecute_SourceFailureAbortsBatch(t *testing.T) {
	f := newFixture()
	req := testWindow()

	f.source.On("ListEvents", mock.Anything, req.WindowStart, req.WindowEnd).
		Return(nil, gcalendar.ErrUpstreamUnavailable)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_PlaceholderEmailSkipsNotification(t *testing.T) {
	f := newFixture()
	req := testWindow()

	event := phoneBookingEvent()
	event.Description = "phone=305-555-0100\nemail=none"
	f.source.On("ListEvents", mock.Anything, req.WindowStart, req.WindowEnd).
		Return([]domain.ExternalEvent{event}, nil)
	f.trailers.On("ListActive", mock.Anything).Return(testTrailers(), nil)
	f.bookings.On("ExistsByCalendarEventID", mock.Anything, "evt-1").Return(false, nil)
	f.avail.On("Check", mock.Anything, int64(1), mock.Anything, mock.Anything, (*int64)(nil)).
		Return(available(), nil)
	f.issuer.On("Issue").Return(testCreds(), nil)

	f.clients.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.Email == placeholderEmail("JLA-777777", "evt-1")
	})).Return(&domain.Client{ID: 4}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Booking{ID: 102, RentalID: "JLA-777777", StartDate: time.Now(), EndDate: time.Now()}, nil)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Created)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_RentalIDCollisionRetries(t *testing.T) {
	f := newFixture()
	req := testWindow()

	f.source.On("ListEvents", mock.Anything, req.WindowStart, req.WindowEnd).
		Return([]domain.ExternalEvent{phoneBookingEvent()}, nil)
	f.trailers.On("ListActive", mock.Anything).Return(testTrailers(), nil)
	f.bookings.On("ExistsByCalendarEventID", mock.Anything, "evt-1").Return(false, nil)
	f.avail.On("Check", mock.Anything, int64(1), mock.Anything, mock.Anything, (*int64)(nil)).
		Return(available(), nil)

	first := testCreds()
	second := &credentials.Credentials{RentalID: "JLA-888888", AccessKey: "654321", AccessKeyHash: "$2a$10$other"}
	f.issuer.On("Issue").Return(first, nil).Once()
	f.issuer.On("Issue").Return(second, nil).Once()

	f.clients.On("Upsert", mock.Anything, mock.Anything).
		Return(&domain.Client{ID: 3, Email: "jane@example.com"}, nil)

	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.RentalID == "JLA-777777"
	})).Return(nil, bookingRepo.ErrDuplicateRentalID).Once()
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.RentalID == "JLA-888888"
	})).Return(&domain.Booking{ID: 103, RentalID: "JLA-888888", StartDate: time.Now(), EndDate: time.Now()}, nil)
	f.notifier.On("Send", mock.Anything, "booking_received", "jane@example.com", mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Created)
	f.issuer.AssertNumberOfCalls(t, "Issue", 2)
}
