package import_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	bookingRepo "github.com/jla-rentals/JLA-BookingService/internal/infra/storage/booking"
	"github.com/jla-rentals/JLA-BookingService/internal/integrations/gcalendar"
	"github.com/jla-rentals/JLA-BookingService/internal/integrations/mailer"
	"github.com/jla-rentals/JLA-BookingService/pkg/dates"
)

// maxRentalIDAttempts сколько раз пробуем перевыпустить rental ID
// при коллизии по уникальному индексу
const maxRentalIDAttempts = 5

// UseCase сверка с внешним календарем: превращает телефонные
// бронирования, заведенные сотрудниками в календаре, в Pending
// бронирования. Повторный запуск по пересекающемуся окну безопасен:
// уникальность calendar_event_id в хранилище не дает создать дубликат.
type UseCase struct {
	source       CalendarSource
	bookings     BookingRepository
	clients      ClientRepository
	trailers     TrailerRepository
	availability AvailabilityChecker
	issuer       CredentialsIssuer
	notifier     Notifier
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase импорта календаря
func NewUseCase(
	source CalendarSource,
	bookings BookingRepository,
	clients ClientRepository,
	trailers TrailerRepository,
	availability AvailabilityChecker,
	issuer CredentialsIssuer,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		source:       source,
		bookings:     bookings,
		clients:      clients,
		trailers:     trailers,
		availability: availability,
		issuer:       issuer,
		notifier:     notifier,
		logger:       logger,
	}
}

// Execute забирает события из календаря за окно и импортирует их.
// Недоступность календаря прерывает весь батч; ошибка обработки
// отдельного события изолируется и считается как ignored.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.WindowStart.IsZero() || req.WindowEnd.IsZero() {
		return nil, fmt.Errorf("%w: sync window is required", ErrInvalidInput)
	}
	if dates.DateOnly(req.WindowStart).After(dates.DateOnly(req.WindowEnd)) {
		return nil, fmt.Errorf("%w: window start is after window end", ErrInvalidInput)
	}

	events, err := uc.source.ListEvents(ctx, req.WindowStart, req.WindowEnd)
	if err != nil {
		if errors.Is(err, gcalendar.ErrUpstreamUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		uc.logger.Error("Execute: failed to list events: %v", err)
		return nil, fmt.Errorf("%w: Execute - failed to list events: %v", ErrInternal, err)
	}

	trailers, err := uc.trailers.ListActive(ctx)
	if err != nil {
		uc.logger.Error("Execute: failed to list trailers: %v", err)
		return nil, fmt.Errorf("%w: Execute - failed to list trailers: %v", ErrInternal, err)
	}

	resp := &Response{}
	for i := range events {
		switch uc.importEvent(ctx, &events[i], trailers) {
		case importCreated:
			resp.Created++
		case importSkippedExisting:
			resp.SkippedExisting++
		case importIgnored:
			resp.Ignored++
		}
	}

	uc.logger.Info("Execute: sync finished: created=%d skipped=%d ignored=%d",
		resp.Created, resp.SkippedExisting, resp.Ignored)
	return resp, nil
}

type importOutcome int

const (
	importCreated importOutcome = iota
	importSkippedExisting
	importIgnored
)

// importEvent обрабатывает одно событие календаря. Любая ошибка
// обработки возвращает importIgnored и не прерывает батч.
func (uc *UseCase) importEvent(ctx context.Context, event *domain.ExternalEvent, trailers []*domain.Trailer) importOutcome {
	if event.ID == "" {
		uc.logger.Warn("importEvent: event without id, summary=%q", event.Summary)
		return importIgnored
	}

	exists, err := uc.bookings.ExistsByCalendarEventID(ctx, event.ID)
	if err != nil {
		uc.logger.Error("importEvent: dedupe check failed for event %s: %v", event.ID, err)
		return importIgnored
	}
	if exists {
		return importSkippedExisting
	}

	customerName, trailerLabel, ok := parseTitle(event.Summary)
	if !ok {
		uc.logger.Info("importEvent: event %s has non-booking title %q, ignoring", event.ID, event.Summary)
		return importIgnored
	}

	details := parseDescription(event.Description)

	startDate, err := parseEventDate(event.Start)
	if err != nil {
		uc.logger.Warn("importEvent: event %s has no usable start date: %v", event.ID, err)
		return importIgnored
	}
	endDate, err := parseEventDate(event.End)
	if err != nil {
		uc.logger.Warn("importEvent: event %s has no usable end date: %v", event.ID, err)
		return importIgnored
	}

	trailer := matchTrailer(trailers, trailerLabel)
	if trailer == nil {
		uc.logger.Warn("importEvent: event %s references unknown trailer %q", event.ID, trailerLabel)
		return importIgnored
	}

	// Телефонные бронирования авторитетны: пересечение с существующим
	// бронированием не блокирует импорт, но его стоит увидеть в логах
	if result, err := uc.availability.Check(ctx, trailer.ID, startDate, endDate, nil); err == nil && !result.Available {
		uc.logger.Warn("importEvent: event %s overlaps %d existing booking(s) on trailer %q",
			event.ID, len(result.Conflicts), trailer.Name)
	}

	created, accessKey, err := uc.createBooking(ctx, event, trailer, customerName, details, startDate, endDate)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateCalendarEvent) {
			return importSkippedExisting
		}
		uc.logger.Error("importEvent: failed to import event %s: %v", event.ID, err)
		return importIgnored
	}

	uc.logger.Info("importEvent: created booking %s from event %s (trailer %q, %s..%s)",
		created.RentalID, event.ID, trailer.Name,
		created.StartDate.Format(dates.Format), created.EndDate.Format(dates.Format))

	if !isPlaceholderEmail(details.Email) {
		uc.sendConfirmation(ctx, created, details.Email, accessKey)
	}
	return importCreated
}

// createBooking разрешает клиента, выпускает учетные данные и
// вставляет Pending-бронирование с calendar_event_id события.
// Коллизия rental ID перевыпускает учетные данные, коллизия
// calendar_event_id отдается наверх как "уже импортировано".
func (uc *UseCase) createBooking(
	ctx context.Context,
	event *domain.ExternalEvent,
	trailer *domain.Trailer,
	customerName string,
	details eventDetails,
	startDate, endDate time.Time,
) (*domain.Booking, string, error) {
	firstName, lastName := splitName(customerName)

	for attempt := 1; attempt <= maxRentalIDAttempts; attempt++ {
		creds, err := uc.issuer.Issue()
		if err != nil {
			return nil, "", fmt.Errorf("failed to issue credentials: %w", err)
		}

		email := details.Email
		if isPlaceholderEmail(email) {
			email = placeholderEmail(creds.RentalID, event.ID)
		}

		client, err := uc.clients.Upsert(ctx, &domain.Client{
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
			Phone:     details.Phone,
			Comments:  commentsPtr(details.Notes),
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to upsert client: %w", err)
		}

		booking := &domain.Booking{
			RentalID:          creds.RentalID,
			TrailerID:         trailer.ID,
			ClientID:          client.ID,
			StartDate:         startDate,
			EndDate:           endDate,
			DeliveryRequested: details.Delivery,
			Status:            domain.StatusPending,
			AccessKeyHash:     creds.AccessKeyHash,
			CalendarEventID:   &event.ID,
		}

		created, err := uc.bookings.Create(ctx, booking)
		if err == nil {
			return created, creds.AccessKey, nil
		}
		if errors.Is(err, bookingRepo.ErrDuplicateRentalID) {
			uc.logger.Warn("createBooking: rental id collision on %s, attempt %d/%d", creds.RentalID, attempt, maxRentalIDAttempts)
			continue
		}
		return nil, "", err
	}
	return nil, "", fmt.Errorf("rental id space exhausted after %d attempts", maxRentalIDAttempts)
}

// sendConfirmation отправляет клиенту rental ID и ключ доступа.
// Ошибка отправки не отменяет импорт.
func (uc *UseCase) sendConfirmation(ctx context.Context, booking *domain.Booking, email, accessKey string) {
	err := uc.notifier.Send(ctx, mailer.KindBookingReceived, email, map[string]interface{}{
		"RentalID":  booking.RentalID,
		"AccessKey": accessKey,
		"StartDate": booking.StartDate.Format(dates.Format),
		"EndDate":   booking.EndDate.Format(dates.Format),
	})
	if err != nil {
		uc.logger.Error("sendConfirmation: failed for %s: %v", booking.RentalID, err)
	}
}

func commentsPtr(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}
