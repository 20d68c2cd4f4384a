package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	bookingRepo "github.com/jla-rentals/JLA-BookingService/internal/infra/storage/booking"
	trailerRepo "github.com/jla-rentals/JLA-BookingService/internal/infra/storage/trailer"
	"github.com/jla-rentals/JLA-BookingService/internal/integrations/mailer"
	"github.com/jla-rentals/JLA-BookingService/pkg/dates"
)

// maxRentalIDAttempts сколько раз пробуем перевыпустить rental ID
// при коллизии по уникальному индексу
const maxRentalIDAttempts = 5

// UseCase создание бронирования: проверка доступности, upsert клиента,
// выпуск учетных данных и вставка Pending-бронирования в одной
// serializable-транзакции
type UseCase struct {
	bookings     BookingRepository
	clients      ClientRepository
	trailers     TrailerRepository
	availability AvailabilityChecker
	issuer       CredentialsIssuer
	notifier     Notifier
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase создания бронирования
func NewUseCase(
	bookings BookingRepository,
	clients ClientRepository,
	trailers TrailerRepository,
	availability AvailabilityChecker,
	issuer CredentialsIssuer,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookings:     bookings,
		clients:      clients,
		trailers:     trailers,
		availability: availability,
		issuer:       issuer,
		notifier:     notifier,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute создает бронирование и возвращает клиенту rental ID и ключ
// доступа. Ключ в открытом виде существует только в этом ответе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	trailer, err := uc.trailers.GetByID(ctx, req.TrailerID)
	if err != nil {
		if errors.Is(err, trailerRepo.ErrTrailerNotFound) {
			return nil, ErrTrailerNotFound
		}
		uc.logger.Error("Execute: failed to load trailer id=%d: %v", req.TrailerID, err)
		return nil, fmt.Errorf("%w: Execute - failed to load trailer: %v", ErrInternal, err)
	}
	if !trailer.Active {
		return nil, ErrTrailerInactive
	}

	var created *domain.Booking
	var accessKey string

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result, err := uc.availability.Check(txCtx, req.TrailerID, req.StartDate, req.EndDate, nil)
		if err != nil {
			return fmt.Errorf("%w: Execute - availability check failed: %v", ErrInternal, err)
		}
		if !result.Available {
			return &DateUnavailableError{Conflicts: result.Conflicts}
		}

		client, err := uc.clients.Upsert(txCtx, &domain.Client{
			Email:         strings.ToLower(strings.TrimSpace(req.Email)),
			FirstName:     strings.TrimSpace(req.FirstName),
			LastName:      strings.TrimSpace(req.LastName),
			Phone:         strings.TrimSpace(req.Phone),
			TowingVehicle: req.TowingVehicle,
			Comments:      req.Comments,
		})
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to upsert client: %v", ErrInternal, err)
		}

		created, accessKey, err = uc.insertWithFreshCredentials(txCtx, req, client.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Execute: booking %s created for trailer id=%d, %s..%s",
		created.RentalID, created.TrailerID,
		created.StartDate.Format(dates.Format), created.EndDate.Format(dates.Format))

	uc.sendConfirmation(ctx, created, req.Email, accessKey)

	days := dates.DaysBetween(created.StartDate, created.EndDate) + 1
	return &Response{
		ID:             created.ID,
		RentalID:       created.RentalID,
		AccessKey:      accessKey,
		TrailerID:      created.TrailerID,
		ClientID:       created.ClientID,
		StartDate:      created.StartDate,
		EndDate:        created.EndDate,
		Status:         string(created.Status),
		Days:           days,
		EstimatedTotal: float64(days) * trailer.RatePerDay,
		CreatedAt:      created.CreatedAt,
	}, nil
}

// insertWithFreshCredentials выпускает rental ID + ключ и вставляет
// бронирование, перевыпуская учетные данные при коллизии rental ID
func (uc *UseCase) insertWithFreshCredentials(ctx context.Context, req *Request, clientID int64) (*domain.Booking, string, error) {
	for attempt := 1; attempt <= maxRentalIDAttempts; attempt++ {
		creds, err := uc.issuer.Issue()
		if err != nil {
			return nil, "", fmt.Errorf("%w: Execute - failed to issue credentials: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			RentalID:          creds.RentalID,
			TrailerID:         req.TrailerID,
			ClientID:          clientID,
			StartDate:         dates.DateOnly(req.StartDate),
			EndDate:           dates.DateOnly(req.EndDate),
			PickupTime:        req.PickupTime,
			ReturnTime:        req.ReturnTime,
			DeliveryRequested: req.DeliveryRequested,
			Status:            domain.StatusPending,
			AccessKeyHash:     creds.AccessKeyHash,
		}

		created, err := uc.bookings.Create(ctx, booking)
		if err == nil {
			return created, creds.AccessKey, nil
		}
		if errors.Is(err, bookingRepo.ErrDuplicateRentalID) {
			uc.logger.Warn("Execute: rental id collision on %s, attempt %d/%d", creds.RentalID, attempt, maxRentalIDAttempts)
			continue
		}
		return nil, "", fmt.Errorf("%w: Execute - failed to create booking: %v", ErrInternal, err)
	}
	return nil, "", fmt.Errorf("%w: Execute - rental id space exhausted after %d attempts", ErrInternal, maxRentalIDAttempts)
}

// sendConfirmation отправляет письмо с rental ID и ключом доступа.
// Ошибка отправки не отменяет бронирование.
func (uc *UseCase) sendConfirmation(ctx context.Context, booking *domain.Booking, email, accessKey string) {
	err := uc.notifier.Send(ctx, mailer.KindBookingReceived, email, map[string]interface{}{
		"RentalID":  booking.RentalID,
		"AccessKey": accessKey,
		"StartDate": booking.StartDate.Format(dates.Format),
		"EndDate":   booking.EndDate.Format(dates.Format),
	})
	if err != nil {
		uc.logger.Error("Execute: failed to send confirmation for %s: %v", booking.RentalID, err)
		return
	}
	if err := uc.bookings.SetConfirmationSent(ctx, booking.ID); err != nil {
		uc.logger.Error("Execute: failed to mark confirmation sent for %s: %v", booking.RentalID, err)
	}
}
