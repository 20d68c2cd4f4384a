package bookings

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	bookingRepo "github.com/jla-rentals/JLA-BookingService/internal/infra/storage/booking"
	"github.com/jla-rentals/JLA-BookingService/internal/integrations/mailer"
	"github.com/jla-rentals/JLA-BookingService/internal/service/bookings/models"
	"github.com/jla-rentals/JLA-BookingService/pkg/dates"
)

// Service управляет жизненным циклом бронирования:
// Pending -> Approved -> Paid -> Closed, плюс Rejected.
// Closed и Rejected терминальны. Каждый переход — одно атомарное
// обновление в хранилище; уведомления отправляются best-effort после
// успешного перехода и никогда не влияют на его результат.
type Service struct {
	bookingRepo  BookingRepository
	clientRepo   ClientRepository
	availability AvailabilityChecker
	verifier     CredentialsVerifier
	notifier     Notifier
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	availability AvailabilityChecker,
	verifier CredentialsVerifier,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		clientRepo:   clientRepo,
		availability: availability,
		verifier:     verifier,
		notifier:     notifier,
		logger:       logger,
	}
}

// GetByID получает бронирование по внутреннему ID (для сотрудников)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.fetch(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// Lookup выполняет самостоятельный поиск бронирования клиентом по
// rental ID и ключу доступа. Неизвестный rental ID и неверный ключ
// дают одинаковый ErrBookingNotFound — наружу не раскрывается, какое
// из двух полей не совпало.
func (s *Service) Lookup(ctx context.Context, req *models.LookupRequest) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByRentalID(ctx, req.RentalID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Lookup: rental id %s not found", req.RentalID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Lookup: repository error for rental id %s: %v", req.RentalID, err)
		return nil, fmt.Errorf("%w: Lookup - repository error: %v", ErrInternal, err)
	}

	if err := s.verifier.Verify(booking.AccessKeyHash, req.AccessKey); err != nil {
		s.logger.Warn("Lookup: access key mismatch for rental id %s", req.RentalID)
		return nil, ErrBookingNotFound
	}

	s.logger.Info("Lookup: successful lookup for rental id %s", req.RentalID)
	return models.FromDomainBooking(booking), nil
}

// Approve подтверждает бронирование: Pending -> Approved.
// Сохраняет ссылку на оплату (только https), выставляет approvedAt и
// paymentLinkSentAt, отправляет клиенту письмо со ссылкой.
func (s *Service) Approve(ctx context.Context, bookingID int64, req *models.ApproveRequest) (*models.BookingResponse, error) {
	if err := validatePaymentLink(req.PaymentLink); err != nil {
		s.logger.Warn("Approve: invalid payment link for booking id=%d: %v", bookingID, err)
		return nil, err
	}

	booking, err := s.fetch(ctx, bookingID, "Approve")
	if err != nil {
		return nil, err
	}

	if booking.IsTerminal() {
		s.logger.Warn("Approve: booking id=%d is terminal, status=%s", bookingID, booking.Status)
		return nil, ErrTerminalState
	}
	if !booking.CanBeApproved() {
		s.logger.Warn("Approve: booking id=%d is not pending, status=%s", bookingID, booking.Status)
		return nil, ErrNotPending
	}

	if err := s.bookingRepo.SetApproved(ctx, bookingID, req.PaymentLink); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Статус сменился между чтением и обновлением
			return nil, ErrNotPending
		}
		s.logger.Error("Approve: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Approve: booking %s (id=%d) approved, payment link sent", booking.RentalID, bookingID)

	s.notify(ctx, booking, mailer.KindBookingApproved, map[string]interface{}{
		"PaymentLink": req.PaymentLink,
	})

	return s.GetByID(ctx, bookingID)
}

// MarkPaid отмечает получение оплаты: Approved -> Paid.
// Идемпотентен: повторный вызов для уже оплаченного бронирования
// возвращает текущее состояние без повторного уведомления и записи.
func (s *Service) MarkPaid(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	booking, err := s.fetch(ctx, bookingID, "MarkPaid")
	if err != nil {
		return nil, err
	}

	if booking.Status == domain.StatusPaid || booking.PaidAt != nil {
		s.logger.Info("MarkPaid: booking %s (id=%d) already paid, no-op", booking.RentalID, bookingID)
		return models.FromDomainBooking(booking), nil
	}

	if booking.IsTerminal() {
		s.logger.Warn("MarkPaid: booking id=%d is terminal, status=%s", bookingID, booking.Status)
		return nil, ErrTerminalState
	}
	if booking.Status != domain.StatusApproved {
		s.logger.Warn("MarkPaid: booking id=%d is not approved, status=%s", bookingID, booking.Status)
		return nil, ErrCannotMarkPaid
	}

	if err := s.bookingRepo.SetPaid(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Конкурентный вызов уже перевел бронирование в Paid —
			// идемпотентный исход, уведомление не дублируем
			s.logger.Info("MarkPaid: booking id=%d concurrently marked paid, no-op", bookingID)
			return s.GetByID(ctx, bookingID)
		}
		s.logger.Error("MarkPaid: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkPaid: payment received for booking %s (id=%d)", booking.RentalID, bookingID)

	s.notify(ctx, booking, mailer.KindPaymentReceived, nil)

	return s.GetByID(ctx, bookingID)
}

// Close закрывает бронирование с исходом completed или cancelled.
// completed допустим только из Paid, cancelled — из Pending/Approved.
// Исход выставляется один раз и не меняется.
func (s *Service) Close(ctx context.Context, bookingID int64, req *models.CloseRequest) (*models.BookingResponse, error) {
	outcome, err := parseOutcome(req.Outcome)
	if err != nil {
		return nil, err
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCloseReasonLength {
		return nil, fmt.Errorf("%w: close reason is too long", ErrInvalidInput)
	}

	booking, err := s.fetch(ctx, bookingID, "Close")
	if err != nil {
		return nil, err
	}

	if booking.IsTerminal() {
		s.logger.Warn("Close: booking id=%d is terminal, status=%s", bookingID, booking.Status)
		return nil, ErrTerminalState
	}

	switch outcome {
	case domain.OutcomeCancelled:
		if !booking.CanBeCancelled() {
			s.logger.Warn("Close: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return nil, ErrInvalidOutcome
		}
	case domain.OutcomeCompleted:
		if !booking.CanBeCompleted() {
			s.logger.Warn("Close: booking id=%d cannot be completed, status=%s", bookingID, booking.Status)
			return nil, ErrInvalidOutcome
		}
	}

	if err := s.bookingRepo.SetClosed(ctx, bookingID, outcome, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrTerminalState
		}
		s.logger.Error("Close: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Close - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Close: booking %s (id=%d) closed, outcome=%s", booking.RentalID, bookingID, outcome)

	s.notify(ctx, booking, mailer.KindBookingClosed, map[string]interface{}{
		"Outcome": string(outcome),
	})

	return s.GetByID(ctx, bookingID)
}

// Reject отклоняет ожидающее бронирование: Pending -> Rejected
func (s *Service) Reject(ctx context.Context, bookingID int64, reason *string) (*models.BookingResponse, error) {
	booking, err := s.fetch(ctx, bookingID, "Reject")
	if err != nil {
		return nil, err
	}

	if booking.IsTerminal() {
		return nil, ErrTerminalState
	}
	if !booking.CanBeApproved() {
		s.logger.Warn("Reject: booking id=%d is not pending, status=%s", bookingID, booking.Status)
		return nil, ErrNotPending
	}

	if err := s.bookingRepo.SetRejected(ctx, bookingID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrNotPending
		}
		s.logger.Error("Reject: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reject: booking %s (id=%d) rejected", booking.RentalID, bookingID)
	return s.GetByID(ctx, bookingID)
}

// Reschedule переносит даты бронирования (статус не меняется).
// Доступность проверяется заново для нового диапазона, само
// бронирование исключается из множества конфликтов. При конфликте
// даты остаются прежними.
func (s *Service) Reschedule(ctx context.Context, bookingID int64, req *models.RescheduleRequest) (*models.BookingResponse, error) {
	if dates.DateOnly(req.StartDate).After(dates.DateOnly(req.EndDate)) {
		return nil, fmt.Errorf("%w: start date is after end date", ErrInvalidInput)
	}

	booking, err := s.fetch(ctx, bookingID, "Reschedule")
	if err != nil {
		return nil, err
	}

	if booking.IsTerminal() {
		return nil, ErrTerminalState
	}
	if !booking.CanBeRescheduled() {
		s.logger.Warn("Reschedule: booking id=%d cannot be rescheduled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotReschedule
	}

	result, err := s.availability.Check(ctx, booking.TrailerID, req.StartDate, req.EndDate, &booking.ID)
	if err != nil {
		s.logger.Error("Reschedule: availability check failed for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Reschedule - availability check: %v", ErrInternal, err)
	}
	if !result.Available {
		s.logger.Warn("Reschedule: booking %s (id=%d) new range %s..%s conflicts with %d booking(s)",
			booking.RentalID, bookingID,
			req.StartDate.Format(dates.Format), req.EndDate.Format(dates.Format), len(result.Conflicts))
		return nil, &DateUnavailableError{Conflicts: result.Conflicts}
	}

	if err := s.bookingRepo.UpdateDates(ctx, bookingID, req.StartDate, req.EndDate); err != nil {
		s.logger.Error("Reschedule: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reschedule: booking %s (id=%d) moved to %s..%s",
		booking.RentalID, bookingID, req.StartDate.Format(dates.Format), req.EndDate.Format(dates.Format))

	s.notify(ctx, booking, mailer.KindBookingRescheduled, map[string]interface{}{
		"StartDate": req.StartDate.Format(dates.Format),
		"EndDate":   req.EndDate.Format(dates.Format),
	})

	return s.GetByID(ctx, bookingID)
}

// Вспомогательные методы

func (s *Service) fetch(ctx context.Context, id int64, method string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

// notify отправляет клиенту уведомление. Ошибка отправки логируется
// и проглатывается: доставка писем не входит в контракт перехода.
func (s *Service) notify(ctx context.Context, booking *domain.Booking, kind string, data map[string]interface{}) {
	client, err := s.clientRepo.GetByID(ctx, booking.ClientID)
	if err != nil {
		s.logger.Warn("notify: failed to load client id=%d for booking %s: %v",
			booking.ClientID, booking.RentalID, err)
		return
	}

	if data == nil {
		data = map[string]interface{}{}
	}
	data["RentalID"] = booking.RentalID
	data["FirstName"] = client.FirstName
	data["StartDate"] = booking.StartDate.Format(dates.Format)
	data["EndDate"] = booking.EndDate.Format(dates.Format)

	if err := s.notifier.Send(ctx, kind, client.Email, data); err != nil {
		s.logger.Warn("notify: failed to send %s to %s for booking %s: %v",
			kind, client.Email, booking.RentalID, err)
	}
}

// validatePaymentLink проверяет, что ссылка на оплату — корректный https URL
func validatePaymentLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return ErrInvalidPaymentLink
	}
	return nil
}

func parseOutcome(outcome string) (domain.CloseOutcome, error) {
	switch domain.CloseOutcome(outcome) {
	case domain.OutcomeCompleted:
		return domain.OutcomeCompleted, nil
	case domain.OutcomeCancelled:
		return domain.OutcomeCancelled, nil
	default:
		return "", fmt.Errorf("%w: unknown close outcome %q", ErrInvalidInput, outcome)
	}
}
