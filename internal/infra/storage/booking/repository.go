package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
	"github.com/jla-rentals/JLA-BookingService/pkg/dbmetrics"
	"github.com/jla-rentals/JLA-BookingService/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"rental_id",
	"trailer_id",
	"client_id",
	"start_date",
	"end_date",
	"pickup_time",
	"return_time",
	"delivery_requested",
	"status",
	"access_key_hash",
	"payment_link",
	"approved_at",
	"paid_at",
	"payment_link_sent_at",
	"confirmation_sent_at",
	"close_outcome",
	"close_reason",
	"calendar_event_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Нарушения уникальности rental_id и calendar_event_id возвращаются
// типизированными ошибками: первое лечится перегенерацией идентификатора,
// второе означает, что событие календаря уже импортировано.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"rental_id",
			"trailer_id",
			"client_id",
			"start_date",
			"end_date",
			"pickup_time",
			"return_time",
			"delivery_requested",
			"status",
			"access_key_hash",
			"calendar_event_id",
		).
		Values(
			booking.RentalID,
			booking.TrailerID,
			booking.ClientID,
			booking.StartDate,
			booking.EndDate,
			booking.PickupTime,
			booking.ReturnTime,
			booking.DeliveryRequested,
			booking.Status,
			booking.AccessKeyHash,
			booking.CalendarEventID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if uniqueErr := mapUniqueViolation(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по внутреннему ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByRentalID получает бронирование по человекочитаемому rental ID
func (r *Repository) GetByRentalID(ctx context.Context, rentalID string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"rental_id": rentalID}, "GetByRentalID")
}

// GetActiveByTrailer получает активные бронирования прицепа
// (Pending/Approved/Paid), опционально исключая одно бронирование —
// при переносе дат бронирование не должно конфликтовать само с собой.
func (r *Repository) GetActiveByTrailer(ctx context.Context, trailerID int64, excludeBookingID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"trailer_id": trailerID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		OrderBy("start_date ASC")

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeBookingID})
	}

	// Внутри транзакции блокируем строки: создание бронирования
	// выполняет проверку доступности перед вставкой
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByTrailer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByTrailer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetWithFilter получает бронирования с гибкой фильтрацией.
// Период фильтра трактуется как пересечение с диапазоном бронирования
// (включительные границы), а не как вхождение начала в период —
// календарю нужны и бронирования, начавшиеся до начала окна.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.TrailerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"trailer_id": *filter.TrailerID})
	}

	// Пересечение [start_date, end_date] с окном фильтра
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": *filter.EndDate})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": *filter.StartDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.ActiveOnly {
		activeStatuses := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatuses})
	}

	selectBuilder = selectBuilder.OrderBy("start_date ASC, id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ExistsByCalendarEventID проверяет, импортировано ли уже событие календаря
func (r *Repository) ExistsByCalendarEventID(ctx context.Context, eventID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"calendar_event_id": eventID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByCalendarEventID - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByCalendarEventID - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

// SetApproved переводит бронирование в Approved: сохраняет ссылку на
// оплату и выставляет approved_at/payment_link_sent_at одним запросом
func (r *Repository) SetApproved(ctx context.Context, id int64, paymentLink string) error {
	return r.execUpdate(ctx, "SetApproved", psqlbuilder.Update("bookings").
		Set("status", domain.StatusApproved).
		Set("payment_link", paymentLink).
		Set("approved_at", squirrel.Expr("NOW()")).
		Set("payment_link_sent_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}))
}

// SetPaid переводит бронирование в Paid и фиксирует paid_at.
// Условие по статусу делает обновление атомарным: повторный вызов
// не затрёт paid_at.
func (r *Repository) SetPaid(ctx context.Context, id int64) error {
	return r.execUpdate(ctx, "SetPaid", psqlbuilder.Update("bookings").
		Set("status", domain.StatusPaid).
		Set("paid_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusApproved}))
}

// SetClosed закрывает бронирование с указанием исхода
func (r *Repository) SetClosed(ctx context.Context, id int64, outcome domain.CloseOutcome, reason *string) error {
	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	return r.execUpdate(ctx, "SetClosed", psqlbuilder.Update("bookings").
		Set("status", domain.StatusClosed).
		Set("close_outcome", outcome).
		Set("close_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": activeStatuses}))
}

// SetRejected отклоняет бронирование
func (r *Repository) SetRejected(ctx context.Context, id int64, reason *string) error {
	return r.execUpdate(ctx, "SetRejected", psqlbuilder.Update("bookings").
		Set("status", domain.StatusRejected).
		Set("close_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}))
}

// UpdateDates переносит даты бронирования
func (r *Repository) UpdateDates(ctx context.Context, id int64, startDate, endDate time.Time) error {
	return r.execUpdate(ctx, "UpdateDates", psqlbuilder.Update("bookings").
		Set("start_date", startDate).
		Set("end_date", endDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// SetConfirmationSent фиксирует отправку подтверждения клиенту.
// Таймстемп выставляется один раз и не перезаписывается.
func (r *Repository) SetConfirmationSent(ctx context.Context, id int64) error {
	return r.execUpdate(ctx, "SetConfirmationSent", psqlbuilder.Update("bookings").
		Set("confirmation_sent_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("confirmation_sent_at IS NULL"))
}

// execUpdate выполняет UPDATE и проверяет, что строка была затронута
func (r *Repository) execUpdate(ctx context.Context, method string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, method, err)
	}
	return booking, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.RentalID,
		&booking.TrailerID,
		&booking.ClientID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.PickupTime,
		&booking.ReturnTime,
		&booking.DeliveryRequested,
		&booking.Status,
		&booking.AccessKeyHash,
		&booking.PaymentLink,
		&booking.ApprovedAt,
		&booking.PaidAt,
		&booking.PaymentLinkSentAt,
		&booking.ConfirmationSentAt,
		&booking.CloseOutcome,
		&booking.CloseReason,
		&booking.CalendarEventID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// mapUniqueViolation конвертирует нарушение уникальности PostgreSQL
// в типизированную ошибку репозитория; nil, если ошибка не о том
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}

	switch pqErr.Constraint {
	case "bookings_rental_id_key":
		return ErrDuplicateRentalID
	case "bookings_calendar_event_id_key":
		return ErrDuplicateCalendarEvent
	default:
		return fmt.Errorf("%w: unique violation on %s", ErrExecQuery, pqErr.Constraint)
	}
}
