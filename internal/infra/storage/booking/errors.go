package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateRentalID возвращается при нарушении уникальности rental_id.
	// Вызывающая сторона перегенерирует идентификатор и повторяет вставку.
	ErrDuplicateRentalID = errors.New("booking.repository: duplicate rental id")

	// ErrDuplicateCalendarEvent возвращается при нарушении уникальности
	// calendar_event_id — событие уже импортировано
	ErrDuplicateCalendarEvent = errors.New("booking.repository: duplicate calendar event id")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
