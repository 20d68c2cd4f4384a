package import_calendar

import "errors"

var (
	// ErrUpstreamUnavailable возвращается, когда внешний календарь
	// недоступен и батч нельзя обработать целиком
	ErrUpstreamUnavailable = errors.New("import_calendar: calendar source unavailable")

	// ErrInvalidInput возвращается при некорректном окне синхронизации
	ErrInvalidInput = errors.New("import_calendar: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("import_calendar: internal error")
)
