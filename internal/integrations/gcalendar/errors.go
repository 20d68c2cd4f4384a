package gcalendar

import "errors"

var (
	// ErrUpstreamUnavailable возвращается, когда внешний календарь
	// недоступен. Без списка событий импорт невозможен — вызывающая
	// сторона прерывает весь батч.
	ErrUpstreamUnavailable = errors.New("gcalendar: calendar source unavailable")

	// ErrNotConfigured возвращается, когда интеграция не сконфигурирована
	ErrNotConfigured = errors.New("gcalendar: integration is not configured")
)
