package import_calendar

import "time"

// Request окно синхронизации внешнего календаря
type Request struct {
	WindowStart time.Time
	WindowEnd   time.Time
}

// Response итог обработки батча событий.
// Created — новые бронирования, SkippedExisting — уже импортированные
// события, Ignored — события, которые не похожи на бронирования или
// не смогли обработаться.
type Response struct {
	Created         int `json:"created"`
	SkippedExisting int `json:"skippedExisting"`
	Ignored         int `json:"ignored"`
}
