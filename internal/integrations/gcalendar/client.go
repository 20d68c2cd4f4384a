package gcalendar

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client источник событий внешнего календаря (Google Calendar).
// Телефонные бронирования сотрудники заводят напрямую в календаре;
// Reconciler забирает их отсюда и превращает в бронирования.
type Client struct {
	svc        *calendar.Service
	calendarID string
	logger     Logger
}

// NewClient создает клиента Google Calendar с сервисным аккаунтом
func NewClient(ctx context.Context, credentialsFile, calendarID string, logger Logger) (*Client, error) {
	if credentialsFile == "" || calendarID == "" {
		return nil, ErrNotConfigured
	}

	svc, err := calendar.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(calendar.CalendarReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create calendar service: %v", ErrUpstreamUnavailable, err)
	}

	return &Client{
		svc:        svc,
		calendarID: calendarID,
		logger:     logger,
	}, nil
}

// ListEvents возвращает события календаря в окне [windowStart, windowEnd].
// Отмененные события не возвращаются. Ошибка означает, что календарь
// недоступен целиком — частичных результатов не бывает.
func (c *Client) ListEvents(ctx context.Context, windowStart, windowEnd time.Time) ([]domain.ExternalEvent, error) {
	var events []domain.ExternalEvent
	pageToken := ""

	for {
		call := c.svc.Events.List(c.calendarID).
			Context(ctx).
			TimeMin(windowStart.Format(time.RFC3339)).
			TimeMax(windowEnd.Format(time.RFC3339)).
			SingleEvents(true).
			ShowDeleted(false).
			OrderBy("startTime").
			MaxResults(250)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			c.logger.Error("ListEvents: calendar request failed: %v", err)
			return nil, fmt.Errorf("%w: list events: %v", ErrUpstreamUnavailable, err)
		}

		for _, item := range resp.Items {
			events = append(events, domain.ExternalEvent{
				ID:          item.Id,
				Summary:     item.Summary,
				Description: item.Description,
				Start:       eventTime(item.Start),
				End:         eventTime(item.End),
			})
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	c.logger.Info("ListEvents: fetched %d event(s) from calendar %s", len(events), c.calendarID)
	return events, nil
}

// eventTime возвращает дату или дату-время события.
// У all-day событий заполнен Date, у остальных DateTime.
func eventTime(t *calendar.EventDateTime) string {
	if t == nil {
		return ""
	}
	if t.Date != "" {
		return t.Date
	}
	return t.DateTime
}
