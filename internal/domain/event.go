package domain

// ExternalEvent is a raw event from the external calendar. It is not
// persisted as its own entity; its ID ends up on the created booking
// as CalendarEventID, which prevents reprocessing.
type ExternalEvent struct {
	ID          string // opaque, stable, supplied by the external system
	Summary     string // title, expected "<Customer Name> - <Trailer Label>"
	Description string // newline-separated key=value pairs
	Start       string // "2006-01-02" or RFC 3339 date-time
	End         string
}
