package domain

// Rental identifier format
const (
	RentalIDPrefix   = "JLA-"
	RentalIDDigits   = 6
	AccessKeyDigits  = 6
	IdentifierMinVal = 100000
	IdentifierMaxVal = 999999
)

// Business validation constants
const (
	MaxCloseReasonLength = 500
	MaxCommentsLength    = 1000
	MaxRentalDays        = 90
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, учитываемых при проверке доступности.
// Closed и Rejected освобождают прицеп.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusPaid,
}

// TerminalStatuses список терминальных статусов
var TerminalStatuses = []BookingStatus{
	StatusClosed,
	StatusRejected,
}
