package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jla-rentals/JLA-BookingService/pkg/dates"
)

const (
	maxRentalDays    = 90
	maxFieldLength   = 255
	maxCommentLength = 2000
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	timeRe  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.TrailerID <= 0 {
		return fmt.Errorf("%w: trailer id must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if dates.DateOnly(req.StartDate).After(dates.DateOnly(req.EndDate)) {
		return fmt.Errorf("%w: start date is after end date", ErrInvalidInput)
	}
	if dates.DateOnly(req.StartDate).Before(dates.DateOnly(time.Now())) {
		return fmt.Errorf("%w: start date is in the past", ErrInvalidInput)
	}
	if days := dates.DaysBetween(req.StartDate, req.EndDate) + 1; days > maxRentalDays {
		return fmt.Errorf("%w: rental period exceeds %d days", ErrInvalidInput, maxRentalDays)
	}

	if err := validateOptionalTime("pickup time", req.PickupTime); err != nil {
		return err
	}
	if err := validateOptionalTime("return time", req.ReturnTime); err != nil {
		return err
	}

	if err := validateClient(req); err != nil {
		return err
	}
	return nil
}

func validateOptionalTime(field string, value *string) error {
	if value == nil || *value == "" {
		return nil
	}
	if !timeRe.MatchString(*value) {
		return fmt.Errorf("%w: %s must be in HH:MM format", ErrInvalidInput, field)
	}
	return nil
}

func validateClient(req *Request) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(email) > maxFieldLength || !emailRe.MatchString(email) {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("%w: last name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(req.FirstName) > maxFieldLength || len(req.LastName) > maxFieldLength || len(req.Phone) > maxFieldLength {
		return fmt.Errorf("%w: client field is too long", ErrInvalidInput)
	}
	if req.Comments != nil && len(*req.Comments) > maxCommentLength {
		return fmt.Errorf("%w: comments are too long", ErrInvalidInput)
	}
	return nil
}
