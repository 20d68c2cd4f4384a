package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jla-rentals/JLA-BookingService/pkg/ptr"
)

func validRequest() *Request {
	start := time.Now().AddDate(0, 0, 7)
	return &Request{
		TrailerID: 1,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "305-555-0100",
	}
}

func TestValidateRequest_Valid(t *testing.T) {
	assert.NoError(t, validateRequest(validRequest()))
}

func TestValidateRequest_SingleDayIsValid(t *testing.T) {
	req := validRequest()
	req.EndDate = req.StartDate
	assert.NoError(t, validateRequest(req))
}

func TestValidateRequest_StartAfterEnd(t *testing.T) {
	req := validRequest()
	req.StartDate, req.EndDate = req.EndDate, req.StartDate
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
}

func TestValidateRequest_StartInPast(t *testing.T) {
	req := validRequest()
	req.StartDate = time.Now().AddDate(0, 0, -1)
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
}

func TestValidateRequest_TooLong(t *testing.T) {
	req := validRequest()
	req.EndDate = req.StartDate.AddDate(0, 0, maxRentalDays+1)
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
}

func TestValidateRequest_MissingTrailer(t *testing.T) {
	req := validRequest()
	req.TrailerID = 0
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
}

func TestValidateRequest_Email(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "a b@c.com", "a@b"} {
		req := validRequest()
		req.Email = email
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput, "email %q", email)
	}
}

func TestValidateRequest_MissingClientFields(t *testing.T) {
	req := validRequest()
	req.FirstName = "  "
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.LastName = ""
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = validRequest()
	req.Phone = ""
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
}

func TestValidateRequest_PickupTime(t *testing.T) {
	req := validRequest()
	req.PickupTime = ptr.Ptr("10:30")
	assert.NoError(t, validateRequest(req))

	for _, bad := range []string{"25:00", "10:60", "1030", "10.30"} {
		req := validRequest()
		req.PickupTime = ptr.Ptr(bad)
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput, "time %q", bad)
	}
}

func TestValidateRequest_Nil(t *testing.T) {
	assert.ErrorIs(t, validateRequest(nil), ErrInvalidInput)
}
