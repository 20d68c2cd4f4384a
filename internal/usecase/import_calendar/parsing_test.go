package import_calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jla-rentals/JLA-BookingService/internal/domain"
)

func TestParseTitle(t *testing.T) {
	name, label, ok := parseTitle("Jane Doe - 6x12 Utility")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "6x12 Utility", label)

	_, _, ok = parseTitle("Walk-in block")
	assert.False(t, ok, "title without separator is not a booking")

	_, _, ok = parseTitle(" - 6x12 Utility")
	assert.False(t, ok, "empty customer name")

	_, _, ok = parseTitle("Jane Doe - ")
	assert.False(t, ok, "empty trailer label")

	name, label, ok = parseTitle("Mary Jane Smith - Car Hauler - Large")
	require.True(t, ok)
	assert.Equal(t, "Mary Jane Smith", name)
	assert.Equal(t, "Car Hauler - Large", label, "split on the first separator only")
}

func TestParseDescription(t *testing.T) {
	details := parseDescription("phone=305-555-0100\nemail=Jane@Example.com\ndelivery=yes\nnotes=needs ramps")
	assert.Equal(t, "305-555-0100", details.Phone)
	assert.Equal(t, "jane@example.com", details.Email, "email is lower-cased")
	assert.True(t, details.Delivery)
	assert.Equal(t, "needs ramps", details.Notes)
}

func TestParseDescription_KeysCaseInsensitive(t *testing.T) {
	details := parseDescription("PHONE=123\nEmail=a@b.com\nDELIVERY=TRUE")
	assert.Equal(t, "123", details.Phone)
	assert.Equal(t, "a@b.com", details.Email)
	assert.True(t, details.Delivery)
}

func TestParseDescription_DeliveryTokens(t *testing.T) {
	for _, token := range []string{"yes", "Yes", "Y", "true", "1"} {
		details := parseDescription("delivery=" + token)
		assert.True(t, details.Delivery, "token %q", token)
	}
	for _, token := range []string{"no", "false", "0", "", "maybe"} {
		details := parseDescription("delivery=" + token)
		assert.False(t, details.Delivery, "token %q", token)
	}
}

func TestParseDescription_IgnoresGarbage(t *testing.T) {
	details := parseDescription("just a free-form note\nphone=123\nunknown=value")
	assert.Equal(t, "123", details.Phone)
	assert.Empty(t, details.Email)
}

func TestParseEventDate(t *testing.T) {
	got, err := parseEventDate("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", got.Format("2006-01-02"))

	got, err = parseEventDate("2025-06-10T14:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", got.Format("2006-01-02"))

	_, err = parseEventDate("")
	assert.Error(t, err)

	_, err = parseEventDate("next tuesday")
	assert.Error(t, err)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Jane Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = splitName("Mary Jane Smith")
	assert.Equal(t, "Mary Jane", first)
	assert.Equal(t, "Smith", last)

	first, last = splitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)
}

func TestMatchTrailer(t *testing.T) {
	trailers := []*domain.Trailer{
		{ID: 1, Name: "6x12 Utility Trailer"},
		{ID: 2, Name: "Car Hauler"},
	}

	got := matchTrailer(trailers, "car hauler")
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)

	got = matchTrailer(trailers, "6x12 Utility")
	require.NotNil(t, got, "substring fallback")
	assert.Equal(t, int64(1), got.ID)

	assert.Nil(t, matchTrailer(trailers, "Dump Trailer"))
	assert.Nil(t, matchTrailer(trailers, ""))
}

func TestIsPlaceholderEmail(t *testing.T) {
	for _, email := range []string{"", "none", "N/A", "na", "  NONE  "} {
		assert.True(t, isPlaceholderEmail(email), "email %q", email)
	}
	assert.False(t, isPlaceholderEmail("jane@example.com"))
}

func TestPlaceholderEmail_StablePerEvent(t *testing.T) {
	a := placeholderEmail("JLA-123456", "evt-1")
	b := placeholderEmail("JLA-123456", "evt-1")
	c := placeholderEmail("JLA-654321", "evt-2")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "@")
}
