package credentials

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rentalIDRe = regexp.MustCompile(`^JLA-[1-9]\d{5}$`)

func TestIssue_Format(t *testing.T) {
	svc := NewService(Config{Pepper: "test-pepper"})

	creds, err := svc.Issue()
	require.NoError(t, err)

	assert.Regexp(t, rentalIDRe, creds.RentalID)
	assert.Regexp(t, `^[1-9]\d{5}$`, creds.AccessKey)
	assert.NotEmpty(t, creds.AccessKeyHash)
	assert.NotContains(t, creds.AccessKeyHash, creds.AccessKey, "hash must not embed the plaintext key")
}

func TestVerify_RoundTrip(t *testing.T) {
	svc := NewService(Config{Pepper: "test-pepper"})

	creds, err := svc.Issue()
	require.NoError(t, err)

	assert.NoError(t, svc.Verify(creds.AccessKeyHash, creds.AccessKey))
}

func TestVerify_WrongKey(t *testing.T) {
	svc := NewService(Config{Pepper: "test-pepper"})

	creds, err := svc.Issue()
	require.NoError(t, err)

	wrong := "123456"
	if wrong == creds.AccessKey {
		wrong = "654321"
	}
	assert.ErrorIs(t, svc.Verify(creds.AccessKeyHash, wrong), ErrKeyMismatch)
}

func TestVerify_DifferentPepper(t *testing.T) {
	issuer := NewService(Config{Pepper: "pepper-a"})
	verifier := NewService(Config{Pepper: "pepper-b"})

	creds, err := issuer.Issue()
	require.NoError(t, err)

	assert.ErrorIs(t, verifier.Verify(creds.AccessKeyHash, creds.AccessKey), ErrKeyMismatch)
}
