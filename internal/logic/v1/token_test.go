package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("super-secret"), 48*time.Hour)

	tok, err := issuer.Issue("alice01")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	username, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice01", username)
}

func TestTokenIssuer_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("super-secret"), 48*time.Hour)

	issuedAt := time.Now()
	issuer.now = func() time.Time { return issuedAt }

	tok, err := issuer.Issue("alice01")
	require.NoError(t, err)

	// Still valid just inside the window.
	issuer.now = func() time.Time { return issuedAt.Add(47 * time.Hour) }
	_, err = issuer.Verify(tok)
	require.NoError(t, err)

	// Past the window the outcome is the same invalid kind as tampering.
	issuer.now = func() time.Time { return issuedAt.Add(49 * time.Hour) }
	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("right-secret"), time.Hour)
	tok, err := issuer.Issue("alice01")
	require.NoError(t, err)

	other := NewTokenIssuer([]byte("wrong-secret"), time.Hour)
	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("k"), time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "a.b", "abc"} {
		_, err := issuer.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestTokenIssuer_Tampered(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("super-secret"), time.Hour)
	tok, err := issuer.Issue("alice01")
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = issuer.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_EmptyClaim(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("super-secret"), time.Hour)
	tok, err := issuer.Issue("")
	require.NoError(t, err)

	_, err = issuer.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
