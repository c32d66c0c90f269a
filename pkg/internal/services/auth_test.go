package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret"

func newTestAuth(t *testing.T) *Auth {
	t.Helper()

	db := newTestDB(t)
	return NewAuth(db, newTestDirectory(t, db), testSecret, time.Hour)
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Aa1!aaaa", true},
		{"Str0ng&Passw0rd", true},
		{"short1!", false},
		{"alllower1!", false},
		{"ALLUPPER1!", false},
		{"NoDigits!!", false},
		{"NoSpecial11", false},
	}

	for _, tc := range cases {
		err := ValidatePassword(tc.password)
		if tc.ok {
			assert.NoError(t, err, tc.password)
		} else {
			assert.ErrorIs(t, err, ErrWeakPassword, tc.password)
		}
	}
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	auth := newTestAuth(t)

	_, err := auth.Signup("Alice", "alice01", "Aa1!aaaa")
	require.NoError(t, err)

	_, err = auth.Signup("Imposter", "alice01", "Aa1!aaaa")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newTestAuth(t)

	_, err := auth.Signup("Alice", "alice01", "Aa1!aaaa")
	require.NoError(t, err)

	_, _, err = auth.Login("alice01", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("nobody", "Aa1!aaaa")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginAuthenticateRoundTrip(t *testing.T) {
	auth := newTestAuth(t)

	created, err := auth.Signup("Alice", "alice01", "Aa1!aaaa")
	require.NoError(t, err)

	_, token, err := auth.Login("alice01", "Aa1!aaaa")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	account, session, err := auth.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, account.ID)
	assert.Equal(t, created.ID, session.AccountID)
}

func TestLogoutRevokesOnlyOneSession(t *testing.T) {
	auth := newTestAuth(t)

	_, err := auth.Signup("Alice", "alice01", "Aa1!aaaa")
	require.NoError(t, err)

	// Two devices log in, each with its own token.
	_, first, err := auth.Login("alice01", "Aa1!aaaa")
	require.NoError(t, err)
	_, second, err := auth.Login("alice01", "Aa1!aaaa")
	require.NoError(t, err)

	_, session, err := auth.Authenticate(first)
	require.NoError(t, err)
	require.NoError(t, auth.Logout(session))

	_, _, err = auth.Authenticate(first)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = auth.Authenticate(second)
	assert.NoError(t, err)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	auth := newTestAuth(t)

	_, _, err := auth.Authenticate("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
