package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempestapp/tempest-cli/internal/client/api"
	"github.com/tempestapp/tempest-cli/internal/client/models"
)

func TestLogin_Success(t *testing.T) {
	fc := &fakeClient{
		loginResp: models.AuthResponse{
			JWT:  "tok",
			User: models.User{ID: 7, Name: "Alice", Username: "alice"},
		},
	}
	a := newTestApp(t, fc)
	stubInputs(t, []string{"alice@example.org"}, []string{"secret"})
	out := captureOutput(t)

	require.NoError(t, a.Login(context.Background()))

	assert.True(t, a.isLoggedIn())
	assert.True(t, contains(*out, "Welcome, Alice!"))
}

func TestLogin_BadCredentials(t *testing.T) {
	fc := &fakeClient{loginErr: &api.StatusError{Code: 403, Message: "Bad credentials"}}
	a := newTestApp(t, fc)
	stubInputs(t, []string{"alice@example.org"}, []string{"wrong"})
	out := captureOutput(t)

	require.NoError(t, a.Login(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.True(t, contains(*out, "Bad credentials"))
}

func TestLogin_ServerUnavailable(t *testing.T) {
	fc := &fakeClient{loginErr: api.ErrUnavailable}
	a := newTestApp(t, fc)
	stubInputs(t, []string{"alice@example.org"}, []string{"secret"})
	out := captureOutput(t)

	require.NoError(t, a.Login(context.Background()))
	assert.True(t, contains(*out, "Invalid credentials or service unavailable."))
}

func TestSignup_Success(t *testing.T) {
	fc := &fakeClient{
		signupResp: models.AuthResponse{
			JWT:  "tok",
			User: models.User{ID: 1, Name: "Bob"},
		},
	}
	a := newTestApp(t, fc)
	stubInputs(t,
		[]string{"Bob", "bob", "bob@example.org", "5551234", "male", "1999-02-13"},
		[]string{"secret", "secret"},
	)
	out := captureOutput(t)

	require.NoError(t, a.Signup(context.Background()))

	require.NotNil(t, fc.gotSignup.DOB)
	assert.Equal(t, "13-02-1999", *fc.gotSignup.DOB)
	assert.Equal(t, "bob", fc.gotSignup.Username)
	assert.True(t, a.isLoggedIn())
	assert.True(t, contains(*out, "Account created. Welcome, Bob!"))
}

func TestSignup_PasswordMismatch(t *testing.T) {
	fc := &fakeClient{}
	a := newTestApp(t, fc)
	stubInputs(t,
		[]string{"Bob", "bob", "bob@example.org", "5551234", "male", "1999-02-13"},
		[]string{"secret", "other"},
	)
	out := captureOutput(t)

	require.NoError(t, a.Signup(context.Background()))

	assert.True(t, contains(*out, "Passwords do not match!"))
	assert.Empty(t, fc.gotSignup.Username, "no request should be sent")
	assert.False(t, a.isLoggedIn())
}

func TestSignup_MissingFields(t *testing.T) {
	fc := &fakeClient{}
	a := newTestApp(t, fc)
	stubInputs(t,
		[]string{"Bob", "", "bob@example.org", "5551234", "male", "1999-02-13"},
		[]string{"secret", "secret"},
	)
	out := captureOutput(t)

	require.NoError(t, a.Signup(context.Background()))
	assert.True(t, contains(*out, "All fields are required."))
}

func TestSignup_Conflict(t *testing.T) {
	fc := &fakeClient{signupErr: &api.ConflictError{Message: "Duplicate username and email"}}
	a := newTestApp(t, fc)
	stubInputs(t,
		[]string{"Bob", "bob", "bob@example.org", "5551234", "male", "1999-02-13"},
		[]string{"secret", "secret"},
	)
	out := captureOutput(t)

	require.NoError(t, a.Signup(context.Background()))

	assert.True(t, contains(*out, "username: Username already exists."))
	assert.True(t, contains(*out, "email: Email already exists."))
	assert.False(t, a.isLoggedIn())
}

func TestLogout(t *testing.T) {
	fc := &fakeClient{}
	a := newTestApp(t, fc)
	require.NoError(t, a.store.Login(context.Background(), "tok", models.User{ID: 1, Username: "bob"}))
	out := captureOutput(t)

	require.NoError(t, a.Logout(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.True(t, contains(*out, "Signed out."))
}
