package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempestapp/tempest-cli/internal/client/api"
	"github.com/tempestapp/tempest-cli/internal/client/models"
)

func loginTestUser(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.store.Login(context.Background(), "tok", models.User{ID: 7, Username: "bob"}))
}

func TestEditUser_RequiresLogin(t *testing.T) {
	fc := &fakeClient{}
	a := newTestApp(t, fc)
	out := captureOutput(t)

	require.NoError(t, a.EditUser(context.Background(), 7))
	assert.True(t, contains(*out, "You must be signed in to edit a user."))
}

func TestEditUser_KeepsUnchangedFields(t *testing.T) {
	fc := &fakeClient{user: models.User{
		ID: 7, Name: "Bob", Username: "bob", Email: "bob@example.org",
		MobileNumber: "5551234", Gender: "male", DOB: "13-02-1999",
	}}
	a := newTestApp(t, fc)
	loginTestUser(t, a)

	// Change only the name; empty answers keep everything else.
	stubInputs(t, []string{"Robert", "", "", "", "", ""}, nil)
	out := captureOutput(t)

	require.NoError(t, a.EditUser(context.Background(), 7))

	assert.Equal(t, "Robert", fc.gotUpdate.Name)
	assert.Equal(t, "bob", fc.gotUpdate.Username)
	assert.Equal(t, "bob@example.org", fc.gotUpdate.Email)
	require.NotNil(t, fc.gotUpdate.DOB)
	assert.Equal(t, "13-02-1999", *fc.gotUpdate.DOB)
	assert.True(t, contains(*out, "User 7 updated."))
}

func TestEditUser_ChangesDOB(t *testing.T) {
	fc := &fakeClient{user: models.User{ID: 7, Name: "Bob", Username: "bob", DOB: "13-02-1999"}}
	a := newTestApp(t, fc)
	loginTestUser(t, a)

	stubInputs(t, []string{"", "", "", "", "", "1-3-2000"}, nil)
	captureOutput(t)

	require.NoError(t, a.EditUser(context.Background(), 7))

	require.NotNil(t, fc.gotUpdate.DOB)
	assert.Equal(t, "01-03-2000", *fc.gotUpdate.DOB)
}

func TestEditUser_InvalidDOBKeepsCurrent(t *testing.T) {
	fc := &fakeClient{user: models.User{ID: 7, Name: "Bob", Username: "bob", DOB: "13-02-1999"}}
	a := newTestApp(t, fc)
	loginTestUser(t, a)

	stubInputs(t, []string{"", "", "", "", "", "not-a-date"}, nil)
	out := captureOutput(t)

	require.NoError(t, a.EditUser(context.Background(), 7))

	assert.True(t, contains(*out, "Invalid date, keeping the current value."))
	require.NotNil(t, fc.gotUpdate.DOB)
	assert.Equal(t, "13-02-1999", *fc.gotUpdate.DOB)
}

func TestEditUser_Conflict(t *testing.T) {
	fc := &fakeClient{
		user:      models.User{ID: 7, Name: "Bob", Username: "bob"},
		updateErr: &api.ConflictError{Message: "Username is taken"},
	}
	a := newTestApp(t, fc)
	loginTestUser(t, a)

	stubInputs(t, []string{"", "carol", "", "", "", ""}, nil)
	out := captureOutput(t)

	require.NoError(t, a.EditUser(context.Background(), 7))
	assert.True(t, contains(*out, "username: Username is taken"))
}

func TestEditUser_LoadFailure(t *testing.T) {
	fc := &fakeClient{getErr: &api.StatusError{Code: 404, Message: "not found"}}
	a := newTestApp(t, fc)
	loginTestUser(t, a)
	out := captureOutput(t)

	require.NoError(t, a.EditUser(context.Background(), 99))
	assert.True(t, contains(*out, "Could not load user 99."))
}
