package editor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempestapp/tempest-cli/internal/client/api"
	"github.com/tempestapp/tempest-cli/internal/client/models"
	"github.com/tempestapp/tempest-cli/internal/logging"
)

type fakeClient struct {
	user    models.User
	getErr  error
	gotID   int64
	gotReq  models.UpdateUserRequest
	putErr  error
	putDone bool
}

func (f *fakeClient) WebsiteInfo(context.Context) (models.Website, error) {
	return models.Website{}, nil
}
func (f *fakeClient) SignUp(context.Context, models.SignUpRequest) (models.AuthResponse, error) {
	return models.AuthResponse{}, nil
}
func (f *fakeClient) Login(context.Context, string, string) (models.AuthResponse, error) {
	return models.AuthResponse{}, nil
}
func (f *fakeClient) RequestOTP(context.Context, string) (string, error)        { return "", nil }
func (f *fakeClient) VerifyOTP(context.Context, string, string) (string, error) { return "", nil }
func (f *fakeClient) ResetPassword(context.Context, string, string) (string, error) {
	return "", nil
}
func (f *fakeClient) GetUser(_ context.Context, id int64) (models.User, error) {
	f.gotID = id
	return f.user, f.getErr
}
func (f *fakeClient) UpdateUser(_ context.Context, id int64, req models.UpdateUserRequest) error {
	f.gotID = id
	f.gotReq = req
	f.putDone = true
	return f.putErr
}

func newTestEditor(t *testing.T, client api.Client) *Editor {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewEditor(client, log)
}

func TestLoad_ParsesWireDOB(t *testing.T) {
	client := &fakeClient{user: models.User{
		ID: 42, Name: "Alice", Username: "alice", Email: "a@x.com",
		MobileNumber: "555", Gender: "Female", DOB: "04-07-2001",
	}}
	e := newTestEditor(t, client)

	require.NoError(t, e.Load(context.Background(), 42))
	assert.Equal(t, int64(42), client.gotID)
	assert.Equal(t, "alice", e.Draft().Username)
	assert.Equal(t, time.Date(2001, time.July, 4, 0, 0, 0, 0, time.UTC), e.Draft().DOB)
}

func TestLoad_MalformedDOBLeavesZeroDate(t *testing.T) {
	client := &fakeClient{user: models.User{Username: "alice", DOB: "July 4th"}}
	e := newTestEditor(t, client)

	require.NoError(t, e.Load(context.Background(), 1))
	assert.Equal(t, "alice", e.Draft().Username, "record still loads")
	assert.True(t, e.Draft().DOB.IsZero())
}

func TestLoad_FetchErrorPropagates(t *testing.T) {
	client := &fakeClient{getErr: api.ErrUnavailable}
	e := newTestEditor(t, client)

	require.ErrorIs(t, e.Load(context.Background(), 1), api.ErrUnavailable)
}

func TestSubmit_RoundTripsDOB(t *testing.T) {
	client := &fakeClient{user: models.User{Username: "alice", DOB: "04-07-2001"}}
	e := newTestEditor(t, client)
	require.NoError(t, e.Load(context.Background(), 42))

	require.NoError(t, e.Submit(context.Background()))
	require.NotNil(t, client.gotReq.DOB)
	assert.Equal(t, "04-07-2001", *client.gotReq.DOB)
}

func TestSubmit_AbsentDOBSendsNull(t *testing.T) {
	client := &fakeClient{user: models.User{Username: "alice"}}
	e := newTestEditor(t, client)
	require.NoError(t, e.Load(context.Background(), 42))

	require.NoError(t, e.Submit(context.Background()))
	assert.Nil(t, client.gotReq.DOB)
}

func TestSubmit_ConflictFirstMatchWins(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantField string
	}{
		{name: "username outranks mobile", message: "Username and mobile number already in use", wantField: FieldUsername},
		{name: "email outranks mobile", message: "EMAIL or mobile already registered", wantField: FieldEmail},
		{name: "mobile alone", message: "mobile number already registered", wantField: FieldMobileNumber},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{putErr: &api.ConflictError{Message: tt.message}}
			e := newTestEditor(t, client)

			require.Error(t, e.Submit(context.Background()))
			assert.Equal(t, tt.message, e.FieldError(tt.wantField), "raw message lands on the field")

			for _, other := range []string{FieldUsername, FieldEmail, FieldMobileNumber} {
				if other != tt.wantField {
					assert.Empty(t, e.FieldError(other))
				}
			}
		})
	}
}

func TestSubmit_NonConflictErrorLeavesFieldsClean(t *testing.T) {
	client := &fakeClient{putErr: errors.New("boom")}
	e := newTestEditor(t, client)

	require.Error(t, e.Submit(context.Background()))
	assert.Empty(t, e.FieldError(FieldUsername))
	assert.Empty(t, e.FieldError(FieldEmail))
	assert.Empty(t, e.FieldError(FieldMobileNumber))
}

func TestFieldErrorClearsOnEdit(t *testing.T) {
	client := &fakeClient{putErr: &api.ConflictError{Message: "username taken"}}
	e := newTestEditor(t, client)
	require.Error(t, e.Submit(context.Background()))
	require.NotEmpty(t, e.FieldError(FieldUsername))

	require.NoError(t, e.SetField(FieldUsername, "other"))
	assert.Empty(t, e.FieldError(FieldUsername))
}

func TestSetField_UnknownRejected(t *testing.T) {
	e := newTestEditor(t, &fakeClient{})
	require.ErrorIs(t, e.SetField("dob", "x"), ErrUnknownField)
}

func TestReset_EmptiesDraftAndErrors(t *testing.T) {
	client := &fakeClient{
		user:   models.User{Name: "Alice", Username: "alice", DOB: "04-07-2001"},
		putErr: &api.ConflictError{Message: "email exists"},
	}
	e := newTestEditor(t, client)
	require.NoError(t, e.Load(context.Background(), 1))
	require.Error(t, e.Submit(context.Background()))

	e.Reset()
	assert.Equal(t, Draft{}, e.Draft())
	assert.Empty(t, e.FieldError(FieldEmail))
}
