// Package editor implements the single-record edit workflow: fetch one
// user by id, let fields be changed, submit the update.
//
// Like the authentication workflow it is a plain state machine driven from
// one goroutine and is not synchronized.
package editor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tempestapp/tempest-cli/internal/client/api"
	"github.com/tempestapp/tempest-cli/internal/client/models"
	"github.com/tempestapp/tempest-cli/internal/logging"
)

// Editable field names, mirroring the wire field names.
const (
	FieldName         = "name"
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldMobileNumber = "mobileNumber"
	FieldGender       = "gender"
)

var ErrUnknownField = errors.New("unknown field")

// Draft mirrors a fetched user record minus password fields. DOB is the
// in-memory date; zero means absent.
type Draft struct {
	Name         string
	Username     string
	Email        string
	MobileNumber string
	Gender       string
	DOB          time.Time
}

type Editor struct {
	client api.Client
	log    logging.Logger

	id     int64
	draft  Draft
	errors map[string]string
}

func NewEditor(client api.Client, log logging.Logger) *Editor {
	return &Editor{
		client: client,
		log:    log,
		errors: make(map[string]string),
	}
}

func (e *Editor) ID() int64    { return e.id }
func (e *Editor) Draft() Draft { return e.draft }

func (e *Editor) FieldError(field string) string { return e.errors[field] }

// Load fetches the record and fills the draft. The wire dob is parsed into
// a date; a malformed dob (anything but three numeric parts) leaves the
// date at its zero default while the rest of the record still loads.
func (e *Editor) Load(ctx context.Context, id int64) error {
	u, err := e.client.GetUser(ctx, id)
	if err != nil {
		return err
	}

	e.id = id
	e.draft = Draft{
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		Gender:       u.Gender,
	}
	e.errors = make(map[string]string)

	if u.DOB != "" {
		d, err := models.ParseWireDate(u.DOB)
		if err != nil {
			e.log.Warn(ctx, "record has unparseable dob", "id", id, "dob", u.DOB)
		} else {
			e.draft.DOB = d
		}
	}
	return nil
}

// SetField updates one text field and clears that field's error.
func (e *Editor) SetField(field, value string) error {
	delete(e.errors, field)
	switch field {
	case FieldName:
		e.draft.Name = value
	case FieldUsername:
		e.draft.Username = value
	case FieldEmail:
		e.draft.Email = value
	case FieldMobileNumber:
		e.draft.MobileNumber = value
	case FieldGender:
		e.draft.Gender = value
	default:
		return ErrUnknownField
	}
	return nil
}

func (e *Editor) SetDOB(d time.Time) {
	e.draft.DOB = d
}

// Submit converts the date back to the wire format (null when absent) and
// issues the update. A 409 message is attached to exactly one field: the
// first match in priority order username, email, mobile.
func (e *Editor) Submit(ctx context.Context) error {
	var dob *string
	if !e.draft.DOB.IsZero() {
		s := models.FormatWireDate(e.draft.DOB)
		dob = &s
	}

	req := models.UpdateUserRequest{
		Name:         e.draft.Name,
		Username:     e.draft.Username,
		Email:        e.draft.Email,
		MobileNumber: e.draft.MobileNumber,
		Gender:       e.draft.Gender,
		DOB:          dob,
	}

	if err := e.client.UpdateUser(ctx, e.id, req); err != nil {
		var ce *api.ConflictError
		if errors.As(err, &ce) {
			e.applyConflict(ce.Message)
		} else {
			e.log.Error(ctx, "unexpected error during update", "id", e.id, "error", err)
		}
		return err
	}
	return nil
}

func (e *Editor) applyConflict(message string) {
	e.errors = make(map[string]string)
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "username"):
		e.errors[FieldUsername] = message
	case strings.Contains(lower, "email"):
		e.errors[FieldEmail] = message
	case strings.Contains(lower, "mobile"):
		e.errors[FieldMobileNumber] = message
	}
}

// Reset restores all fields to empty and clears errors.
func (e *Editor) Reset() {
	e.draft = Draft{}
	e.errors = make(map[string]string)
}
