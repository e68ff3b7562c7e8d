// Package authflow implements the authentication workflow: three mutually
// exclusive views (login, signup, forgot-password) and, inside the
// forgot-password view, an ordered three-step recovery sequence.
//
// The Flow is a plain state machine over drafts, field errors, and the
// current view/step. It performs local validation, talks to the backend
// through api.Client, and hands successful identities to the session
// store. All transitions are driven from a single goroutine (the REPL);
// the type is not synchronized.
package authflow

import (
	"context"
	"errors"
	"strings"

	"github.com/tempestapp/tempest-cli/internal/client/api"
	"github.com/tempestapp/tempest-cli/internal/client/models"
	"github.com/tempestapp/tempest-cli/internal/client/session"
	"github.com/tempestapp/tempest-cli/internal/logging"
)

type View string

const (
	ViewLogin          View = "login"
	ViewSignup         View = "signup"
	ViewForgotPassword View = "forgotPassword"
)

type RecoveryStep string

const (
	StepEnterIdentifier RecoveryStep = "enterIdentifier"
	StepEnterOTP        RecoveryStep = "enterOtp"
	StepResetPassword   RecoveryStep = "resetPassword"
)

// Signup draft field names. They mirror the wire field names so conflict
// errors land on the field they belong to.
const (
	FieldName            = "name"
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldMobileNumber    = "mobileNumber"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldGender          = "gender"
	FieldDOB             = "dob"
)

const passwordMismatchMsg = "Passwords do not match!"

var (
	ErrDraftIncomplete = errors.New("signup draft incomplete")
	ErrPasswordsDiffer = errors.New("passwords do not match")
	ErrUnknownField    = errors.New("unknown field")
)

// SignupDraft holds the signup form. DOB is kept in the yyyy-MM-dd input
// order and reordered to the wire format only at submit time.
type SignupDraft struct {
	Name            string
	Username        string
	Email           string
	MobileNumber    string
	Password        string
	ConfirmPassword string
	Gender          string
	DOB             string
}

type LoginDraft struct {
	EmailOrMobile string
	Password      string
}

type RecoveryDraft struct {
	EmailOrMobile      string
	OTP                string
	NewPassword        string
	ConfirmNewPassword string
}

type Flow struct {
	client api.Client
	store  *session.Store
	log    logging.Logger

	view View
	step RecoveryStep

	signup   SignupDraft
	login    LoginDraft
	recovery RecoveryDraft

	signupErrors  map[string]string
	passwordError string
	loginError    string
	recoveryError string
	resetError    string
}

func NewFlow(client api.Client, store *session.Store, log logging.Logger) *Flow {
	return &Flow{
		client:       client,
		store:        store,
		log:          log,
		view:         ViewLogin,
		step:         StepEnterIdentifier,
		signupErrors: make(map[string]string),
	}
}

func (f *Flow) View() View         { return f.view }
func (f *Flow) Step() RecoveryStep { return f.step }

func (f *Flow) SwitchView(v View) { f.view = v }

func (f *Flow) Signup() SignupDraft     { return f.signup }
func (f *Flow) Login() LoginDraft       { return f.login }
func (f *Flow) Recovery() RecoveryDraft { return f.recovery }

func (f *Flow) LoginError() string    { return f.loginError }
func (f *Flow) PasswordError() string { return f.passwordError }
func (f *Flow) RecoveryError() string { return f.recoveryError }
func (f *Flow) ResetError() string    { return f.resetError }

// SignupError returns the error attached to one signup field, if any.
func (f *Flow) SignupError(field string) string { return f.signupErrors[field] }

// SignupErrors returns a copy of all per-field signup errors.
func (f *Flow) SignupErrors() map[string]string {
	out := make(map[string]string, len(f.signupErrors))
	for k, v := range f.signupErrors {
		out[k] = v
	}
	return out
}

// SetLoginField updates the login draft. Any edit clears the login error.
func (f *Flow) SetLoginField(field, value string) error {
	f.loginError = ""
	switch field {
	case FieldEmail, "emailOrMobile":
		f.login.EmailOrMobile = value
	case FieldPassword:
		f.login.Password = value
	default:
		return ErrUnknownField
	}
	return nil
}

// SetSignupField updates one signup field. The field's own error clears on
// edit; the password-confirmation error is recomputed after every change.
func (f *Flow) SetSignupField(field, value string) error {
	delete(f.signupErrors, field)
	switch field {
	case FieldName:
		f.signup.Name = value
	case FieldUsername:
		f.signup.Username = value
	case FieldEmail:
		f.signup.Email = value
	case FieldMobileNumber:
		f.signup.MobileNumber = value
	case FieldPassword:
		f.signup.Password = value
	case FieldConfirmPassword:
		f.signup.ConfirmPassword = value
	case FieldGender:
		f.signup.Gender = value
	case FieldDOB:
		f.signup.DOB = value
	default:
		return ErrUnknownField
	}
	f.recomputePasswordError()
	return nil
}

func (f *Flow) recomputePasswordError() {
	if f.signup.ConfirmPassword != "" && f.signup.Password != f.signup.ConfirmPassword {
		f.passwordError = passwordMismatchMsg
	} else {
		f.passwordError = ""
	}
}

// SetRecoveryField updates the recovery draft. Any edit clears the step
// error; the new-password confirmation error is recomputed.
func (f *Flow) SetRecoveryField(field, value string) error {
	f.recoveryError = ""
	switch field {
	case "emailOrMobile":
		f.recovery.EmailOrMobile = value
	case "otp":
		f.recovery.OTP = value
	case "newPassword":
		f.recovery.NewPassword = value
	case "confirmNewPassword":
		f.recovery.ConfirmNewPassword = value
	default:
		return ErrUnknownField
	}
	if f.recovery.ConfirmNewPassword != "" && f.recovery.NewPassword != f.recovery.ConfirmNewPassword {
		f.resetError = passwordMismatchMsg
	} else {
		f.resetError = ""
	}
	return nil
}

// CanSubmitSignup reports whether submit is allowed: every field must be
// non-empty and the two password fields must match.
func (f *Flow) CanSubmitSignup() bool {
	d := f.signup
	allFilled := strings.TrimSpace(d.Name) != "" &&
		strings.TrimSpace(d.Username) != "" &&
		strings.TrimSpace(d.Email) != "" &&
		strings.TrimSpace(d.MobileNumber) != "" &&
		strings.TrimSpace(d.Password) != "" &&
		strings.TrimSpace(d.ConfirmPassword) != "" &&
		strings.TrimSpace(d.Gender) != "" &&
		d.DOB != ""
	return allFilled && f.passwordError == ""
}

// CanSubmitReset mirrors the reset form's submit gate: blocked only while
// the confirmation mismatch error is showing.
func (f *Flow) CanSubmitReset() bool {
	return f.resetError == ""
}

// SubmitLogin authenticates the login draft. On success the session store
// takes over the identity and the caller navigates home. On failure a
// generic credentials error (or the backend's message, when it sent one)
// is recorded and the underlying error returned.
func (f *Flow) SubmitLogin(ctx context.Context) error {
	resp, err := f.client.Login(ctx, f.login.EmailOrMobile, f.login.Password)
	if err != nil {
		f.loginError = "Invalid credentials or service unavailable."
		var se *api.StatusError
		if errors.As(err, &se) && se.Message != "" {
			f.loginError = se.Message
		}
		f.log.Warn(ctx, "login request failed", "error", err)
		return err
	}
	return f.store.Login(ctx, resp.JWT, resp.User)
}

// SubmitSignup submits the signup draft. The draft must pass
// CanSubmitSignup. On success the returned identity is logged in directly
// and the draft cleared. A 409 is mapped onto per-field errors: the
// message is scanned case-insensitively and every matching field gets its
// own error, so simultaneous conflicts are all reported.
func (f *Flow) SubmitSignup(ctx context.Context) error {
	if f.passwordError != "" {
		return ErrPasswordsDiffer
	}
	if !f.CanSubmitSignup() {
		return ErrDraftIncomplete
	}

	var dob *string
	if f.signup.DOB != "" {
		wire, err := models.InputToWireDate(f.signup.DOB)
		if err != nil {
			f.signupErrors[FieldDOB] = err.Error()
			return err
		}
		dob = &wire
	}

	req := models.SignUpRequest{
		Name:         f.signup.Name,
		Username:     f.signup.Username,
		Email:        f.signup.Email,
		MobileNumber: f.signup.MobileNumber,
		Password:     f.signup.Password,
		Gender:       f.signup.Gender,
		DOB:          dob,
	}

	resp, err := f.client.SignUp(ctx, req)
	if err != nil {
		var ce *api.ConflictError
		if errors.As(err, &ce) {
			f.applySignupConflict(ce.Message)
			return err
		}
		f.log.Error(ctx, "unexpected error during sign-up", "error", err)
		return err
	}

	if err := f.store.Login(ctx, resp.JWT, resp.User); err != nil {
		return err
	}
	f.signup = SignupDraft{}
	f.signupErrors = make(map[string]string)
	f.passwordError = ""
	return nil
}

func (f *Flow) applySignupConflict(message string) {
	f.signupErrors = make(map[string]string)
	lower := strings.ToLower(message)
	if strings.Contains(lower, "username") {
		f.signupErrors[FieldUsername] = "Username already exists."
	}
	if strings.Contains(lower, "email") {
		f.signupErrors[FieldEmail] = "Email already exists."
	}
	if strings.Contains(lower, "mobile") {
		f.signupErrors[FieldMobileNumber] = "Mobile number already exists."
	}
}

// RequestOTP runs recovery step 1. Only a body starting with "OTP sent to"
// advances to the OTP step; any other body means the identifier is
// unknown. Transport failures show a service-unavailable message.
func (f *Flow) RequestOTP(ctx context.Context) error {
	body, err := f.client.RequestOTP(ctx, f.recovery.EmailOrMobile)
	if err != nil {
		f.recoveryError = "Service is currently unavailable. Please try again later."
		f.log.Warn(ctx, "forgot-password request failed", "error", err)
		return err
	}
	if strings.HasPrefix(body, api.PrefixOTPSent) {
		f.step = StepEnterOTP
		f.recoveryError = ""
		return nil
	}
	f.recoveryError = "User not found"
	return nil
}

// VerifyOTP runs recovery step 2. A body starting with "OTP verified"
// advances to the reset step; any other body is shown verbatim.
func (f *Flow) VerifyOTP(ctx context.Context) error {
	body, err := f.client.VerifyOTP(ctx, f.recovery.EmailOrMobile, f.recovery.OTP)
	if err != nil {
		f.recoveryError = "Invalid OTP. Please try again."
		f.log.Warn(ctx, "otp verification failed", "error", err)
		return err
	}
	if strings.HasPrefix(body, api.PrefixOTPVerified) {
		f.step = StepResetPassword
		f.recoveryError = ""
		return nil
	}
	f.recoveryError = body
	return nil
}

// SubmitResetPassword runs recovery step 3. The confirmation must match
// locally before the request is sent. A body starting with "Password reset
// successful" returns the user to the login view and discards the
// recovery draft; any other body is shown verbatim.
func (f *Flow) SubmitResetPassword(ctx context.Context) error {
	if !f.CanSubmitReset() {
		return ErrPasswordsDiffer
	}
	body, err := f.client.ResetPassword(ctx, f.recovery.EmailOrMobile, f.recovery.NewPassword)
	if err != nil {
		f.resetError = "Password reset failed. Please try again."
		f.log.Warn(ctx, "password reset failed", "error", err)
		return err
	}
	if !strings.HasPrefix(body, api.PrefixPasswordReset) {
		f.resetError = body
		return nil
	}
	f.resetError = ""
	f.recovery = RecoveryDraft{}
	f.step = StepEnterIdentifier
	f.view = ViewLogin
	return nil
}

// Reset discards the signup and login drafts together with their errors.
func (f *Flow) Reset() {
	f.signup = SignupDraft{}
	f.login = LoginDraft{}
	f.signupErrors = make(map[string]string)
	f.passwordError = ""
	f.loginError = ""
}
