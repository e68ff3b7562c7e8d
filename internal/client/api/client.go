package api

import (
	"context"

	"github.com/tempestapp/tempest-cli/internal/client/models"
)

// Client is the transport-facing contract for talking to the Tempest
// backend. All methods honor context cancellation and timeouts.
//
// The password-recovery endpoints return the raw response body: the backend
// signals success in those flows by string prefix (see the Prefix*
// constants), not by status code, so callers must inspect the text.
type Client interface {
	WebsiteInfo(ctx context.Context) (models.Website, error)
	SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error)
	Login(ctx context.Context, emailOrMobile, password string) (models.AuthResponse, error)
	RequestOTP(ctx context.Context, emailOrMobile string) (string, error)
	VerifyOTP(ctx context.Context, emailOrMobile, otp string) (string, error)
	ResetPassword(ctx context.Context, emailOrMobile, newPassword string) (string, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) error
}

// Success prefixes returned by the recovery endpoints. The matching must
// stay byte-exact for compatibility with the deployed backend.
const (
	PrefixOTPSent       = "OTP sent to"
	PrefixOTPVerified   = "OTP verified"
	PrefixPasswordReset = "Password reset successful"
)
