// Package models defines the wire types exchanged with the Tempest backend
// and helpers for its dd-MM-yyyy date format.
package models

// User is a user record as returned by the backend. DOB stays in wire
// format (dd-MM-yyyy); use ParseWireDate to get a time.Time.
type User struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Gender       string `json:"gender"`
	DOB          string `json:"dob,omitempty"`
}

// Website is the site metadata fetched once at startup.
type Website struct {
	Name string `json:"name"`
}

// AuthResponse is returned by both /signup and /login.
type AuthResponse struct {
	JWT  string `json:"jwt"`
	User User   `json:"user"`
}

// SignUpRequest is the /signup request body. DOB is a dd-MM-yyyy string or
// null when the draft has no date.
type SignUpRequest struct {
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	MobileNumber string  `json:"mobileNumber"`
	Password     string  `json:"password"`
	Gender       string  `json:"gender"`
	DOB          *string `json:"dob"`
}

type LoginRequest struct {
	EmailOrMobile string `json:"emailOrMobile"`
	Password      string `json:"password"`
}

type ForgotPasswordRequest struct {
	EmailOrMobile string `json:"emailOrMobile"`
}

type VerifyOTPRequest struct {
	EmailOrMobile string `json:"emailOrMobile"`
	OTP           string `json:"otp"`
}

type ResetPasswordRequest struct {
	EmailOrMobile string `json:"emailOrMobile"`
	NewPassword   string `json:"newPassword"`
}

// UpdateUserRequest is the PUT /user/:id body. Password is never sent from
// the editor.
type UpdateUserRequest struct {
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	MobileNumber string  `json:"mobileNumber"`
	Gender       string  `json:"gender"`
	DOB          *string `json:"dob"`
}
