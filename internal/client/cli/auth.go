package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/tempestapp/tempest-cli/internal/client/authflow"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an email or mobile number and a password and tries to
// authenticate. On failure the flow's login error is shown to the user and
// nil is returned; only input errors propagate.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email or mobile number", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	a.flow.SwitchView(authflow.ViewLogin)
	_ = a.flow.SetLoginField("emailOrMobile", identifier)
	_ = a.flow.SetLoginField(authflow.FieldPassword, password)

	if err := a.flow.SubmitLogin(ctx); err != nil {
		printlnFn(a.flow.LoginError())
		return nil
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", a.store.Current().User.Name))
	return nil
}

// signupPrompts pairs each signup field with its prompt text, in the order
// the form asks for them. Passwords are collected separately without echo.
var signupPrompts = []struct {
	field  string
	prompt string
}{
	{authflow.FieldName, "Enter your name"},
	{authflow.FieldUsername, "Choose a username"},
	{authflow.FieldEmail, "Enter email"},
	{authflow.FieldMobileNumber, "Enter mobile number"},
	{authflow.FieldGender, "Gender"},
	{authflow.FieldDOB, "Date of birth (yyyy-MM-dd)"},
}

// Signup walks the user through the registration form and submits it.
// Validation and conflict errors are printed per field; the account is
// signed in immediately on success.
func (a *App) Signup(ctx context.Context) error {
	a.flow.SwitchView(authflow.ViewSignup)

	for _, p := range signupPrompts {
		v, err := getSimpleText(a.reader, p.prompt, os.Stdout)
		if err != nil {
			return err
		}
		_ = a.flow.SetSignupField(p.field, v)
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	_ = a.flow.SetSignupField(authflow.FieldPassword, password)

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	_ = a.flow.SetSignupField(authflow.FieldConfirmPassword, confirm)

	if msg := a.flow.PasswordError(); msg != "" {
		printlnFn(msg)
		return nil
	}
	if !a.flow.CanSubmitSignup() {
		printlnFn("All fields are required.")
		return nil
	}

	if err := a.flow.SubmitSignup(ctx); err != nil {
		for field, msg := range a.flow.SignupErrors() {
			printlnFn(fmt.Sprintf("%s: %s", field, msg))
		}
		if len(a.flow.SignupErrors()) == 0 {
			printlnFn("Sign up failed. Please try again later.")
		}
		return nil
	}

	printlnFn(fmt.Sprintf("Account created. Welcome, %s!", a.store.Current().User.Name))
	return nil
}

// Logout ends the session and clears persisted credentials.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Signed out.")
	return nil
}
