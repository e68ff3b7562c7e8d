package cli

import (
	"context"
	"os"

	"github.com/tempestapp/tempest-cli/internal/client/authflow"
)

// ForgotPassword runs the three-step recovery flow: identify the account,
// verify the OTP the backend sent out, then set a new password. Each step
// gates the next; a failed step prints the backend's message and aborts.
func (a *App) ForgotPassword(ctx context.Context) error {
	a.flow.SwitchView(authflow.ViewForgotPassword)

	identifier, err := getSimpleText(a.reader, "Enter email or mobile number", os.Stdout)
	if err != nil {
		return err
	}
	_ = a.flow.SetRecoveryField("emailOrMobile", identifier)

	if err := a.flow.RequestOTP(ctx); err != nil || a.flow.Step() != authflow.StepEnterOTP {
		printlnFn(a.flow.RecoveryError())
		return nil
	}
	printlnFn("An OTP has been sent to you.")

	otp, err := getSimpleText(a.reader, "Enter the OTP", os.Stdout)
	if err != nil {
		return err
	}
	_ = a.flow.SetRecoveryField("otp", otp)

	if err := a.flow.VerifyOTP(ctx); err != nil || a.flow.Step() != authflow.StepResetPassword {
		printlnFn(a.flow.RecoveryError())
		return nil
	}

	newPassword, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	_ = a.flow.SetRecoveryField("newPassword", newPassword)

	confirm, err := getPassword("Confirm new password", os.Stdout)
	if err != nil {
		return err
	}
	_ = a.flow.SetRecoveryField("confirmNewPassword", confirm)

	if !a.flow.CanSubmitReset() {
		printlnFn(a.flow.ResetError())
		return nil
	}

	if err := a.flow.SubmitResetPassword(ctx); err != nil || a.flow.ResetError() != "" {
		printlnFn(a.flow.ResetError())
		return nil
	}

	printlnFn("Password reset successful. You can now log in.")
	return nil
}
