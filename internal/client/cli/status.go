package cli

import (
	"context"
	"fmt"

	"github.com/tempestapp/tempest-cli/internal/client/idle"
	"github.com/tempestapp/tempest-cli/internal/client/session"
)

// Touch registers user activity with the idle monitor.
func (a *App) Touch() {
	a.monitor.Touch()
}

// Continue dismisses an active idle warning and keeps the session alive.
// Outside the warning window it does nothing.
func (a *App) Continue(ctx context.Context) error {
	if a.monitor.State() != idle.StateIdle {
		printlnFn("Nothing to continue.")
		return nil
	}
	a.monitor.Continue()
	printlnFn("Welcome back. Your session has been extended.")
	return nil
}

// Whoami prints the signed-in user's record and the session token expiry.
func (a *App) Whoami(ctx context.Context) error {
	s := a.store.Current()
	if !s.Authenticated() {
		printlnFn("Not signed in.")
		return nil
	}

	u := s.User
	printlnFn(fmt.Sprintf("id:       %d", u.ID))
	printlnFn(fmt.Sprintf("name:     %s", u.Name))
	printlnFn(fmt.Sprintf("username: %s", u.Username))
	printlnFn(fmt.Sprintf("email:    %s", u.Email))
	printlnFn(fmt.Sprintf("mobile:   %s", u.MobileNumber))
	printlnFn(fmt.Sprintf("gender:   %s", u.Gender))
	if u.DOB != "" {
		printlnFn(fmt.Sprintf("dob:      %s", u.DOB))
	}

	if exp, err := session.TokenExpiry(s.Token); err == nil && !exp.IsZero() {
		printlnFn(fmt.Sprintf("token expires: %s", exp.Local().Format("2006-01-02 15:04:05")))
	}
	return nil
}

// Site prints the backend's site name.
func (a *App) Site(ctx context.Context) error {
	printlnFn(a.store.SiteName(ctx, a.client))
	return nil
}
