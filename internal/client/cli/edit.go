package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/tempestapp/tempest-cli/internal/client/api"
	"github.com/tempestapp/tempest-cli/internal/client/editor"
	"github.com/tempestapp/tempest-cli/internal/client/models"
)

// editPrompts pairs each editable field with its prompt label. The date of
// birth is handled separately because it carries a parsed date, not text.
var editPrompts = []struct {
	field string
	label string
}{
	{editor.FieldName, "Name"},
	{editor.FieldUsername, "Username"},
	{editor.FieldEmail, "Email"},
	{editor.FieldMobileNumber, "Mobile number"},
	{editor.FieldGender, "Gender"},
}

// EditUser loads the user record, lets the user revise each field (an empty
// answer keeps the current value), and saves the result. Conflicts reported
// by the backend are printed against the offending field.
func (a *App) EditUser(ctx context.Context, id int64) error {
	if !a.isLoggedIn() {
		printlnFn("You must be signed in to edit a user.")
		return nil
	}

	ed := editor.NewEditor(a.client, a.log)
	if err := ed.Load(ctx, id); err != nil {
		printlnFn(fmt.Sprintf("Could not load user %d.", id))
		return nil
	}

	d := ed.Draft()
	current := map[string]string{
		editor.FieldName:         d.Name,
		editor.FieldUsername:     d.Username,
		editor.FieldEmail:        d.Email,
		editor.FieldMobileNumber: d.MobileNumber,
		editor.FieldGender:       d.Gender,
	}

	printlnFn("Press Enter to keep the current value.")

	for _, p := range editPrompts {
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", p.label, current[p.field]), os.Stdout)
		if err != nil {
			return err
		}
		if v != "" {
			_ = ed.SetField(p.field, v)
		}
	}

	dobShown := ""
	if !d.DOB.IsZero() {
		dobShown = models.FormatWireDate(d.DOB)
	}
	v, err := getSimpleText(a.reader, fmt.Sprintf("Date of birth (dd-MM-yyyy) [%s]", dobShown), os.Stdout)
	if err != nil {
		return err
	}
	if v != "" {
		if dob, err := models.ParseWireDate(v); err != nil {
			printlnFn("Invalid date, keeping the current value.")
		} else {
			ed.SetDOB(dob)
		}
	}

	if err := ed.Submit(ctx); err != nil {
		var ce *api.ConflictError
		if errors.As(err, &ce) {
			for _, p := range editPrompts {
				if msg := ed.FieldError(p.field); msg != "" {
					printlnFn(fmt.Sprintf("%s: %s", p.field, msg))
				}
			}
			return nil
		}
		printlnFn("Update failed. Please try again later.")
		return nil
	}

	printlnFn(fmt.Sprintf("User %d updated.", id))
	return nil
}
