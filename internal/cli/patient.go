package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clinicdesk/internal/models"
)

// reportErr logs a failed command and echoes the error to the user.
func (a *App) reportErr(ctx context.Context, op string, err error) error {
	a.log.Error(ctx, op, "error", err)
	fmt.Println(err.Error())
	return err
}

// PatientAdd prompts for the patient fields and creates a record.
func (a *App) PatientAdd(ctx context.Context) error {
	var p models.Patient
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter name", &p.PatientName},
		{"Enter gender", &p.PatientGender},
		{"Enter address", &p.PatientAddress},
		{"Enter contact", &p.PatientContact},
		{"Enter alternate contact", &p.PatientAlternateContact},
		{"Enter email", &p.PatientEmail},
		{"Enter date of birth (YYYY-MM-DD)", &p.PatientDateOfBirth},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	rec, err := a.patients.Add(ctx, p)
	if err != nil {
		return a.reportErr(ctx, "patient add failed", err)
	}
	fmt.Printf("Created patient %s\n", rec.ID)
	return nil
}

// PatientList prints one line per stored patient.
func (a *App) PatientList(ctx context.Context) error {
	list, err := a.patients.List(ctx)
	if err != nil {
		return a.reportErr(ctx, "patient list failed", err)
	}
	for _, rec := range list {
		fmt.Printf("%s  %s  %s  %s\n", rec.ID, rec.PatientName, rec.PatientGender, rec.PatientContact)
	}
	if len(list) == 0 {
		fmt.Println("No patients")
	}
	return nil
}

// PatientShow prints a single patient record in full.
func (a *App) PatientShow(ctx context.Context, id string) error {
	rec, err := a.patients.Get(ctx, id)
	if err != nil {
		return a.reportErr(ctx, "patient show failed", err)
	}
	if rec == nil {
		fmt.Println("Not found:", id)
		return nil
	}
	fmt.Printf("Name:              %s\n", rec.PatientName)
	fmt.Printf("Gender:            %s\n", rec.PatientGender)
	fmt.Printf("Address:           %s\n", rec.PatientAddress)
	fmt.Printf("Contact:           %s\n", rec.PatientContact)
	fmt.Printf("Alternate contact: %s\n", rec.PatientAlternateContact)
	fmt.Printf("Email:             %s\n", rec.PatientEmail)
	fmt.Printf("Date of birth:     %s\n", rec.PatientDateOfBirth)
	fmt.Printf("Created:           %s by %s\n", rec.CreatedAt, rec.CreatedBy)
	fmt.Printf("Updated:           %s\n", rec.UpdatedAt)
	return nil
}

// PatientUpdate prompts for new values (empty input keeps the current one)
// and applies a partial update.
func (a *App) PatientUpdate(ctx context.Context, id string) error {
	var upd models.PatientUpdate
	fields := []struct {
		prompt string
		dst    **string
	}{
		{"Name", &upd.PatientName},
		{"Gender", &upd.PatientGender},
		{"Address", &upd.PatientAddress},
		{"Contact", &upd.PatientContact},
		{"Alternate contact", &upd.PatientAlternateContact},
		{"Email", &upd.PatientEmail},
		{"Date of birth", &upd.PatientDateOfBirth},
	}
	for _, f := range fields {
		v, err := getOptionalText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	rec, err := a.patients.Update(ctx, id, upd)
	if err != nil {
		return a.reportErr(ctx, "patient update failed", err)
	}
	if rec == nil {
		fmt.Println("Not found:", id)
		return nil
	}
	fmt.Printf("Updated patient %s\n", rec.ID)
	return nil
}

// PatientDelete removes a patient record.
func (a *App) PatientDelete(ctx context.Context, id string) error {
	ok, err := a.patients.Remove(ctx, id)
	if err != nil {
		return a.reportErr(ctx, "patient delete failed", err)
	}
	if !ok {
		fmt.Println("Not found:", id)
		return nil
	}
	fmt.Printf("Deleted patient %s\n", id)
	return nil
}
