package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clinicdesk/internal/models"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// DoctorAdd prompts for the doctor fields and creates a record.
func (a *App) DoctorAdd(ctx context.Context) error {
	var d models.Doctor
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter name", &d.DoctorName},
		{"Enter specialty", &d.DoctorSpecialist},
		{"Enter email", &d.DoctorEmail},
		{"Enter contact", &d.DoctorContact},
		{"Enter experience", &d.DoctorExperience},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	rec, err := a.doctors.Add(ctx, d)
	if err != nil {
		return a.reportErr(ctx, "doctor add failed", err)
	}
	fmt.Printf("Created doctor %s\n", rec.ID)
	return nil
}

// DoctorList prints one line per stored doctor.
func (a *App) DoctorList(ctx context.Context) error {
	list, err := a.doctors.List(ctx)
	if err != nil {
		return a.reportErr(ctx, "doctor list failed", err)
	}
	for _, rec := range list {
		fmt.Printf("%s  %s  %s  %s\n", rec.ID, rec.DoctorName, rec.DoctorSpecialist, rec.DoctorContact)
	}
	if len(list) == 0 {
		fmt.Println("No doctors")
	}
	return nil
}

// DoctorShow prints a single doctor record in full.
func (a *App) DoctorShow(ctx context.Context, id string) error {
	rec, err := a.doctors.Get(ctx, id)
	if err != nil {
		return a.reportErr(ctx, "doctor show failed", err)
	}
	if rec == nil {
		fmt.Println("Not found:", id)
		return nil
	}
	fmt.Printf("Name:       %s\n", rec.DoctorName)
	fmt.Printf("Specialty:  %s\n", rec.DoctorSpecialist)
	fmt.Printf("Email:      %s\n", rec.DoctorEmail)
	fmt.Printf("Contact:    %s\n", rec.DoctorContact)
	fmt.Printf("Experience: %s\n", rec.DoctorExperience)
	fmt.Printf("Created:    %s by %s\n", rec.CreatedAt, rec.CreatedBy)
	fmt.Printf("Updated:    %s\n", rec.UpdatedAt)
	return nil
}

// DoctorUpdate prompts for new values (empty input keeps the current one)
// and applies a partial update.
func (a *App) DoctorUpdate(ctx context.Context, id string) error {
	var upd models.DoctorUpdate
	fields := []struct {
		prompt string
		dst    **string
	}{
		{"Name", &upd.DoctorName},
		{"Specialty", &upd.DoctorSpecialist},
		{"Email", &upd.DoctorEmail},
		{"Contact", &upd.DoctorContact},
		{"Experience", &upd.DoctorExperience},
	}
	for _, f := range fields {
		v, err := getOptionalText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	rec, err := a.doctors.Update(ctx, id, upd)
	if err != nil {
		return a.reportErr(ctx, "doctor update failed", err)
	}
	if rec == nil {
		fmt.Println("Not found:", id)
		return nil
	}
	fmt.Printf("Updated doctor %s\n", rec.ID)
	return nil
}

// DoctorDelete removes a doctor record.
func (a *App) DoctorDelete(ctx context.Context, id string) error {
	ok, err := a.doctors.Remove(ctx, id)
	if err != nil {
		return a.reportErr(ctx, "doctor delete failed", err)
	}
	if !ok {
		fmt.Println("Not found:", id)
		return nil
	}
	fmt.Printf("Deleted doctor %s\n", id)
	return nil
}

// DoctorImport reads a JSON array of doctor inputs from path and replaces
// the whole collection with it. Imported records get fresh ids and carry no
// owner, so afterwards only an admin can modify them.
func (a *App) DoctorImport(ctx context.Context, path string) error {
	b, err := readFile(path)
	if err != nil {
		return a.reportErr(ctx, "doctor import failed", err)
	}

	var input []models.Doctor
	if err := json.Unmarshal(b, &input); err != nil {
		return a.reportErr(ctx, "doctor import failed", fmt.Errorf("failed to parse %s: %w", path, err))
	}

	list, err := a.doctors.ReplaceAll(ctx, input)
	if err != nil {
		return a.reportErr(ctx, "doctor import failed", err)
	}
	fmt.Printf("Imported %d doctors\n", len(list))
	return nil
}

// DoctorClear wipes the doctor collection.
func (a *App) DoctorClear(ctx context.Context) error {
	if err := a.doctors.ClearAll(ctx); err != nil {
		return a.reportErr(ctx, "doctor clear failed", err)
	}
	fmt.Println("Doctors cleared")
	return nil
}
