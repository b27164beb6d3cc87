package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clinicdesk/internal/models"
)

// AppointmentAdd prompts for the appointment fields and creates a record.
// Patient and doctor ids are taken as typed; they are not validated against
// the other collections.
func (a *App) AppointmentAdd(ctx context.Context) error {
	var appt models.Appointment
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter patient id", &appt.PatientID},
		{"Enter doctor id", &appt.DoctorID},
		{"Enter date (YYYY-MM-DD)", &appt.AppointmentDate},
		{"Enter time (HH:mm)", &appt.AppointmentTime},
		{"Enter notes", &appt.Notes},
		{"Enter reason", &appt.Reason},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	appt.Status = models.StatusScheduled

	rec, err := a.appointments.Add(ctx, appt)
	if err != nil {
		return a.reportErr(ctx, "appointment add failed", err)
	}
	fmt.Printf("Created appointment %s\n", rec.ID)
	return nil
}

// AppointmentList prints one line per stored appointment.
func (a *App) AppointmentList(ctx context.Context) error {
	list, err := a.appointments.List(ctx)
	if err != nil {
		return a.reportErr(ctx, "appointment list failed", err)
	}
	for _, rec := range list {
		fmt.Printf("%s  %s %s  patient=%s doctor=%s  %s\n",
			rec.ID, rec.AppointmentDate, rec.AppointmentTime, rec.PatientID, rec.DoctorID, rec.Status)
	}
	if len(list) == 0 {
		fmt.Println("No appointments")
	}
	return nil
}

// AppointmentShow prints a single appointment record in full.
func (a *App) AppointmentShow(ctx context.Context, id string) error {
	rec, err := a.appointments.Get(ctx, id)
	if err != nil {
		return a.reportErr(ctx, "appointment show failed", err)
	}
	if rec == nil {
		fmt.Println("Not found:", id)
		return nil
	}
	fmt.Printf("Patient: %s\n", rec.PatientID)
	fmt.Printf("Doctor:  %s\n", rec.DoctorID)
	fmt.Printf("Date:    %s %s\n", rec.AppointmentDate, rec.AppointmentTime)
	fmt.Printf("Notes:   %s\n", rec.Notes)
	fmt.Printf("Reason:  %s\n", rec.Reason)
	fmt.Printf("Status:  %s\n", rec.Status)
	fmt.Printf("Created: %s by %s\n", rec.CreatedAt, rec.CreatedBy)
	fmt.Printf("Updated: %s\n", rec.UpdatedAt)
	return nil
}

// AppointmentUpdate prompts for new values (empty input keeps the current
// one) and applies a partial update. A new status is only honored when the
// current principal is an admin; for everybody else it is silently ignored.
func (a *App) AppointmentUpdate(ctx context.Context, id string) error {
	var upd models.AppointmentUpdate
	fields := []struct {
		prompt string
		dst    **string
	}{
		{"Patient id", &upd.PatientID},
		{"Doctor id", &upd.DoctorID},
		{"Date", &upd.AppointmentDate},
		{"Time", &upd.AppointmentTime},
		{"Notes", &upd.Notes},
		{"Reason", &upd.Reason},
	}
	for _, f := range fields {
		v, err := getOptionalText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	status, err := getOptionalText(a.reader, "Status (Scheduled|Completed|Cancelled)", os.Stdout)
	if err != nil {
		return err
	}
	if status != nil {
		s := models.AppointmentStatus(*status)
		upd.Status = &s
	}

	rec, err := a.appointments.Update(ctx, id, upd)
	if err != nil {
		return a.reportErr(ctx, "appointment update failed", err)
	}
	if rec == nil {
		fmt.Println("Not found:", id)
		return nil
	}
	fmt.Printf("Updated appointment %s\n", rec.ID)
	return nil
}

// AppointmentDelete removes an appointment record.
func (a *App) AppointmentDelete(ctx context.Context, id string) error {
	ok, err := a.appointments.Remove(ctx, id)
	if err != nil {
		return a.reportErr(ctx, "appointment delete failed", err)
	}
	if !ok {
		fmt.Println("Not found:", id)
		return nil
	}
	fmt.Printf("Deleted appointment %s\n", id)
	return nil
}
