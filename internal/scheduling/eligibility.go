package scheduling

import (
	"time"

	"github.com/clinicware/admin-api/internal/model"
)

const civilDateLayout = "2006-01-02"

// CanModify reports whether an appointment may still be edited or
// cancelled: its status is not completed and its date is today or later.
// The comparison is by calendar date only; a same-day appointment whose
// start time has already passed is still modifiable. Cancelled appointments
// pass the date check but are terminal, so callers must separately exclude
// them from cancel actions.
func CanModify(appt *model.Appointment, today time.Time) bool {
	if appt.Status == model.AppointmentStatusCompleted {
		return false
	}

	date, err := time.Parse(civilDateLayout, appt.Date)
	if err != nil {
		return false
	}
	return !date.Before(startOfDay(today))
}

// CanAddClinicalRecord reports whether a prescription or treatment note may
// be attached: the appointment's date must equal today exactly. Status is
// deliberately not consulted, matching the console's long-standing
// behavior; a same-day cancelled appointment passes this gate.
func CanAddClinicalRecord(appt *model.Appointment, today time.Time) bool {
	return appt.Date == today.Format(civilDateLayout)
}

// IsAssignedDentist reports whether userID is the dentist assigned to the
// appointment. Clinical-record actions require this in addition to the
// same-day gate; composing the two is the caller's job since one rule is
// temporal and the other authorization.
func IsAssignedDentist(appt *model.Appointment, userID int64) bool {
	return appt.DentistID == userID && userID != 0
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
