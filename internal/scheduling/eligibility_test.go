package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinicware/admin-api/internal/model"
)

var noon = time.Date(2025, 3, 12, 12, 30, 0, 0, time.UTC)

func appt(date string, status model.AppointmentStatus) *model.Appointment {
	return &model.Appointment{
		ID:        1,
		DentistID: 7,
		Date:      date,
		StartTime: "09:00",
		EndTime:   "09:30",
		Status:    status,
	}
}

func TestCanModifyBoundaries(t *testing.T) {
	// dated exactly today, confirmed: modifiable
	assert.True(t, CanModify(appt("2025-03-12", model.AppointmentStatusConfirmed), noon))

	// yesterday: not modifiable regardless of status
	assert.False(t, CanModify(appt("2025-03-11", model.AppointmentStatusScheduled), noon))

	// tomorrow but completed: not modifiable
	assert.False(t, CanModify(appt("2025-03-13", model.AppointmentStatusCompleted), noon))

	// tomorrow, scheduled: modifiable
	assert.True(t, CanModify(appt("2025-03-13", model.AppointmentStatusScheduled), noon))
}

func TestCanModifyIgnoresStartTime(t *testing.T) {
	// today at 09:00 is already past noon, but the rule compares dates only
	a := appt("2025-03-12", model.AppointmentStatusScheduled)
	a.StartTime = "09:00"
	assert.True(t, CanModify(a, noon))
}

func TestCanModifyCancelledStaysDateEligible(t *testing.T) {
	// cancelled appointments report as date-eligible; excluding them from
	// cancel actions is the caller's check
	assert.True(t, CanModify(appt("2025-03-12", model.AppointmentStatusCancelled), noon))
	assert.False(t, CanModify(appt("2025-03-01", model.AppointmentStatusCancelled), noon))
}

func TestCanModifyBadDate(t *testing.T) {
	assert.False(t, CanModify(appt("12/03/2025", model.AppointmentStatusScheduled), noon))
}

func TestCanAddClinicalRecordSameDayOnly(t *testing.T) {
	assert.True(t, CanAddClinicalRecord(appt("2025-03-12", model.AppointmentStatusConfirmed), noon))
	assert.False(t, CanAddClinicalRecord(appt("2025-03-11", model.AppointmentStatusConfirmed), noon))
	assert.False(t, CanAddClinicalRecord(appt("2025-03-13", model.AppointmentStatusConfirmed), noon))

	// status is not consulted, even for cancelled
	assert.True(t, CanAddClinicalRecord(appt("2025-03-12", model.AppointmentStatusCancelled), noon))
}

func TestIsAssignedDentist(t *testing.T) {
	a := appt("2025-03-12", model.AppointmentStatusConfirmed)
	assert.True(t, IsAssignedDentist(a, 7))
	assert.False(t, IsAssignedDentist(a, 8))
	assert.False(t, IsAssignedDentist(a, 0))
}
