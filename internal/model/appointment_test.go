package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentJSONRoundTrip(t *testing.T) {
	in := Appointment{
		ID:            12,
		PatientID:     3,
		PatientName:   "Michael Brown",
		DentistID:     7,
		DentistName:   "Dr. Sarah Johnson",
		Date:          "2025-03-12",
		StartTime:     "09:00",
		EndTime:       "10:00",
		Status:        AppointmentStatusConfirmed,
		Type:          TypeFilling,
		TreatmentType: TreatmentDental,
		Notes:         "upper left molar",
		CreatedAt:     time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Appointment
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	// civil date and clock times pass through as-is, no zone shift
	assert.Equal(t, "2025-03-12", out.Date)
	assert.Equal(t, "09:00", out.StartTime)
}

func TestPaymentEntryJSONRoundTrip(t *testing.T) {
	in := PaymentEntry{
		ID:            4,
		AppointmentID: 12,
		PatientID:     3,
		Amount:        150.50,
		PaymentType:   PaymentTypeOnline,
		CreatedAt:     time.Date(2025, 3, 12, 11, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out PaymentEntry
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
	assert.Equal(t, 150.50, out.Amount)
}
