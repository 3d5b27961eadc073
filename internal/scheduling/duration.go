package scheduling

import (
	"fmt"
	"time"

	"github.com/clinicware/admin-api/internal/model"
)

const (
	defaultDuration      = 30 // minutes
	longDuration         = 60
	consultationDuration = 45

	minutesPerDay = 24 * 60
)

// Duration returns the booked length, in minutes, for an appointment type.
// Filling, root canal and extraction take an hour, a consultation 45
// minutes, everything else the default half hour. The treatment type plays
// no part here; it only restricts which types are selectable.
func Duration(apptType model.AppointmentType) int {
	switch apptType {
	case model.TypeFilling, model.TypeRootCanal, model.TypeExtraction:
		return longDuration
	case model.TypeConsultation:
		return consultationDuration
	default:
		return defaultDuration
	}
}

// DeriveEndTime computes the end time (HH:MM) from a start time and the
// appointment type's duration. A start whose derived end would pass
// midnight is rejected with ErrCrossesMidnight rather than wrapped;
// appointments are assumed to fit within one calendar day.
func DeriveEndTime(start string, apptType model.AppointmentType) (string, error) {
	mins, err := parseClock(start)
	if err != nil {
		return "", err
	}

	end := mins + Duration(apptType)
	if end >= minutesPerDay {
		return "", ErrCrossesMidnight
	}
	return formatClock(end), nil
}

// parseClock converts "HH:MM" to minutes since midnight. time.Parse
// rejects unpadded fields and trailing text.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
