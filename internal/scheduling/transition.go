package scheduling

import (
	"fmt"

	"github.com/clinicware/admin-api/internal/model"
)

// Action is a requested status change.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// transitions maps current status to the actions it admits and their
// resulting status. Completed and cancelled are terminal.
var transitions = map[model.AppointmentStatus]map[Action]model.AppointmentStatus{
	model.AppointmentStatusScheduled: {
		ActionConfirm: model.AppointmentStatusConfirmed,
		ActionCancel:  model.AppointmentStatusCancelled,
	},
	model.AppointmentStatusConfirmed: {
		ActionComplete: model.AppointmentStatusCompleted,
		ActionCancel:   model.AppointmentStatusCancelled,
	},
}

// Transition applies an action to an appointment and returns a copy with
// only Status changed. An action the current status does not admit fails
// with ErrInvalidTransition and leaves the input untouched.
func Transition(appt *model.Appointment, action Action) (*model.Appointment, error) {
	next, ok := transitions[appt.Status][action]
	if !ok {
		return nil, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, appt.Status)
	}

	out := *appt
	out.Status = next
	return &out, nil
}

// CanTransition reports whether an action is admissible from the
// appointment's current status.
func CanTransition(appt *model.Appointment, action Action) bool {
	_, ok := transitions[appt.Status][action]
	return ok
}
