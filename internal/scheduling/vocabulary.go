// Package scheduling holds the appointment lifecycle and payment
// reconciliation rules: end-time derivation, per-treatment type
// vocabularies, edit/cancel eligibility, the same-day clinical-record gate,
// payment aggregation and validation, and the status state machine.
//
// Every function is pure. The package never reads the system clock; callers
// pass "today"/"now" in, which keeps the rules deterministic and testable.
// The UI layers used to duplicate these rules inline; they belong here and
// only here.
package scheduling

import "github.com/clinicware/admin-api/internal/model"

// TypeOption is one selectable appointment type for a treatment type.
type TypeOption struct {
	Code  model.AppointmentType `json:"code"`
	Label string                `json:"label"`
}

var dentalTypes = []TypeOption{
	{model.TypeCheckUp, "Check-up"},
	{model.TypeCleaning, "Cleaning"},
	{model.TypeFilling, "Filling"},
	{model.TypeExtraction, "Extraction"},
	{model.TypeRootCanal, "Root Canal"},
	{model.TypeConsultation, "Consultation"},
	{model.TypeOther, "Other"},
}

var hairTypes = []TypeOption{
	{model.TypePRP, "PRP"},
	{model.TypeHT, "HT"},
	{model.TypeConsultation, "Consultation"},
	{model.TypeCheckUp, "Check-up"},
}

var skinTypes = []TypeOption{
	{model.TypeHydrofacial, "Hydrofacial"},
	{model.TypeIV, "IV"},
	{model.TypeConsultation, "Consultation"},
	{model.TypeCheckUp, "Check-up"},
}

// AllowedTypes returns the ordered appointment type vocabulary for a
// treatment type. Unknown or unset treatment types fall back to the dental
// list, matching the console's historical default. Callers must clear a
// previously chosen type that is absent from the new list when the
// treatment type changes.
func AllowedTypes(treatment model.TreatmentType) []TypeOption {
	switch treatment {
	case model.TreatmentHair:
		return hairTypes
	case model.TreatmentSkin:
		return skinTypes
	default:
		return dentalTypes
	}
}

// TypeAllowed reports whether apptType belongs to the vocabulary of
// treatment.
func TypeAllowed(treatment model.TreatmentType, apptType model.AppointmentType) bool {
	for _, opt := range AllowedTypes(treatment) {
		if opt.Code == apptType {
			return true
		}
	}
	return false
}

// ValidateType returns ErrTypeNotAllowed when apptType is outside the
// vocabulary of treatment.
func ValidateType(treatment model.TreatmentType, apptType model.AppointmentType) error {
	if !TypeAllowed(treatment, apptType) {
		return ErrTypeNotAllowed
	}
	return nil
}
