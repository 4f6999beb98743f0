// Package classifier maps free-text symptoms to a medical specialty.
//
// KeywordClassifier is deterministic and never fails. ModelClassifier asks a
// language model and may fail; wrap it with FallbackClassifier so callers
// always get a result.
package classifier

import (
	"context"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
)

type SymptomClassifier interface {
	Classify(ctx context.Context, symptoms string) (*entity.TriageResult, error)
}

// EmergencySpecialty is returned when no keyword matches but the symptoms
// describe an emergency. The resolver maps it onto Emergency Medicine.
const EmergencySpecialty = "Emergency"

// KnownSpecialties lists the canonical names a classifier may answer with.
func KnownSpecialties() []string {
	return []string{
		entity.SpecialtyGeneralMedicine,
		entity.SpecialtyEmergency,
		entity.SpecialtyCardiology,
		entity.SpecialtyNeurology,
		entity.SpecialtyPulmonology,
		entity.SpecialtyPsychiatry,
		entity.SpecialtyOrthopedics,
		entity.SpecialtyAllergology,
		entity.SpecialtyGastro,
		entity.SpecialtyOphthalmology,
		entity.SpecialtyENT,
		entity.SpecialtyDermatology,
		entity.SpecialtyEndocrinology,
		entity.SpecialtyUrology,
		entity.SpecialtyPediatrics,
		entity.SpecialtyGynecology,
	}
}
