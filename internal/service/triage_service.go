package service

import (
	"context"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/service/classifier"
	"github.com/VictorAraujo38/akkadian-test/pkg/metrics"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TriageOutcome is a classification plus the specialty record it resolved
// to. Specialty is nil when nothing could be resolved.
type TriageOutcome struct {
	Result    *entity.TriageResult
	Specialty *entity.Specialty
	Method    MatchMethod
	Reasoning string
}

// TriageService chains the symptom classifier into the specialty resolver.
// It never fails; each stage degrades to its default.
type TriageService interface {
	Triage(ctx context.Context, symptoms string, preferredSpecialty string) *TriageOutcome
}

type triageService struct {
	log        *logrus.Logger
	metrics    *metrics.SchedulingMetrics
	classifier classifier.SymptomClassifier
	resolver   SpecialtyResolver
}

func NewTriageService(
	log *logrus.Logger,
	metrics *metrics.SchedulingMetrics,
	symptomClassifier classifier.SymptomClassifier,
	resolver SpecialtyResolver,
) TriageService {
	return &triageService{
		log:        log,
		metrics:    metrics,
		classifier: symptomClassifier,
		resolver:   resolver,
	}
}

func (s *triageService) Triage(ctx context.Context, symptoms string, preferredSpecialty string) *TriageOutcome {
	// 1. Classify
	result, err := s.classifier.Classify(ctx, symptoms)
	if err != nil || result == nil {
		s.log.Errorf("Symptom classification failed, using default specialty: %+v", err)
		result = &entity.TriageResult{
			Specialty:  entity.SpecialtyGeneralMedicine,
			Confidence: entity.ConfidenceLow,
			Reasoning:  "Automatic triage failed; a general practitioner will assess the symptoms",
			Score:      decimal.Zero,
			Source:     entity.TriageSourceKeyword,
		}
	}
	s.metrics.ObserveTriage(result.Specialty, string(result.Confidence), result.Source)

	outcome := &TriageOutcome{Result: result, Method: MatchFallback, Reasoning: result.Reasoning}

	// 2. A recognised preferred specialty overrides the classifier
	if preferredSpecialty != "" {
		resolution, err := s.resolver.Resolve(ctx, preferredSpecialty)
		if err != nil {
			s.log.Warnf("Failed to resolve preferred specialty %q: %+v", preferredSpecialty, err)
		} else if resolution.Method != MatchFallback {
			outcome.Specialty = resolution.Specialty
			outcome.Method = resolution.Method
			return outcome
		}
	}

	// 3. Resolve the classifier's answer
	resolution, err := s.resolver.Resolve(ctx, result.Specialty)
	if err != nil {
		s.log.Warnf("Failed to resolve specialty %q, leaving appointment without specialty: %+v", result.Specialty, err)
		return outcome
	}
	outcome.Specialty = resolution.Specialty
	outcome.Method = resolution.Method
	outcome.Reasoning = resolution.Annotate(result.Reasoning)
	return outcome
}
