package service

import (
	"context"
	"errors"
	"testing"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/service/classifier"
	"github.com/VictorAraujo38/akkadian-test/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingClassifier struct{}

func (failingClassifier) Classify(context.Context, string) (*entity.TriageResult, error) {
	return nil, errors.New("classifier offline")
}

func newTriage(f *fixture, c classifier.SymptomClassifier) TriageService {
	return NewTriageService(testutil.NewLogger(), nil, c, f.resolver)
}

func TestTriageService_ClassifiesAndResolves(t *testing.T) {
	f := newFixture(t)
	seedSpecialties(f)
	triage := newTriage(f, classifier.NewKeywordClassifier(testutil.NewLogger()))

	outcome := triage.Triage(context.Background(), "dor no peito e falta de ar", "")

	require.NotNil(t, outcome.Specialty)
	assert.Equal(t, entity.SpecialtyCardiology, outcome.Specialty.Name)
	assert.Equal(t, entity.ConfidenceHigh, outcome.Result.Confidence)
	assert.Equal(t, MatchExact, outcome.Method)
	assert.Equal(t, outcome.Result.Reasoning, outcome.Reasoning)
}

func TestTriageService_PreferredSpecialty(t *testing.T) {
	f := newFixture(t)
	seedSpecialties(f)
	triage := newTriage(f, classifier.NewKeywordClassifier(testutil.NewLogger()))

	preferred := triage.Triage(context.Background(), "dor no peito", "Otorrino")
	require.NotNil(t, preferred.Specialty)
	assert.Equal(t, entity.SpecialtyENT, preferred.Specialty.Name)
	assert.Equal(t, MatchAlias, preferred.Method)

	unknown := triage.Triage(context.Background(), "dor no peito", "Astrology")
	require.NotNil(t, unknown.Specialty)
	assert.Equal(t, entity.SpecialtyCardiology, unknown.Specialty.Name)
}

func TestTriageService_Degrades(t *testing.T) {
	f := newFixture(t)
	seedSpecialties(f)

	failed := newTriage(f, failingClassifier{}).Triage(context.Background(), "anything", "")
	assert.Equal(t, entity.ConfidenceLow, failed.Result.Confidence)
	require.NotNil(t, failed.Specialty)
	assert.Equal(t, entity.SpecialtyGeneralMedicine, failed.Specialty.Name)

	f.store.Err = errors.New("connection refused")
	offline := newTriage(f, classifier.NewKeywordClassifier(testutil.NewLogger())).Triage(context.Background(), "dor no peito", "")
	assert.Nil(t, offline.Specialty)
	assert.Equal(t, entity.SpecialtyCardiology, offline.Result.Specialty)
}

func TestTriageService_UnknownSpecialtyIsAnnotated(t *testing.T) {
	f := newFixture(t)
	f.store.AddSpecialty(entity.SpecialtyGeneralMedicine, "Clinical", true)
	triage := newTriage(f, classifier.NewKeywordClassifier(testutil.NewLogger()))

	outcome := triage.Triage(context.Background(), "dor no peito", "")

	require.NotNil(t, outcome.Specialty)
	assert.Equal(t, entity.SpecialtyGeneralMedicine, outcome.Specialty.Name)
	assert.Equal(t, MatchFallback, outcome.Method)
	assert.Contains(t, outcome.Reasoning, "was not found")
}
