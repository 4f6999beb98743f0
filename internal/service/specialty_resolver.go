package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrDefaultSpecialtyMissing means General Medicine is not an active
// specialty, so no fallback exists.
var ErrDefaultSpecialtyMissing = errors.New("default specialty is not configured")

type MatchMethod string

const (
	MatchExact    MatchMethod = "exact"
	MatchAlias    MatchMethod = "alias"
	MatchFallback MatchMethod = "fallback"
)

// SpecialtyResolution is the outcome of resolving a classifier's name.
// Specialty is nil only when the fallback itself is missing.
type SpecialtyResolution struct {
	Specialty *entity.Specialty
	Method    MatchMethod
	Requested string
}

// Annotate appends the fallback note to the triage reasoning.
func (r *SpecialtyResolution) Annotate(reasoning string) string {
	if r == nil || r.Method != MatchFallback {
		return reasoning
	}
	note := fmt.Sprintf("Note: specialty %q was not found, routed to %s.", r.Requested, entity.SpecialtyGeneralMedicine)
	if r.Specialty == nil {
		note = fmt.Sprintf("Note: specialty %q was not found and no default specialty is configured.", r.Requested)
	}
	if strings.TrimSpace(reasoning) == "" {
		return note
	}
	return reasoning + " " + note
}

type SpecialtyResolver interface {
	Resolve(ctx context.Context, name string) (*SpecialtyResolution, error)
	ResolveOrDefault(ctx context.Context, name string) (*entity.Specialty, error)
}

type specialtyResolver struct {
	db            *gorm.DB
	log           *logrus.Logger
	specialtyRepo repository.SpecialtyRepository
}

func NewSpecialtyResolver(db *gorm.DB, log *logrus.Logger, specialtyRepo repository.SpecialtyRepository) SpecialtyResolver {
	return &specialtyResolver{
		db:            db,
		log:           log,
		specialtyRepo: specialtyRepo,
	}
}

// Resolve tries an exact active-name match, then the alias table, then
// General Medicine.
func (s *specialtyResolver) Resolve(ctx context.Context, name string) (*SpecialtyResolution, error) {
	db := s.db.WithContext(ctx)

	if name != "" {
		specialty, err := s.specialtyRepo.FindActiveByName(db, name)
		if err != nil {
			s.log.Warnf("Failed to find specialty %q: %+v", name, err)
			return nil, err
		}
		if specialty != nil {
			return &SpecialtyResolution{Specialty: specialty, Method: MatchExact, Requested: name}, nil
		}

		lowered := strings.ToLower(name)
		for _, entry := range specialtyAliases {
			if !matchesAlias(lowered, entry) {
				continue
			}
			specialty, err := s.specialtyRepo.FindActiveByName(db, entry.canonical)
			if err != nil {
				s.log.Warnf("Failed to find specialty %q: %+v", entry.canonical, err)
				return nil, err
			}
			if specialty != nil {
				return &SpecialtyResolution{Specialty: specialty, Method: MatchAlias, Requested: name}, nil
			}
		}
	}

	fallback, err := s.specialtyRepo.FindActiveByName(db, entity.SpecialtyGeneralMedicine)
	if err != nil {
		s.log.Warnf("Failed to find default specialty: %+v", err)
		return nil, err
	}
	if fallback == nil {
		s.log.Errorf("Default specialty %q is missing; %q left unresolved", entity.SpecialtyGeneralMedicine, name)
	} else {
		s.log.Infof("Specialty %q not found, falling back to %s", name, entity.SpecialtyGeneralMedicine)
	}
	return &SpecialtyResolution{Specialty: fallback, Method: MatchFallback, Requested: name}, nil
}

func (s *specialtyResolver) ResolveOrDefault(ctx context.Context, name string) (*entity.Specialty, error) {
	resolution, err := s.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if resolution.Specialty == nil {
		return nil, ErrDefaultSpecialtyMissing
	}
	return resolution.Specialty, nil
}

func matchesAlias(lowered string, entry specialtyAlias) bool {
	if strings.Contains(lowered, strings.ToLower(entry.canonical)) {
		return true
	}
	for _, alias := range entry.aliases {
		if strings.Contains(lowered, alias) {
			return true
		}
	}
	return false
}
