package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/delivery/http/middleware"
	"github.com/VictorAraujo38/akkadian-test/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var errMissingDate = errors.New("date is required")

// actorFromRequest reads the identity the auth middleware stored.
func actorFromRequest(r *http.Request) (usecase.Actor, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{UserID: userID, RoleID: roleID}, true
}

func uuidVar(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// parseInstant accepts RFC 3339 timestamps and bare dates (midnight UTC).
func parseInstant(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errMissingDate
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, value)
}

// optionalUUID parses an optional query parameter.
func optionalUUID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
