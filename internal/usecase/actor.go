package usecase

import (
	"errors"
	"strings"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Actor is the authenticated caller as supplied by the identity provider.
type Actor struct {
	UserID uuid.UUID
	RoleID int
}

func (a Actor) IsAdmin() bool {
	return a.RoleID == entity.RoleIDAdmin
}

// canView lets admins read any appointment and everyone else only their own.
func (a Actor) canView(appointment *entity.Appointment) bool {
	return a.IsAdmin() || appointment.IsParticipant(a.UserID)
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
