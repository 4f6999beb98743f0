package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/pkg/response"
)

// RequireRole admits requests whose token role is one of allowedRoleIDs.
// It must run after AuthMiddleware.
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	names := make([]string, 0, len(allowedRoleIDs))
	for _, id := range allowedRoleIDs {
		names = append(names, entity.RoleNameByID(id))
	}
	forbidden := "This action requires the " + strings.Join(names, " or ") + " role"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}
			if !slices.Contains(allowedRoleIDs, roleID) {
				response.Forbidden(w, forbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin)(next)
}

func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDDoctor)(next)
}

func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDPatient)(next)
}

// RequireAdminOrDoctor guards staff operations such as status changes.
func RequireAdminOrDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin, entity.RoleIDDoctor)(next)
}
