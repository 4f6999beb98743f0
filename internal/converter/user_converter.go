package converter

import (
	"github.com/VictorAraujo38/akkadian-test/internal/delivery/dto"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The role name
// comes from the preloaded Role, else from the role id.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	role := user.Role.RoleName
	if role == "" {
		role = entity.RoleNameByID(user.RoleID)
	}

	return &dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          role,
		Phone:         user.Phone,
		LicenseNumber: user.LicenseNumber,
		IsActive:      user.Active(),
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
