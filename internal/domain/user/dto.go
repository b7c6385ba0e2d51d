package user

import (
	"github.com/officetrack/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// USER DTOs
// ========================================

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     int    `json:"role"`
	TTFID    *string `json:"ttf_id,omitempty"`
	STTFID   *string `json:"sttf_id,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	switch Role(r.Role) {
	case RoleEmployee, RoleTTF, RoleSuperTTF:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be 1 (employee), 2 (ttf) or 3 (super ttf)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     int     `json:"role"`
	RoleName string  `json:"role_name"`
	IsActive bool    `json:"is_active"`
	IsAdmin  bool    `json:"is_admin"`
	TTFID    *string `json:"ttf_id,omitempty"`
	STTFID   *string `json:"sttf_id,omitempty"`
}

type ListUsersResponse struct {
	TotalCount int            `json:"total_count"`
	Users      []UserResponse `json:"users"`
}
