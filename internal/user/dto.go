package user

import (
	errors "github.com/joshwmy/record-management/internal"
	"github.com/joshwmy/record-management/internal/authz"
)

type ChangeRoleDTO struct {
	Role string `json:"role"`
}

func (d ChangeRoleDTO) Validate() error {
	if _, err := authz.ParseRole(d.Role); err != nil {
		return errors.NewValidationFieldError("role", "role is not recognized", errors.ErrCodeInvalidRole)
	}
	return nil
}
