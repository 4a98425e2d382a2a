package directory

import (
	"strings"

	"github.com/frahmantamala/approval-workflow/internal"
)

// CreateUserDTO is the administrative payload for adding a member. Names
// need not be unique; only presence is validated here.
type CreateUserDTO struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	ManagerID *int64 `json:"manager_id,omitempty"`
}

func (dto CreateUserDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}
	if _, ok := ParseRole(dto.Role); !ok {
		return internal.NewValidationError("role must be one of ADMIN, MANAGER, EMPLOYEE", internal.ErrCodeInvalidRole)
	}
	return nil
}
