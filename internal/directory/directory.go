// Package directory holds the organization's members and their reporting
// relationships.
package directory

import (
	"time"

	"github.com/frahmantamala/approval-workflow/internal"
	userDatamodel "github.com/frahmantamala/approval-workflow/internal/core/datamodel/user"
)

// Role is the closed set of directory roles. Step tokens in the approval
// sequence are a separate, open enumeration; only MANAGER appears in both.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

// User is immutable after creation; there is no edit or delete operation.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	ManagerID *int64    `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsDirectManagerOf reports the exact direct-report relation; the hierarchy
// is never walked transitively.
func (u *User) IsDirectManagerOf(other *User) bool {
	return other.ManagerID != nil && *other.ManagerID == u.ID
}

func (u *User) ToActingUser() *internal.ActingUser {
	return &internal.ActingUser{
		ID:        u.ID,
		Name:      u.Name,
		Role:      string(u.Role),
		ManagerID: u.ManagerID,
	}
}

func FromActingUser(a *internal.ActingUser) *User {
	return &User{
		ID:        a.ID,
		Name:      a.Name,
		Role:      Role(a.Role),
		ManagerID: a.ManagerID,
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:        u.ID,
		Name:      u.Name,
		Role:      string(u.Role),
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Role:      Role(u.Role),
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
