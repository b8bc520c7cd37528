package services

import "github.com/taskboard/taskboard-api/internal/models"

// Identity is the resolved caller identity attached to each authenticated
// request. It reflects the token's claims at issuance time.
type Identity struct {
	UserID uint64
	Email  string
	Role   models.Role
}

// IsAdmin reports whether the caller holds the privileged role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}
