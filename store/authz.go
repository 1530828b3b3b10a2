package store

import (
	"gorm.io/gorm"

	"github.com/featherpress/featherpress/models"
)

// Requester identifies who is asking for a mutating operation. Either field
// may be empty; both empty means an anonymous request.
type Requester struct {
	UserID   uint
	Username string
}

// ResolveRole looks the requester up by id first, then by username. Lookup
// failures are swallowed and yield the empty role, so a broken or missing
// account can never satisfy the admin check.
func ResolveRole(db *gorm.DB, req Requester) string {
	var u models.User
	if req.UserID != 0 {
		if err := db.First(&u, req.UserID).Error; err == nil {
			return u.Role
		}
	}
	if req.Username != "" {
		if err := db.Where("username = ?", req.Username).First(&u).Error; err == nil {
			return u.Role
		}
	}
	return ""
}

// CanModify is the single ownership predicate used by every delete path.
// Admins may mutate anything; everyone else needs a non-empty username that
// exactly matches the resource's stored owner field.
func CanModify(role, requesterUsername, owner string) bool {
	if role == models.RoleAdmin {
		return true
	}
	return requesterUsername != "" && requesterUsername == owner
}
