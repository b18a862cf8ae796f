package middleware

import (
	"lms/models"

	"gorm.io/gorm"
)

// Action names the operation a user is attempting on a course or lesson.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Decision is the outcome of a policy check.
type Decision int

const (
	Deny Decision = iota
	Allow
	// FilterOwn allows the operation but restricts visibility to rows the
	// user owns. Only meaningful for list reads.
	FilterOwn
)

// Resolve applies the course/lesson access rules for a single object.
// Moderators may read and edit everything but never create or delete.
// Regular users have full control over rows they own. Ownerless rows are
// readable by anyone and writable by nobody below moderator.
func Resolve(user *models.User, action Action, ownerID *uint) Decision {
	if user.IsModerator() {
		if action == ActionCreate || action == ActionDelete {
			return Deny
		}
		return Allow
	}

	if action == ActionCreate {
		return Allow
	}

	if ownerID == nil {
		if action == ActionRead {
			return Allow
		}
		return Deny
	}

	if *ownerID == user.ID {
		return Allow
	}
	return Deny
}

// ListDecision resolves visibility for list endpoints: moderators see every
// row, regular users only their own.
func ListDecision(user *models.User) Decision {
	if user.IsModerator() {
		return Allow
	}
	return FilterOwn
}

// Scope narrows a query according to ListDecision.
func Scope(db *gorm.DB, user *models.User) *gorm.DB {
	if ListDecision(user) == Allow {
		return db
	}
	return db.Where("owner_id = ?", user.ID)
}
