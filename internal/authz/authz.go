// Package authz holds the single access rule for task resources: a task is
// visible and mutable only to its owner or to an admin. Callers must confirm
// the resource exists before asking, so a missing task surfaces as not found
// rather than forbidden.
package authz

import "github.com/ado1d/profile-taks-manager/internal/models"

// CanAccessTask reports whether the requester may read, update, or delete a
// task owned by ownerID.
func CanAccessTask(requesterID int, requesterRole string, ownerID int) bool {
	return requesterRole == models.RoleAdmin || requesterID == ownerID
}
