// Package ownership decides whether an edit mutates a theme in place or
// forks a private copy for the editing identity.
package ownership

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Railly/tinte-sub002/internal/models"
)

// OwnerMine marks a theme owned by the local, anonymous editor.
const OwnerMine = "mine"

// UnsavedMarker is appended to the names of forks that were never saved.
const UnsavedMarker = " (unsaved)"

// ForkName is the name given to a fresh fork.
const ForkName = "Custom" + UnsavedMarker

// Identity is the editor acting on a theme. An empty ID is the anonymous
// local editor.
type Identity struct {
	ID string `json:"id"`
}

// Anonymous reports whether the identity has no account.
func (i Identity) Anonymous() bool {
	return strings.TrimSpace(i.ID) == ""
}

// OwnerID is the value stamped into Theme.OwnerID for this identity.
func (i Identity) OwnerID() string {
	if i.Anonymous() {
		return OwnerMine
	}
	return i.ID
}

// Owns reports whether identity may edit theme in place.
func Owns(theme models.Theme, identity Identity) bool {
	switch {
	case theme.OwnerID == "":
		return false
	case theme.OwnerID == OwnerMine:
		return true
	default:
		return !identity.Anonymous() && theme.OwnerID == identity.ID
	}
}

// IDSource produces the id of a new fork.
type IDSource func() string

// ResolveEditTarget returns the theme an edit by identity should apply to and
// whether it is a fork. Forks get a random UUID. theme itself is never
// modified.
func ResolveEditTarget(theme models.Theme, identity Identity) (models.Theme, bool) {
	return ResolveEditTargetWith(theme, identity, uuid.NewString)
}

// ResolveEditTargetWith is ResolveEditTarget with fork ids drawn from newID.
func ResolveEditTargetWith(theme models.Theme, identity Identity, newID IDSource) (models.Theme, bool) {
	target := theme.Clone()

	if Owns(theme, identity) {
		target.Name = strings.TrimSuffix(target.Name, UnsavedMarker)
		return target, false
	}

	target.ID = newID()
	target.Name = ForkName
	target.OwnerID = identity.OwnerID()
	target.ForkedFrom = theme.ID
	target.IsPublic = false
	return target, true
}
