// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents one account: identity (email), profile data (name,
// location) and the role that gates the admin console.
type User struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Location  Location
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last" with missing parts trimmed away.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ProfileComplete reports whether the post-registration profile step has
// been done. Ordering requires a complete profile because every order
// snapshots name and location.
func (u *User) ProfileComplete() bool {
	return u.FirstName != "" && u.LastName != "" && u.Location.IsValid()
}
