// Package policy holds the authorization predicates for the whole API.
// Every predicate is a pure function of the resolved actor and the target
// record's ownership field; there is no hidden state. A nil actor means an
// anonymous request.
package policy

// Roles known to the system.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Actor is the identity resolved for an inbound request.
type Actor struct {
	ID   int64
	Name string
	Role string
}

// IsAdmin reports whether the actor is an authenticated admin.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// CanMutatePhoto reports whether the actor may edit or delete a photo
// owned by ownerID. Owners and admins may.
func CanMutatePhoto(a *Actor, ownerID int64) bool {
	if a == nil {
		return false
	}
	return a.ID == ownerID || a.IsAdmin()
}

// CanManageBookings reports whether the actor may list, transition or
// delete booking requests.
func CanManageBookings(a *Actor) bool {
	return a.IsAdmin()
}

// CanManageUsers reports whether the actor may list users or toggle roles.
func CanManageUsers(a *Actor) bool {
	return a.IsAdmin()
}

// CanDeleteUser reports whether the actor may delete the target account.
// Admins only, and never themselves.
func CanDeleteUser(a *Actor, targetID int64) bool {
	return a.IsAdmin() && a.ID != targetID
}
