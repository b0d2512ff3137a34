package policy

// Actor is the authenticated caller as asserted by the upstream gateway.
type Actor struct {
	ID   string
	Role Role
}

// Known reports whether both halves of the identity are present and usable.
func (a Actor) Known() bool { return len(a.ID) == 32 && a.Role.Valid() }

// RequireAdmin gates administrative actions such as catalogue changes.
func (a Actor) RequireAdmin() error {
	if !a.Known() {
		return ErrMissingIdentity
	}
	if a.Role != RoleAdmin {
		return ErrForbidden
	}
	return nil
}
