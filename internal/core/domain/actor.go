package domain

import "slices"

// Actor is the already-authenticated identity behind a request.
// The ledger only uses it for attribution.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// WritePolicy decides whether an actor may record new rates.
type WritePolicy func(actor Actor) bool

// AllowAllWriters lets every authenticated actor record rates.
func AllowAllWriters(actor Actor) bool {
	return actor.ID != ""
}

// RoleWritePolicy allows only actors whose role is one of roles.
// An empty role list falls back to AllowAllWriters.
func RoleWritePolicy(roles ...string) WritePolicy {
	if len(roles) == 0 {
		return AllowAllWriters
	}
	allowed := slices.Clone(roles)
	return func(actor Actor) bool {
		return actor.ID != "" && slices.Contains(allowed, actor.Role)
	}
}
