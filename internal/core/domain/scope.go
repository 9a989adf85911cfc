package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ResourceKind is the closed set of tenant-scoped tables.
type ResourceKind int

const (
	ResourceBookings ResourceKind = iota
	ResourcePayments
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceBookings:
		return "bookings"
	case ResourcePayments:
		return "payments"
	}
	return fmt.Sprintf("ResourceKind(%d)", int(k))
}

// ScopeField names which owner column of a resource restricts a role.
type ScopeField int

const (
	ScopeClient ScopeField = iota
	ScopeProvider
)

// Scope restricts a query to the rows a principal may see. All is set
// for admins; otherwise Field equal to OwnerID must hold.
type Scope struct {
	All     bool
	Field   ScopeField
	OwnerID uuid.UUID
}

// Allows reports whether a booking falls inside the scope.
func (s Scope) Allows(b *Booking) bool {
	if s.All {
		return true
	}
	switch s.Field {
	case ScopeClient:
		return b.UserID == s.OwnerID
	case ScopeProvider:
		return b.DietitianID == s.OwnerID
	}
	return false
}

// ScopeFor maps a principal to the scope it holds over a resource kind.
// Bookings and payments are both owned through the booking's client and
// provider columns.
func ScopeFor(kind ResourceKind, p Principal) (Scope, error) {
	switch kind {
	case ResourceBookings, ResourcePayments:
	default:
		return Scope{}, fmt.Errorf("scope for %s: %w", kind, ErrForbidden)
	}

	switch {
	case p.Role == RoleAdmin:
		return Scope{All: true}, nil
	case p.Role.IsProvider():
		return Scope{Field: ScopeProvider, OwnerID: p.UserID}, nil
	case p.Role == RoleUser:
		return Scope{Field: ScopeClient, OwnerID: p.UserID}, nil
	}
	return Scope{}, fmt.Errorf("role %q: %w", p.Role, ErrForbidden)
}
