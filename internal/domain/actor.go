package domain

import "github.com/google/uuid"

// Actor is the identity of the currently authenticated caller, as yielded by
// the token middleware. Citizen flows without a login carry no actor at all.
type Actor struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
}

func (a *Actor) IsStaff() bool {
	return a != nil && a.Role == RoleStaff
}

func (a *Actor) Name(fallback string) string {
	if a != nil && a.DisplayName != "" {
		return a.DisplayName
	}
	return fallback
}
