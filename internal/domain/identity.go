package domain

type Role string

const (
	RoleUser    Role = "USER"
	RoleArbiter Role = "ARBITER"
)

// Actor is the authenticated caller, resolved once per request by the
// identity middleware and passed into every operation. All eligibility
// checks go through it instead of ad-hoc role lookups.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsArbiter() bool {
	return a.Role == RoleArbiter
}

// ProfileProvider resolves display identities from the profile service.
type ProfileProvider interface {
	GetDisplayName(userID string) (string, error)
}
