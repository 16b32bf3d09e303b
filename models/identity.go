package models

// Capability is a permission level. Levels are ordered: a higher level
// includes everything below it.
type Capability int

const (
	CapAnonymous Capability = iota
	CapAuthenticated
	CapAdministrator
)

func (c Capability) String() string {
	switch c {
	case CapAuthenticated:
		return "authenticated"
	case CapAdministrator:
		return "administrator"
	default:
		return "anonymous"
	}
}

// Identity is the resolved caller of a request. It is a value: handlers get
// a copy and cannot change what the middleware decided.
type Identity struct {
	UserID     uint
	Username   string
	Capability Capability
}

func Anonymous() Identity { return Identity{Capability: CapAnonymous} }

func NewIdentity(u *User, admin bool) Identity {
	c := CapAuthenticated
	if admin || u.IsAdmin {
		c = CapAdministrator
	}
	return Identity{UserID: u.ID, Username: u.Username, Capability: c}
}

func (i Identity) Has(c Capability) bool { return i.Capability >= c }

func (i Identity) IsAdmin() bool { return i.Has(CapAdministrator) }

func (i Identity) IsAnonymous() bool { return i.Capability == CapAnonymous }

// MayReturn reports whether id can close loan l: the borrower or an administrator.
func MayReturn(id Identity, l *Loan) bool {
	if id.IsAdmin() {
		return true
	}
	return id.Has(CapAuthenticated) && id.Username != "" && id.Username == l.Borrower
}
