package models

import "time"

// User roles. The identity service owns user records; this API reads them
// for reference expansion and trusts the role claim in the JWT.
const (
	RoleMentor = "mentor"
	RoleMentee = "mentee"
)

// User is the public projection of an identity-service user
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Principal is the authenticated caller extracted from the bearer token
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// IsMentor reports whether the principal carries the mentor role
func (p *Principal) IsMentor() bool {
	return p.Role == RoleMentor
}

// IsMentee reports whether the principal carries the mentee role
func (p *Principal) IsMentee() bool {
	return p.Role == RoleMentee
}
