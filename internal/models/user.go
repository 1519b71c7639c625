package models

import "time"

// Role orders user permissions. Admin satisfies every requirement a user does.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var roleLevels = map[Role]int{
	RoleUser:  1,
	RoleAdmin: 2,
}

// Valid reports whether the role is one of the known constants.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AtLeast reports whether the role satisfies the given minimum role.
// Unknown roles satisfy nothing.
func (r Role) AtLeast(min Role) bool {
	lvl, ok := roleLevels[r]
	if !ok {
		return false
	}
	return lvl >= roleLevels[min]
}

// User is an account that can sign in. The password hash never serializes.
type User struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Type      Role      `db:"type" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
