package domain

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleWorker   UserRole = "WORKER"
	RoleCustomer UserRole = "CUSTOMER"
)

// Staff reports whether the role may touch other users' orders and set
// staff-only statuses.
func (r UserRole) Staff() bool {
	return r == RoleAdmin || r == RoleWorker
}

type User struct {
	ID        uint64
	Phone     string
	Name      string
	Password  string
	Role      UserRole
	CreatedAt time.Time
}

// Actor identifies the caller of a mutating operation.
type Actor struct {
	UserID uint64
	Role   UserRole
}
