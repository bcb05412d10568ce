package models

import "time"

// User represents a user in the system.
type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"` // bcrypt hash
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}
