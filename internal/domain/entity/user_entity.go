package entity

import (
	"time"
)

// User is the aggregate root for the registration domain.
// JSON names follow the users table columns.
//
// Password holds the raw value accepted at registration; hashing happens
// outside this service.
type User struct {
	ID        string    `json:"id,omitempty"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
