package domain

import "time"

// User represents a registered user.
type User struct {
	ID             string
	Email          string
	HashedPassword string
	CreatedAt      time.Time
}
