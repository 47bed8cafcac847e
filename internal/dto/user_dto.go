package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is the public projection of a user. It deliberately has no
// password field.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
