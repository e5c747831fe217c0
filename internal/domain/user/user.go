package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	Name             *string    `json:"name"`
	PasswordHash     string     `json:"-"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

// EmailConfirmed reports whether the account may use authoring flows.
func (u *User) EmailConfirmed() bool {
	return u.EmailConfirmedAt != nil
}

type Repository interface {
	Save(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	ConfirmEmail(ctx context.Context, id uuid.UUID, at time.Time) error
}
