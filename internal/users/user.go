package users

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2beens/liftboard/internal/apperr"
	"github.com/2beens/liftboard/internal/lifts"
	"github.com/2beens/liftboard/internal/validation"
)

const (
	MaxUsernameLength = 64
	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials is the sign up and login payload.
type Credentials struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

func (c Credentials) normalized() Credentials {
	c.Username = strings.TrimSpace(c.Username)
	return c
}

// validate checks the struct tags, then the password length in bytes, since
// the validator counts runes and bcrypt refuses anything over 72 bytes.
func (c Credentials) validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if len(c.Password) > MaxPasswordBytes {
		return apperr.Validation(fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
	}
	return nil
}

type UserWithLifts struct {
	User
	Lifts []lifts.Lift `json:"lifts"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ProfileResponse struct {
	Username string `json:"username"`
	*lifts.Profile
}
