package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailTaken = errors.New("email already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrMissingFields = errors.New("missing required fields")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// Token verification failures. The auth middleware treats all three
// identically (403) but they stay distinguishable for logging.
var ErrTokenSignatureInvalid = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenMalformed = errors.New("token malformed")

// User is a stored account. The password hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the request-scoped principal recovered from a verified token.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// NormalizeRole coerces any value outside the closed role set to RoleUser.
// Signup deliberately stores arbitrary role strings this way instead of
// rejecting them.
func NormalizeRole(role string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}
