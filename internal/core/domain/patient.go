package domain

import (
	"errors"
	"time"
)

var ErrPatientNotFound = errors.New("patient not found")
var ErrInvalidPatientID = errors.New("invalid patient id")

// Patient is the core record managed by the API.
type Patient struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	DOB         string    `json:"dob,omitempty"` // ISO date, e.g. "1990-01-01"
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
