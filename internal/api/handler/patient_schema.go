package handler

import "github.com/clinicore/patients-api/internal/core/domain"

type patientRequest struct {
	FirstName   string `json:"firstName"   validate:"required"`
	LastName    string `json:"lastName"    validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty"`
	DOB         string `json:"dob"         validate:"omitempty,datetime=2006-01-02"`
}

type patientListResponse struct {
	Data []domain.Patient `json:"data"`
}

type deletePatientResponse struct {
	Success bool `json:"success"`
}
