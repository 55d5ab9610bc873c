package ports

import (
	"context"

	"github.com/clinicore/patients-api/internal/core/domain"
)

// PatientInput carries the writable patient fields.
type PatientInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	DOB         string
}

// ListPatientsInput bounds a paginated listing.
type ListPatientsInput struct {
	Limit  int64
	Offset int64
}

type PatientService interface {
	Create(ctx context.Context, actor domain.Identity, in PatientInput) (*domain.Patient, error)
	Get(ctx context.Context, id string) (*domain.Patient, error)
	List(ctx context.Context, in ListPatientsInput) ([]domain.Patient, error)
	Update(ctx context.Context, actor domain.Identity, id string, in PatientInput) (*domain.Patient, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}
