package ports

import (
	"context"

	"github.com/clinicore/patients-api/internal/core/domain"
)

// PatientRepository defines the interface for patient persistence.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) (*domain.Patient, error)
	FindByID(ctx context.Context, id string) (*domain.Patient, error)
	FindAll(ctx context.Context, limit, offset int64) ([]domain.Patient, error)
	Update(ctx context.Context, id string, patient *domain.Patient) (*domain.Patient, error)
	Delete(ctx context.Context, id string) error
}
