package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicore/patients-api/internal/core/domain"
	"github.com/clinicore/patients-api/internal/core/ports"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type patientService struct {
	repo  ports.PatientRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

// NewPatientService returns a PatientService implementation.
func NewPatientService(repo ports.PatientRepository, audit ports.AuditRecorder, log zerolog.Logger) ports.PatientService {
	return &patientService{repo: repo, audit: audit, log: log}
}

func (s *patientService) Create(ctx context.Context, actor domain.Identity, in ports.PatientInput) (*domain.Patient, error) {
	now := time.Now().UTC()
	patient := &domain.Patient{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		DOB:         in.DOB,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, patient)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create patient")
		return nil, err
	}

	s.log.Info().Str("patient_id", created.ID).Str("actor", actor.Email).Msg("patient created")
	s.record(actor, domain.AuditPatientCreate, created.ID)
	return created, nil
}

func (s *patientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns patients newest-first. Limit defaults to 50 and is capped
// at 100; negative offsets are treated as zero.
func (s *patientService) List(ctx context.Context, in ports.ListPatientsInput) ([]domain.Patient, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	return s.repo.FindAll(ctx, limit, offset)
}

func (s *patientService) Update(ctx context.Context, actor domain.Identity, id string, in ports.PatientInput) (*domain.Patient, error) {
	patient := &domain.Patient{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		DOB:         in.DOB,
		UpdatedAt:   time.Now().UTC(),
	}

	updated, err := s.repo.Update(ctx, id, patient)
	if err != nil {
		return nil, err
	}

	s.record(actor, domain.AuditPatientUpdate, id)
	return updated, nil
}

func (s *patientService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("patient_id", id).Str("actor", actor.Email).Msg("patient deleted")
	s.record(actor, domain.AuditPatientDelete, id)
	return nil
}

func (s *patientService) record(actor domain.Identity, action, resourceID string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		Actor:      actor.Email,
		Role:       actor.Role,
		Action:     action,
		Resource:   "patient",
		ResourceID: resourceID,
		Timestamp:  time.Now().UTC(),
	})
}
