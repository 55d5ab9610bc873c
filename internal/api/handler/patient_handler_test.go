package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/patients-api/internal/core/domain"
	"github.com/clinicore/patients-api/internal/core/ports"
)

type stubPatientService struct {
	createFn func(ctx context.Context, actor domain.Identity, in ports.PatientInput) (*domain.Patient, error)
	getFn    func(ctx context.Context, id string) (*domain.Patient, error)
	listFn   func(ctx context.Context, in ports.ListPatientsInput) ([]domain.Patient, error)
	updateFn func(ctx context.Context, actor domain.Identity, id string, in ports.PatientInput) (*domain.Patient, error)
	deleteFn func(ctx context.Context, actor domain.Identity, id string) error
}

func (s *stubPatientService) Create(ctx context.Context, actor domain.Identity, in ports.PatientInput) (*domain.Patient, error) {
	return s.createFn(ctx, actor, in)
}
func (s *stubPatientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	return s.getFn(ctx, id)
}
func (s *stubPatientService) List(ctx context.Context, in ports.ListPatientsInput) ([]domain.Patient, error) {
	return s.listFn(ctx, in)
}
func (s *stubPatientService) Update(ctx context.Context, actor domain.Identity, id string, in ports.PatientInput) (*domain.Patient, error) {
	return s.updateFn(ctx, actor, id, in)
}
func (s *stubPatientService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func withIdentity(c echo.Context, identity domain.Identity) {
	c.Set("identity", identity)
}

func TestPatientHandler_List(t *testing.T) {
	stub := &stubPatientService{
		listFn: func(ctx context.Context, in ports.ListPatientsInput) ([]domain.Patient, error) {
			if in.Limit != 10 || in.Offset != 5 {
				t.Fatalf("unexpected paging: %+v", in)
			}
			return []domain.Patient{{ID: "p1", FirstName: "Alice"}}, nil
		},
	}
	h := NewPatientHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/patients?limit=10&offset=5", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []domain.Patient `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "p1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestPatientHandler_Get_NotFound(t *testing.T) {
	stub := &stubPatientService{
		getFn: func(ctx context.Context, id string) (*domain.Patient, error) {
			return nil, domain.ErrPatientNotFound
		},
	}
	h := NewPatientHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/patients/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.Get(c); !errors.Is(err, domain.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestPatientHandler_Create(t *testing.T) {
	stub := &stubPatientService{
		createFn: func(ctx context.Context, actor domain.Identity, in ports.PatientInput) (*domain.Patient, error) {
			if actor.Role != domain.RoleAdmin {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if in.FirstName != "Alice" || in.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Patient{ID: "p1", FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}, nil
		},
	}
	h := NewPatientHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/patients",
		`{"firstName":"Alice","lastName":"Anderson","email":"alice@example.com","dob":"1985-06-12"}`)
	withIdentity(c, domain.Identity{UserID: "u1", Email: "admin@x.com", Role: domain.RoleAdmin})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestPatientHandler_Create_ValidationFailure(t *testing.T) {
	stub := &stubPatientService{
		createFn: func(ctx context.Context, actor domain.Identity, in ports.PatientInput) (*domain.Patient, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewPatientHandler(stub)

	// missing lastName and email
	c, _ := newTestContext(t, http.MethodPost, "/patients", `{"firstName":"Alice"}`)
	withIdentity(c, domain.Identity{Role: domain.RoleAdmin})

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestPatientHandler_Create_MissingIdentity(t *testing.T) {
	stub := &stubPatientService{
		createFn: func(ctx context.Context, actor domain.Identity, in ports.PatientInput) (*domain.Patient, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewPatientHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/patients",
		`{"firstName":"Alice","lastName":"Anderson","email":"alice@example.com"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestPatientHandler_Delete(t *testing.T) {
	stub := &stubPatientService{
		deleteFn: func(ctx context.Context, actor domain.Identity, id string) error {
			if id != "p1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	h := NewPatientHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/patients/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	withIdentity(c, domain.Identity{UserID: "u1", Email: "admin@x.com", Role: domain.RoleAdmin})

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp["success"] {
		t.Fatalf("expected success=true, got %+v", resp)
	}
}
