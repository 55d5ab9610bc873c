package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/patients-api/internal/core/domain"
	"github.com/clinicore/patients-api/internal/core/ports"
)

// PatientHandler handles HTTP requests for patient CRUD.
type PatientHandler struct {
	service ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// List handles GET /patients.
//
// @Summary      List patients, newest first
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (max 100, default 50)"
// @Param        offset  query     int  false  "Rows to skip"
// @Success      200     {object}  patientListResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseInt(c.QueryParam("offset"), 10, 64)

	patients, err := h.service.List(c.Request().Context(), ports.ListPatientsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, patientListResponse{Data: patients})
}

// Get handles GET /patients/:id.
//
// @Summary      Get a patient by id
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient id"
// @Success      200  {object}  domain.Patient
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /patients/{id} [get]
func (h *PatientHandler) Get(c echo.Context) error {
	patient, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// Create handles POST /patients. Admin only.
//
// @Summary      Create a patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      patientRequest  true  "Patient details"
// @Success      201   {object}  domain.Patient
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /patients [post]
func (h *PatientHandler) Create(c echo.Context) error {
	req, identity, err := h.bindPatient(c)
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), identity, toPatientInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /patients/:id. Admin only.
//
// @Summary      Update a patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Patient id"
// @Param        body  body      patientRequest  true  "Patient details"
// @Success      200   {object}  domain.Patient
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /patients/{id} [put]
func (h *PatientHandler) Update(c echo.Context) error {
	req, identity, err := h.bindPatient(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), toPatientInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /patients/:id. Admin only.
//
// @Summary      Delete a patient
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient id"
// @Success      200  {object}  deletePatientResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /patients/{id} [delete]
func (h *PatientHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deletePatientResponse{Success: true})
}

func (h *PatientHandler) bindPatient(c echo.Context) (patientRequest, domain.Identity, error) {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return req, domain.Identity{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, domain.Identity{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	identity, err := ctxIdentity(c)
	if err != nil {
		return req, domain.Identity{}, err
	}
	return req, identity, nil
}

func toPatientInput(req patientRequest) ports.PatientInput {
	return ports.PatientInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		DOB:         req.DOB,
	}
}
