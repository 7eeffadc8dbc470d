package handler

import (
    "database/sql"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/model"
    "github.com/careslot/hospital-booking/internal/repository"
)

// DoctorHandler serves the doctor-facing surface.  Every method resolves
// the caller's doctor profile from the authenticated user id first; a
// DOCTOR-role token without a linked profile answers 404.
type DoctorHandler struct {
    Users        *repository.UserRepo
    Doctors      *repository.DoctorRepo
    Appointments *repository.AppointmentRepo
    Records      *repository.RecordRepo
}

// NewDoctorHandler constructs a DoctorHandler.
func NewDoctorHandler(users *repository.UserRepo, doctors *repository.DoctorRepo, appts *repository.AppointmentRepo, records *repository.RecordRepo) *DoctorHandler {
    if users == nil || doctors == nil || appts == nil || records == nil {
        panic("nil repository passed to NewDoctorHandler")
    }
    return &DoctorHandler{Users: users, Doctors: doctors, Appointments: appts, Records: records}
}

// profile resolves the doctor row owned by the current session.
func (h *DoctorHandler) profile(c echo.Context) (*model.Doctor, error) {
    uid, err := getUserID(c)
    if err != nil {
        return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
    }
    doc, err := h.Doctors.GetByUserID(c.Request().Context(), uid)
    if err != nil {
        if err == repository.ErrDoctorNotFound {
            return nil, echo.NewHTTPError(http.StatusNotFound, "no doctor profile for this account")
        }
        return nil, echo.NewHTTPError(http.StatusInternalServerError, "database error")
    }
    return doc, nil
}

// ListAppointments handles GET /v1/doctor/appointments with an optional
// ?status= filter, scoped to the doctor's own schedule.
func (h *DoctorHandler) ListAppointments(c echo.Context) error {
    doc, err := h.profile(c)
    if err != nil {
        return err
    }
    status := c.QueryParam("status")
    if status != "" && !model.ValidStatus(status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status filter"})
    }
    appts, err := h.Appointments.ListByDoctor(c.Request().Context(), doc.ID, status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"appointments": appts})
}

// ListRecords handles GET /v1/doctor/records: every record the doctor has
// authored, newest first.
func (h *DoctorHandler) ListRecords(c echo.Context) error {
    doc, err := h.profile(c)
    if err != nil {
        return err
    }
    recs, err := h.Records.ListByDoctor(c.Request().Context(), doc.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"records": recs})
}

// PatientRecords handles GET /v1/doctor/patients/:id/records, the full
// history for one patient.
func (h *DoctorHandler) PatientRecords(c echo.Context) error {
    if _, err := h.profile(c); err != nil {
        return err
    }
    patientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || patientID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid patient id"})
    }
    ctx := c.Request().Context()
    if _, err := h.Users.GetPatientByID(ctx, patientID); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "patient not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    recs, err := h.Records.ListByPatient(ctx, patientID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"records": recs})
}

type doctorRecordReq struct {
    Diagnosis    string `json:"diagnosis"`
    Prescription string `json:"prescription"`
    VisitDate    string `json:"visit_date"` // "YYYY-MM-DD"
    Notes        string `json:"notes"`
}

// AddRecord handles POST /v1/doctor/patients/:id/records.  The record is
// always attributed to the doctor behind the session; a doctor cannot
// write records under a colleague's name.
func (h *DoctorHandler) AddRecord(c echo.Context) error {
    doc, err := h.profile(c)
    if err != nil {
        return err
    }
    patientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || patientID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid patient id"})
    }
    var req doctorRecordReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if strings.TrimSpace(req.Diagnosis) == "" || req.VisitDate == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "diagnosis and visit_date are required"})
    }
    visit, err := parseDate(req.VisitDate)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid visit_date"})
    }

    ctx := c.Request().Context()
    if _, err := h.Users.GetPatientByID(ctx, patientID); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "patient not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    rec := &model.PatientRecord{
        PatientID:    patientID,
        DoctorID:     doc.ID,
        Diagnosis:    strings.TrimSpace(req.Diagnosis),
        Prescription: req.Prescription,
        VisitDate:    visit,
        Notes:        req.Notes,
    }
    if err := h.Records.Create(ctx, rec); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create record"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": rec.ID})
}

// Dashboard handles GET /v1/doctor/dashboard: the doctor's capacity plus
// appointment and record counters.
func (h *DoctorHandler) Dashboard(c echo.Context) error {
    doc, err := h.profile(c)
    if err != nil {
        return err
    }
    ctx := c.Request().Context()
    total, err := h.Appointments.CountByDoctor(ctx, doc.ID, "")
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    pending, err := h.Appointments.CountByDoctor(ctx, doc.ID, model.StatusPending)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    approved, err := h.Appointments.CountByDoctor(ctx, doc.ID, model.StatusApproved)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    records, err := h.Records.CountByDoctor(ctx, doc.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "doctor_id":             doc.ID,
        "name":                  doc.Name,
        "specialization":        doc.Specialization,
        "slots_per_day":         doc.SlotsPerDay,
        "total_appointments":    total,
        "pending_appointments":  pending,
        "approved_appointments": approved,
        "records_written":       records,
    })
}
