package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/config"
    "github.com/careslot/hospital-booking/internal/model"
    "github.com/careslot/hospital-booking/internal/repository"
)

// PatientHandler groups the repositories behind the patient-facing surface:
// booking, appointment history, medical records and the advisory slot check.
// JWT validation and the PATIENT role guard run in middleware before any of
// these methods; each one still resolves the acting identity from the
// context so data is always scoped to the session's own patient id.
type PatientHandler struct {
    Cfg          config.Config
    Users        *repository.UserRepo
    Doctors      *repository.DoctorRepo
    Appointments *repository.AppointmentRepo
    Records      *repository.RecordRepo
}

// NewPatientHandler constructs a PatientHandler.  All dependencies must be
// non-nil.
func NewPatientHandler(cfg config.Config, users *repository.UserRepo, doctors *repository.DoctorRepo, appts *repository.AppointmentRepo, records *repository.RecordRepo) *PatientHandler {
    if users == nil || doctors == nil || appts == nil || records == nil {
        panic("nil repository passed to NewPatientHandler")
    }
    return &PatientHandler{Cfg: cfg, Users: users, Doctors: doctors, Appointments: appts, Records: records}
}

type bookReq struct {
    DoctorID uint64 `json:"doctor_id"`
    Date     string `json:"date"` // "YYYY-MM-DD"
    Time     string `json:"time"` // "HH:MM" 24h
    Reason   string `json:"reason"`
}

// Book handles POST /v1/patient/appointments.  It validates the request and
// hands the capacity-checked insert to AppointmentRepo.Book, which locks the
// doctor row and counts the day's appointments under that lock before
// inserting.
func (h *PatientHandler) Book(c echo.Context) error {
    patientID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req bookReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.DoctorID == 0 || req.Date == "" || req.Time == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "doctor_id, date and time are required"})
    }
    date, err := parseDate(req.Date)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format"})
    }
    if !validClockTime(req.Time) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time format"})
    }
    if !h.Cfg.AllowPastBooking && date.Before(today()) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot book appointments in the past"})
    }

    appt := &model.Appointment{
        PatientID: patientID,
        DoctorID:  req.DoctorID,
        Date:      date,
        Time:      req.Time,
        Reason:    req.Reason,
    }
    switch err := h.Appointments.Book(c.Request().Context(), h.Doctors, appt, h.Cfg.CountPending); err {
    case nil:
    case repository.ErrDoctorNotFound:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
    case repository.ErrNoSlots:
        return c.JSON(http.StatusConflict, echo.Map{"error": "no slots available for this doctor on the selected date"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create appointment"})
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "id":     appt.ID,
        "status": appt.Status,
        "date":   appt.Date.Format("2006-01-02"),
        "time":   appt.Time,
    })
}

// ListAppointments handles GET /v1/patient/appointments.  The optional
// ?status= query narrows to one lifecycle state.
func (h *PatientHandler) ListAppointments(c echo.Context) error {
    patientID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    status := c.QueryParam("status")
    if status != "" && !model.ValidStatus(status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status filter"})
    }
    appts, err := h.Appointments.ListByPatient(c.Request().Context(), patientID, status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"appointments": appts})
}

// ListRecords handles GET /v1/patient/records.  Scoping is by the session's
// own patient id; there is no way to name another patient on this route.
func (h *PatientHandler) ListRecords(c echo.Context) error {
    patientID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    recs, err := h.Records.ListByPatient(c.Request().Context(), patientID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"records": recs})
}

// CheckSlots handles GET /v1/patient/check-slots/:doctor_id/:date.  The
// numbers are advisory, for form feedback; the count is taken without the
// booking lock and may be stale by the time the booking is submitted.
func (h *PatientHandler) CheckSlots(c echo.Context) error {
    doctorID, err := strconv.ParseUint(c.Param("doctor_id"), 10, 64)
    if err != nil || doctorID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor id"})
    }
    date, err := parseDate(c.Param("date"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format"})
    }

    ctx := c.Request().Context()
    doc, err := h.Doctors.GetByID(ctx, doctorID)
    if err != nil {
        if err == repository.ErrDoctorNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    booked, err := h.Appointments.CountForDate(ctx, doctorID, date, h.Cfg.CountPending)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    available := int64(doc.SlotsPerDay) - booked
    if available < 0 {
        available = 0
    }
    return c.JSON(http.StatusOK, echo.Map{
        "available_slots": available,
        "total_slots":     doc.SlotsPerDay,
        "booked_slots":    booked,
    })
}

// Dashboard handles GET /v1/patient/dashboard: the five most recent
// appointments plus total/pending/approved counts.
func (h *PatientHandler) Dashboard(c echo.Context) error {
    patientID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx := c.Request().Context()
    recent, err := h.Appointments.RecentByPatient(ctx, patientID, 5)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    total, err := h.Appointments.CountByPatient(ctx, patientID, "")
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    pending, err := h.Appointments.CountByPatient(ctx, patientID, model.StatusPending)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    approved, err := h.Appointments.CountByPatient(ctx, patientID, model.StatusApproved)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "recent_appointments":   recent,
        "total_appointments":    total,
        "pending_appointments":  pending,
        "approved_appointments": approved,
    })
}

type profileReq struct {
    Email       string `json:"email"`
    DateOfBirth string `json:"date_of_birth"` // "YYYY-MM-DD"
}

// UpdateProfile handles PUT /v1/patient/profile.  Patients can change their
// email and date of birth; an email owned by another account answers 409.
func (h *PatientHandler) UpdateProfile(c echo.Context) error {
    patientID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req profileReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Email == "" || req.DateOfBirth == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and date_of_birth are required"})
    }
    dob, err := parseDate(req.DateOfBirth)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_of_birth"})
    }
    dobVal := dob
    if err := h.Users.UpdateProfile(c.Request().Context(), patientID, req.Email, &dobVal); err != nil {
        if err == repository.ErrEmailExists {
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered by another user"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// age helper kept close to the profile surface; dashboards surface a
// patient's age when a date of birth is on file.
func ageOrNil(u *model.User) any {
    if a := u.Age(time.Now().UTC()); a >= 0 {
        return a
    }
    return nil
}
