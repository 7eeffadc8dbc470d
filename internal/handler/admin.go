package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/config"
    "github.com/careslot/hospital-booking/internal/model"
    "github.com/careslot/hospital-booking/internal/queue"
    "github.com/careslot/hospital-booking/internal/repository"
    queue_publisher "github.com/careslot/hospital-booking/internal/service"
)

// AdminHandler groups the repositories behind the staff surface: the
// approval workflow, doctor management, patient oversight and record entry.
// Routing already enforces the ADMIN role before any method here runs.
type AdminHandler struct {
    Cfg          config.Config
    Users        *repository.UserRepo
    Doctors      *repository.DoctorRepo
    Appointments *repository.AppointmentRepo
    Records      *repository.RecordRepo
}

// NewAdminHandler constructs an AdminHandler.  All dependencies must be
// non-nil.
func NewAdminHandler(cfg config.Config, users *repository.UserRepo, doctors *repository.DoctorRepo, appts *repository.AppointmentRepo, records *repository.RecordRepo) *AdminHandler {
    if users == nil || doctors == nil || appts == nil || records == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{Cfg: cfg, Users: users, Doctors: doctors, Appointments: appts, Records: records}
}

// Approve handles POST /v1/admin/appointments/:id/approve.
func (h *AdminHandler) Approve(c echo.Context) error {
    return h.decide(c, model.StatusApproved)
}

// Reject handles POST /v1/admin/appointments/:id/reject.
func (h *AdminHandler) Reject(c echo.Context) error {
    return h.decide(c, model.StatusRejected)
}

// decide applies a terminal status to a pending appointment.  The
// repository locks the row and refuses anything already decided, so two
// admins racing on the same appointment resolve to exactly one decision.
// A decided appointment emits an appointment.decided event; publishing is
// best effort and never fails the request.
func (h *AdminHandler) decide(c echo.Context, to string) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
    }
    ctx := c.Request().Context()
    appt, err := h.Appointments.Decide(ctx, id, to)
    if err != nil {
        switch err {
        case repository.ErrAppointmentNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
        case repository.ErrAlreadyDecided:
            return c.JSON(http.StatusConflict, echo.Map{"error": "appointment already decided"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    doctorName := ""
    if doc, derr := h.Doctors.GetByID(ctx, appt.DoctorID); derr == nil {
        doctorName = doc.Name
    }
    ev := queue.AppointmentDecidedEvent{
        AppointmentID: appt.ID,
        PatientID:     appt.PatientID,
        DoctorID:      appt.DoctorID,
        DoctorName:    doctorName,
        Date:          appt.Date.Format("2006-01-02"),
        Time:          appt.Time,
        Status:        appt.Status,
        DecidedAt:     time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        _ = queue_publisher.PublishAppointmentDecided(pctx, ev)
    }()

    return c.JSON(http.StatusOK, echo.Map{
        "id":     appt.ID,
        "status": appt.Status,
    })
}

// ListAppointments handles GET /v1/admin/appointments with an optional
// ?status= filter.
func (h *AdminHandler) ListAppointments(c echo.Context) error {
    status := c.QueryParam("status")
    if status != "" && !model.ValidStatus(status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status filter"})
    }
    appts, err := h.Appointments.ListAll(c.Request().Context(), status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"appointments": appts})
}

type setSlotsReq struct {
    Slots uint32 `json:"slots"`
}

// SetSlots handles PUT /v1/admin/doctors/:id/slots, updating a doctor's
// daily capacity.  The cap must stay at least 1.
func (h *AdminHandler) SetSlots(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doctor id"})
    }
    var req setSlotsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Slots < 1 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot limit must be at least 1"})
    }
    if err := h.Doctors.UpdateSlots(c.Request().Context(), id, req.Slots); err != nil {
        if err == repository.ErrDoctorNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"doctor_id": id, "slots_per_day": req.Slots})
}

// ListDoctors handles GET /v1/admin/doctors.
func (h *AdminHandler) ListDoctors(c echo.Context) error {
    docs, err := h.Doctors.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]echo.Map, 0, len(docs))
    for _, d := range docs {
        out = append(out, echo.Map{
            "id":             d.ID,
            "user_id":        d.UserID,
            "name":           d.Name,
            "specialization": d.Specialization,
            "slots_per_day":  d.SlotsPerDay,
            "created_at":     d.CreatedAt.UTC().Format(time.RFC3339),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"doctors": out})
}

type createDoctorReq struct {
    Username       string `json:"username"`
    Email          string `json:"email"`
    Password       string `json:"password"`
    Name           string `json:"name"`
    Specialization string `json:"specialization"`
    Slots          uint32 `json:"slots"`
}

// CreateDoctor handles POST /v1/admin/doctors.  It provisions the login
// account and the doctor profile in a single transaction so a half-created
// doctor can never exist.
func (h *AdminHandler) CreateDoctor(c echo.Context) error {
    var req createDoctorReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    req.Name = strings.TrimSpace(req.Name)
    req.Specialization = strings.TrimSpace(req.Specialization)
    if req.Username == "" || req.Email == "" || req.Password == "" || req.Name == "" || req.Specialization == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, email, password, name and specialization are required"})
    }
    if len(req.Password) < 6 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
    }
    if req.Slots == 0 {
        req.Slots = 10 // default daily capacity
    }

    ctx := c.Request().Context()
    tx, err := h.Doctors.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    uid, err := h.Users.CreateTx(ctx, tx, req.Username, req.Email, req.Password, model.RoleDoctor, h.Cfg.BcryptCost)
    if err != nil {
        switch err {
        case repository.ErrUsernameExists:
            return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
        case repository.ErrEmailExists:
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }
    doc := &model.Doctor{
        UserID:         &uid,
        Name:           req.Name,
        Specialization: req.Specialization,
        SlotsPerDay:    req.Slots,
    }
    if err := h.Doctors.CreateTx(ctx, tx, doc); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create doctor failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    return c.JSON(http.StatusCreated, echo.Map{
        "doctor_id": doc.ID,
        "user_id":   uid,
        "username":  req.Username,
    })
}

// ListPatients handles GET /v1/admin/patients.
func (h *AdminHandler) ListPatients(c echo.Context) error {
    patients, err := h.Users.ListByRole(c.Request().Context(), model.RolePatient)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]echo.Map, 0, len(patients))
    for i := range patients {
        p := &patients[i]
        out = append(out, echo.Map{
            "id":         p.ID,
            "username":   p.Username,
            "email":      p.Email,
            "age":        ageOrNil(p),
            "created_at": p.CreatedAt.UTC().Format(time.RFC3339),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"patients": out})
}

// PatientRecords handles GET /v1/admin/patients/:id/records.  Ids that do
// not belong to a PATIENT user answer 404.
func (h *AdminHandler) PatientRecords(c echo.Context) error {
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

type addRecordReq struct {
    DoctorID     uint64 `json:"doctor_id"`
    Diagnosis    string `json:"diagnosis"`
    Prescription string `json:"prescription"`
    VisitDate    string `json:"visit_date"` // "YYYY-MM-DD"
    Notes        string `json:"notes"`
}

// AddRecord handles POST /v1/admin/patients/:id/records, appending a
// medical record on behalf of a doctor.
func (h *AdminHandler) AddRecord(c echo.Context) error {
    patientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || patientID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid patient id"})
    }
    var req addRecordReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.DoctorID == 0 || strings.TrimSpace(req.Diagnosis) == "" || req.VisitDate == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "doctor_id, diagnosis and visit_date are required"})
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
    if _, err := h.Doctors.GetByID(ctx, req.DoctorID); err != nil {
        if err == repository.ErrDoctorNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "doctor not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    rec := &model.PatientRecord{
        PatientID:    patientID,
        DoctorID:     req.DoctorID,
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

// Dashboard handles GET /v1/admin/dashboard: system-wide counters plus the
// most recent pending appointments awaiting a decision.
func (h *AdminHandler) Dashboard(c echo.Context) error {
    ctx := c.Request().Context()
    totalPatients, err := h.Users.CountByRole(ctx, model.RolePatient)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    totalDoctors, err := h.Doctors.Count(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    totalAppts, err := h.Appointments.CountAll(ctx, "")
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    pending, err := h.Appointments.CountAll(ctx, model.StatusPending)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    approved, err := h.Appointments.CountAll(ctx, model.StatusApproved)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    recentPending, err := h.Appointments.RecentPending(ctx, 5)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "total_patients":        totalPatients,
        "total_doctors":         totalDoctors,
        "total_appointments":    totalAppts,
        "pending_appointments":  pending,
        "approved_appointments": approved,
        "recent_pending":        recentPending,
    })
}
