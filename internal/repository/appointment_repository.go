package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/careslot/hospital-booking/internal/model"
)

// AppointmentRepo provides persistence for the booking and approval
// workflows.  Booking is the only multi-statement write in the system: the
// capacity check and the insert must land in one transaction, which Book
// owns end to end, pairing DoctorRepo.LockForBookingTx with the Tx methods
// below.  All date values are date-only and UTC.
type AppointmentRepo struct {
    db *sql.DB
}

// NewAppointmentRepo returns an AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

// CountForDateTx counts the appointments occupying a doctor's capacity on a
// given date, inside the booking transaction.  Approved appointments always
// count; pending ones count when countPending is set; rejected ones never
// count.  The caller must already hold the doctor row lock so concurrent
// bookings observe serialized counts.
func (r *AppointmentRepo) CountForDateTx(ctx context.Context, tx *sql.Tx, doctorID uint64, date time.Time, countPending bool) (int64, error) {
    statuses := []any{model.StatusApproved}
    q := `SELECT COUNT(*) FROM appointments WHERE doctor_id = ? AND appointment_date = ? AND status IN (?`
    if countPending {
        statuses = append(statuses, model.StatusPending)
        q += `,?`
    }
    q += `)`
    args := append([]any{doctorID, date.Format("2006-01-02")}, statuses...)
    var n int64
    err := tx.QueryRowContext(ctx, q, args...).Scan(&n)
    return n, err
}

// CountForDate is the advisory (non-locking) variant used by the slot-check
// endpoint.  Its result is for UI feedback only; booking never trusts it.
func (r *AppointmentRepo) CountForDate(ctx context.Context, doctorID uint64, date time.Time, countPending bool) (int64, error) {
    statuses := []any{model.StatusApproved}
    q := `SELECT COUNT(*) FROM appointments WHERE doctor_id = ? AND appointment_date = ? AND status IN (?`
    if countPending {
        statuses = append(statuses, model.StatusPending)
        q += `,?`
    }
    q += `)`
    args := append([]any{doctorID, date.Format("2006-01-02")}, statuses...)
    var n int64
    err := r.db.QueryRowContext(ctx, q, args...).Scan(&n)
    return n, err
}

// CreateTx inserts a new pending appointment within the booking transaction
// and populates the generated ID and DB defaults on the given struct.  The
// caller must commit or roll back.
func (r *AppointmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Appointment) error {
    const q = `INSERT INTO appointments (patient_id, doctor_id, appointment_date, appointment_time, reason)
               VALUES (?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, a.PatientID, a.DoctorID, a.Date.Format("2006-01-02"), a.Time, a.Reason)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    a.ID = uint64(id)
    const sel = `SELECT id, patient_id, doctor_id, appointment_date, appointment_time, status, reason, created_at
                 FROM appointments WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, a.ID).Scan(
        &a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time, &a.Status, &a.Reason, &a.CreatedAt)
}

// Book creates a pending appointment subject to the doctor's daily cap.
// The whole check-and-insert runs as one transaction: the doctor row is
// locked, the occupied slots for (doctor, date) are counted under that lock
// and the insert proceeds only while the count is below capacity, so two
// concurrent requests for the last slot serialize on the doctor row and at
// most one commits.  Returns ErrDoctorNotFound for an unknown doctor and
// ErrNoSlots when the day is full; either way nothing is written.
func (r *AppointmentRepo) Book(ctx context.Context, doctors *DoctorRepo, a *model.Appointment, countPending bool) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    cap, err := doctors.LockForBookingTx(ctx, tx, a.DoctorID)
    if err != nil {
        return err
    }
    booked, err := r.CountForDateTx(ctx, tx, a.DoctorID, a.Date, countPending)
    if err != nil {
        return err
    }
    if booked >= int64(cap) {
        return ErrNoSlots
    }
    if err := r.CreateTx(ctx, tx, a); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// GetByID loads a single appointment.  Returns ErrAppointmentNotFound when
// no row matches.
func (r *AppointmentRepo) GetByID(ctx context.Context, id uint64) (*model.Appointment, error) {
    const q = `SELECT id, patient_id, doctor_id, appointment_date, appointment_time, status, reason, created_at
               FROM appointments WHERE id = ?`
    var a model.Appointment
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time, &a.Status, &a.Reason, &a.CreatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrAppointmentNotFound
    }
    if err != nil {
        return nil, err
    }
    return &a, nil
}

// Decide moves a pending appointment into a terminal state.  The row is
// locked and its status re-read inside one transaction so two admins cannot
// both decide it, and a decided appointment can never be decided again:
// anything other than pending yields ErrAlreadyDecided with no write.
func (r *AppointmentRepo) Decide(ctx context.Context, id uint64, to string) (*model.Appointment, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const sel = `SELECT id, patient_id, doctor_id, appointment_date, appointment_time, status, reason, created_at
                 FROM appointments WHERE id = ? FOR UPDATE`
    var a model.Appointment
    err = tx.QueryRowContext(ctx, sel, id).Scan(
        &a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time, &a.Status, &a.Reason, &a.CreatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrAppointmentNotFound
    }
    if err != nil {
        return nil, err
    }
    if a.Status != model.StatusPending {
        return nil, ErrAlreadyDecided
    }
    if _, err := tx.ExecContext(ctx,
        `UPDATE appointments SET status = ? WHERE id = ?`, to, id); err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    a.Status = to
    return &a, nil
}

// AppointmentDetail is an appointment joined with the doctor's public fields
// for listing to patients.  Date is preformatted as "YYYY-MM-DD".
type AppointmentDetail struct {
    ID             uint64 `json:"id"`
    DoctorID       uint64 `json:"doctor_id"`
    DoctorName     string `json:"doctor_name"`
    Specialization string `json:"specialization"`
    Date           string `json:"date"`
    Time           string `json:"time"`
    Status         string `json:"status"`
    Reason         string `json:"reason"`
    CreatedAt      string `json:"created_at"`
}

// AdminAppointmentDetail extends AppointmentDetail with the booking
// patient's identity for staff-facing listings.
type AdminAppointmentDetail struct {
    AppointmentDetail
    PatientID       uint64 `json:"patient_id"`
    PatientUsername string `json:"patient_username"`
}

const detailQ = `SELECT a.id, a.doctor_id, d.name, d.specialization,
                        a.appointment_date, a.appointment_time, a.status, a.reason, a.created_at
                 FROM appointments a
                 JOIN doctors d ON d.id = a.doctor_id`

func scanDetail(rows *sql.Rows) (AppointmentDetail, error) {
    var det AppointmentDetail
    var date, created time.Time
    err := rows.Scan(&det.ID, &det.DoctorID, &det.DoctorName, &det.Specialization,
        &date, &det.Time, &det.Status, &det.Reason, &created)
    if err != nil {
        return det, err
    }
    det.Date = date.Format("2006-01-02")
    det.CreatedAt = created.UTC().Format(time.RFC3339)
    return det, nil
}

// ListByPatient returns a patient's appointments newest date first.  status
// filters to a single state when non-empty.
func (r *AppointmentRepo) ListByPatient(ctx context.Context, patientID uint64, status string) ([]AppointmentDetail, error) {
    q := detailQ + ` WHERE a.patient_id = ?`
    args := []any{patientID}
    if status != "" {
        q += ` AND a.status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY a.appointment_date DESC, a.id DESC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []AppointmentDetail{}
    for rows.Next() {
        det, err := scanDetail(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, det)
    }
    return out, rows.Err()
}

// ListByDoctor returns the appointments booked against one doctor profile,
// newest date first, optionally filtered by status.
func (r *AppointmentRepo) ListByDoctor(ctx context.Context, doctorID uint64, status string) ([]AdminAppointmentDetail, error) {
    q := adminDetailQ + ` WHERE a.doctor_id = ?`
    args := []any{doctorID}
    if status != "" {
        q += ` AND a.status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY a.appointment_date DESC, a.id DESC`
    return r.queryAdminDetails(ctx, q, args...)
}

const adminDetailQ = `SELECT a.id, a.doctor_id, d.name, d.specialization,
                             a.appointment_date, a.appointment_time, a.status, a.reason, a.created_at,
                             a.patient_id, u.username
                      FROM appointments a
                      JOIN doctors d ON d.id = a.doctor_id
                      JOIN users u ON u.id = a.patient_id`

func (r *AppointmentRepo) queryAdminDetails(ctx context.Context, q string, args ...any) ([]AdminAppointmentDetail, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []AdminAppointmentDetail{}
    for rows.Next() {
        var det AdminAppointmentDetail
        var date, created time.Time
        if err := rows.Scan(&det.ID, &det.DoctorID, &det.DoctorName, &det.Specialization,
            &date, &det.Time, &det.Status, &det.Reason, &created,
            &det.PatientID, &det.PatientUsername); err != nil {
            return nil, err
        }
        det.Date = date.Format("2006-01-02")
        det.CreatedAt = created.UTC().Format(time.RFC3339)
        out = append(out, det)
    }
    return out, rows.Err()
}

// ListAll returns every appointment for admin oversight, newest submission
// first, optionally filtered by status.
func (r *AppointmentRepo) ListAll(ctx context.Context, status string) ([]AdminAppointmentDetail, error) {
    q := adminDetailQ
    var args []any
    if status != "" {
        q += ` WHERE a.status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY a.created_at DESC, a.id DESC`
    return r.queryAdminDetails(ctx, q, args...)
}

// RecentByPatient returns a patient's most recently submitted appointments
// for the dashboard.
func (r *AppointmentRepo) RecentByPatient(ctx context.Context, patientID uint64, limit int) ([]AppointmentDetail, error) {
    q := detailQ + ` WHERE a.patient_id = ? ORDER BY a.created_at DESC, a.id DESC LIMIT ?`
    rows, err := r.db.QueryContext(ctx, q, patientID, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []AppointmentDetail{}
    for rows.Next() {
        det, err := scanDetail(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, det)
    }
    return out, rows.Err()
}

// RecentPending returns the newest pending appointments for the admin
// dashboard.
func (r *AppointmentRepo) RecentPending(ctx context.Context, limit int) ([]AdminAppointmentDetail, error) {
    q := adminDetailQ + ` WHERE a.status = ? ORDER BY a.created_at DESC, a.id DESC LIMIT ?`
    return r.queryAdminDetails(ctx, q, model.StatusPending, limit)
}

// CountByPatient counts a patient's appointments, all states when status is
// empty.
func (r *AppointmentRepo) CountByPatient(ctx context.Context, patientID uint64, status string) (int64, error) {
    q := `SELECT COUNT(*) FROM appointments WHERE patient_id = ?`
    args := []any{patientID}
    if status != "" {
        q += ` AND status = ?`
        args = append(args, status)
    }
    var n int64
    err := r.db.QueryRowContext(ctx, q, args...).Scan(&n)
    return n, err
}

// CountByDoctor counts appointments against one doctor profile.
func (r *AppointmentRepo) CountByDoctor(ctx context.Context, doctorID uint64, status string) (int64, error) {
    q := `SELECT COUNT(*) FROM appointments WHERE doctor_id = ?`
    args := []any{doctorID}
    if status != "" {
        q += ` AND status = ?`
        args = append(args, status)
    }
    var n int64
    err := r.db.QueryRowContext(ctx, q, args...).Scan(&n)
    return n, err
}

// CountAll counts appointments system-wide, all states when status is empty.
func (r *AppointmentRepo) CountAll(ctx context.Context, status string) (int64, error) {
    q := `SELECT COUNT(*) FROM appointments`
    var args []any
    if status != "" {
        q += ` WHERE status = ?`
        args = append(args, status)
    }
    var n int64
    err := r.db.QueryRowContext(ctx, q, args...).Scan(&n)
    return n, err
}
