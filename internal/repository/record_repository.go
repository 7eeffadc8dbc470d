package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/careslot/hospital-booking/internal/model"
)

// RecordRepo persists patient medical records.  Records are append-only:
// the repository deliberately offers no update or delete path.
type RecordRepo struct {
    db *sql.DB
}

// NewRecordRepo returns a RecordRepo bound to the given database.
func NewRecordRepo(db *sql.DB) *RecordRepo { return &RecordRepo{db: db} }

// Create inserts a patient record and populates the generated ID and DB
// defaults on the given struct.
func (r *RecordRepo) Create(ctx context.Context, rec *model.PatientRecord) error {
    const q = `INSERT INTO patient_records (patient_id, doctor_id, diagnosis, prescription, visit_date, notes)
               VALUES (?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        rec.PatientID, rec.DoctorID, rec.Diagnosis, rec.Prescription, rec.VisitDate.Format("2006-01-02"), rec.Notes)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rec.ID = uint64(id)
    const sel = `SELECT id, patient_id, doctor_id, diagnosis, prescription, visit_date, notes, created_at
                 FROM patient_records WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, rec.ID).Scan(
        &rec.ID, &rec.PatientID, &rec.DoctorID, &rec.Diagnosis, &rec.Prescription,
        &rec.VisitDate, &rec.Notes, &rec.CreatedAt)
}

// RecordDetail is a patient record joined with the authoring doctor's public
// fields.  VisitDate is preformatted as "YYYY-MM-DD".
type RecordDetail struct {
    ID             uint64 `json:"id"`
    PatientID      uint64 `json:"patient_id"`
    DoctorID       uint64 `json:"doctor_id"`
    DoctorName     string `json:"doctor_name"`
    Specialization string `json:"specialization"`
    Diagnosis      string `json:"diagnosis"`
    Prescription   string `json:"prescription"`
    VisitDate      string `json:"visit_date"`
    Notes          string `json:"notes"`
    CreatedAt      string `json:"created_at"`
}

const recordDetailQ = `SELECT r.id, r.patient_id, r.doctor_id, d.name, d.specialization,
                              r.diagnosis, r.prescription, r.visit_date, r.notes, r.created_at
                       FROM patient_records r
                       JOIN doctors d ON d.id = r.doctor_id`

func (r *RecordRepo) queryDetails(ctx context.Context, q string, args ...any) ([]RecordDetail, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []RecordDetail{}
    for rows.Next() {
        var det RecordDetail
        var visit, created time.Time
        if err := rows.Scan(&det.ID, &det.PatientID, &det.DoctorID, &det.DoctorName, &det.Specialization,
            &det.Diagnosis, &det.Prescription, &visit, &det.Notes, &created); err != nil {
            return nil, err
        }
        det.VisitDate = visit.Format("2006-01-02")
        det.CreatedAt = created.UTC().Format(time.RFC3339)
        out = append(out, det)
    }
    return out, rows.Err()
}

// ListByPatient returns every record for one patient, most recent visit
// first.  Callers enforce that the patient id matches the session identity
// (or that the caller is staff) before reaching here.
func (r *RecordRepo) ListByPatient(ctx context.Context, patientID uint64) ([]RecordDetail, error) {
    return r.queryDetails(ctx, recordDetailQ+` WHERE r.patient_id = ? ORDER BY r.visit_date DESC, r.id DESC`, patientID)
}

// ListByDoctor returns the records one doctor has authored, most recent
// visit first.
func (r *RecordRepo) ListByDoctor(ctx context.Context, doctorID uint64) ([]RecordDetail, error) {
    return r.queryDetails(ctx, recordDetailQ+` WHERE r.doctor_id = ? ORDER BY r.visit_date DESC, r.id DESC`, doctorID)
}

// CountByDoctor counts the records authored by one doctor.
func (r *RecordRepo) CountByDoctor(ctx context.Context, doctorID uint64) (int64, error) {
    var n int64
    err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM patient_records WHERE doctor_id = ?`, doctorID).Scan(&n)
    return n, err
}
