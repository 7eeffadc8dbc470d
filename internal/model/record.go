package model

import "time"

// PatientRecord is a diagnosis/prescription entry written after a visit.
// Records are append-only: neither patients nor staff can edit or delete
// them once written.  Patients may read only their own records.
//
// Fields:
//  ID           – primary key identifier.
//  PatientID    – patient the record belongs to.
//  DoctorID     – doctor who authored (or is credited with) the record.
//  Diagnosis    – diagnosis text (required).
//  Prescription – prescribed treatment (optional).
//  VisitDate    – day of the visit (date only, UTC).
//  Notes        – additional notes (optional).
//  CreatedAt    – when the record was written.
type PatientRecord struct {
    ID           uint64    // patient_records.id
    PatientID    uint64    // patient_records.patient_id
    DoctorID     uint64    // patient_records.doctor_id
    Diagnosis    string    // patient_records.diagnosis
    Prescription string    // patient_records.prescription
    VisitDate    time.Time // patient_records.visit_date
    Notes        string    // patient_records.notes
    CreatedAt    time.Time // patient_records.created_at
}
