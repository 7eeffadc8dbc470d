package model

import "time"

// Appointment lifecycle states.  Every appointment starts pending; an admin
// decision moves it to approved or rejected and no transition leads out of
// either terminal state.
const (
    StatusPending  = "pending"
    StatusApproved = "approved"
    StatusRejected = "rejected"
)

// Appointment represents a booking made by a patient against a doctor's
// daily capacity.  Date and time are kept separate: the date participates in
// the capacity check while the time is informational, matching how clinics
// hand out same-day slots.
//
// Fields:
//  ID        – primary key identifier.
//  PatientID – booking user (role PATIENT).
//  DoctorID  – doctor being booked.
//  Date      – appointment day (date only, UTC).
//  Time      – clock time as "HH:MM" 24h text.
//  Status    – pending, approved or rejected.
//  Reason    – free-text reason for the visit.
//  CreatedAt – when the booking was submitted.
type Appointment struct {
    ID        uint64    // appointments.id
    PatientID uint64    // appointments.patient_id
    DoctorID  uint64    // appointments.doctor_id
    Date      time.Time // appointments.appointment_date
    Time      string    // appointments.appointment_time
    Status    string    // appointments.status
    Reason    string    // appointments.reason
    CreatedAt time.Time // appointments.created_at
}

// Decided reports whether the appointment has reached a terminal state.
func (a *Appointment) Decided() bool {
    return a.Status == StatusApproved || a.Status == StatusRejected
}

// ValidStatus reports whether s names a known appointment state.  Used to
// validate status filters on listing endpoints.
func ValidStatus(s string) bool {
    switch s {
    case StatusPending, StatusApproved, StatusRejected:
        return true
    }
    return false
}
