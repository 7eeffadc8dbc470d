// Package queue defines message payloads exchanged over the message broker.
package queue

// AppointmentDecidedEvent is published when an admin approves or rejects an
// appointment.  It carries enough context for downstream consumers to audit
// or trigger analytics without querying the primary database.
type AppointmentDecidedEvent struct {
    AppointmentID uint64 `json:"appointment_id"`
    PatientID     uint64 `json:"patient_id"`
    DoctorID      uint64 `json:"doctor_id"`
    DoctorName    string `json:"doctor_name"`
    Date          string `json:"date"`
    Time          string `json:"time"`
    Status        string `json:"status"`
    DecidedAt     string `json:"decided_at"`
}
