package model

import "time"

// Doctor represents a medical professional that patients book against.
// A doctor may be linked to a User account for logging in; profiles created
// before credential provisioning leave UserID nil.  SlotsPerDay is the
// per-day appointment capacity the booking workflow enforces.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – linked login account (nil when none exists).
//  Name           – professional name shown to patients.
//  Specialization – e.g. "Cardiology", "General Physician".
//  SlotsPerDay    – daily appointment capacity (always >= 1).
//  CreatedAt      – creation timestamp.
type Doctor struct {
    ID             uint64    // doctors.id
    UserID         *uint64   // doctors.user_id (nullable)
    Name           string    // doctors.name
    Specialization string    // doctors.specialization
    SlotsPerDay    uint32    // doctors.slots_per_day
    CreatedAt      time.Time // doctors.created_at
}
