package model

import "time"

// Role names stored in users.role.  Patients self-register; admin accounts
// are provisioned out of band; doctor accounts are created by admins together
// with a doctor profile.
const (
    RolePatient = "PATIENT"
    RoleAdmin   = "ADMIN"
    RoleDoctor  = "DOCTOR"
)

// User represents a row in the `users` table.  It is the identity behind
// every session regardless of role.  JSON tags are omitted because handlers
// define their own response shapes; repositories work with this struct
// directly.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of PATIENT, ADMIN, DOCTOR.
//  DateOfBirth  – optional date of birth (patients only).
//  CreatedAt    – timestamp of registration.
type User struct {
    ID           uint64     // users.id
    Username     string     // users.username
    Email        string     // users.email
    PasswordHash string     // users.password_hash
    Role         string     // users.role
    DateOfBirth  *time.Time // users.date_of_birth (nullable)
    CreatedAt    time.Time  // users.created_at
}

// Age derives the user's age in whole years from DateOfBirth at the given
// reference time.  It returns -1 when no date of birth is recorded.
func (u *User) Age(now time.Time) int {
    if u.DateOfBirth == nil {
        return -1
    }
    dob := *u.DateOfBirth
    years := now.Year() - dob.Year()
    if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
        years--
    }
    return years
}
