// Package repository defines error types shared across repositories.  These
// sentinel values let handlers map failure scenarios onto HTTP statuses
// without inspecting driver errors: the duplicate/decided/no-slot sentinels
// become 409, the not-found sentinels become 404.
package repository

import "errors"

// ErrUsernameExists signals a registration against a taken username.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists signals a registration or profile update against an email
// already bound to another account.
var ErrEmailExists = errors.New("email already exists")

// ErrDoctorNotFound indicates the referenced doctor row does not exist.
// Booking against an unknown doctor must fail with this rather than being
// treated as unlimited capacity.
var ErrDoctorNotFound = errors.New("doctor not found")

// ErrAppointmentNotFound indicates the referenced appointment does not exist.
var ErrAppointmentNotFound = errors.New("appointment not found")

// ErrAlreadyDecided is returned when an approve/reject targets an
// appointment that already left the pending state.  Terminal states are
// final; no re-deciding.
var ErrAlreadyDecided = errors.New("appointment already decided")

// ErrNoSlots is returned by the booking transaction when the doctor's daily
// capacity for the requested date is exhausted.
var ErrNoSlots = errors.New("no slots available")
