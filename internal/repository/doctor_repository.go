package repository

import (
	"context"
	"database/sql"

	"github.com/careslot/hospital-booking/internal/model"
)

// DoctorRepo manages persistence for doctor profiles.
type DoctorRepo struct {
	db *sql.DB
}

// NewDoctorRepo constructs a DoctorRepo with the given DB handle.
func NewDoctorRepo(db *sql.DB) *DoctorRepo {
	return &DoctorRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions that
// span multiple repositories, such as creating a doctor together with its
// login account.
func (r *DoctorRepo) DB() *sql.DB {
	return r.db
}

const doctorCols = "id, user_id, name, specialization, slots_per_day, created_at"

// CreateTx inserts a doctor profile inside a caller-owned transaction and
// populates the generated ID plus DB defaults on the given struct.  The
// caller must commit or roll back.
func (r *DoctorRepo) CreateTx(ctx context.Context, tx *sql.Tx, d *model.Doctor) error {
	const q = `INSERT INTO doctors (user_id, name, specialization, slots_per_day) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, d.UserID, d.Name, d.Specialization, d.SlotsPerDay)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	const sel = `SELECT ` + doctorCols + ` FROM doctors WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, d.ID).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Specialization, &d.SlotsPerDay, &d.CreatedAt)
}

// GetByID retrieves a doctor by id.  Returns ErrDoctorNotFound when no row
// matches.
func (r *DoctorRepo) GetByID(ctx context.Context, id uint64) (*model.Doctor, error) {
	const q = `SELECT ` + doctorCols + ` FROM doctors WHERE id = ?`
	var d model.Doctor
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Specialization, &d.SlotsPerDay, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByUserID resolves the doctor profile linked to a login account.
// Doctor-facing endpoints use this to map the session user onto their
// profile.  Returns ErrDoctorNotFound when the user has no profile.
func (r *DoctorRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Doctor, error) {
	const q = `SELECT ` + doctorCols + ` FROM doctors WHERE user_id = ?`
	var d model.Doctor
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&d.ID, &d.UserID, &d.Name, &d.Specialization, &d.SlotsPerDay, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// LockForBookingTx loads a doctor's capacity with a row lock inside the
// booking transaction.  The FOR UPDATE lock serializes concurrent bookings
// against the same doctor so the capacity count that follows cannot race.
// Returns ErrDoctorNotFound when the doctor does not exist.
func (r *DoctorRepo) LockForBookingTx(ctx context.Context, tx *sql.Tx, id uint64) (uint32, error) {
	var cap uint32
	err := tx.QueryRowContext(ctx,
		`SELECT slots_per_day FROM doctors WHERE id = ? FOR UPDATE`, id).Scan(&cap)
	if err == sql.ErrNoRows {
		return 0, ErrDoctorNotFound
	}
	if err != nil {
		return 0, err
	}
	return cap, nil
}

// ListAll returns every doctor ordered by name.
func (r *DoctorRepo) ListAll(ctx context.Context) ([]model.Doctor, error) {
	const q = `SELECT ` + doctorCols + ` FROM doctors ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Specialization, &d.SlotsPerDay, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateSlots sets a doctor's daily capacity.  The caller validates that
// slots >= 1.  Returns ErrDoctorNotFound when the id does not exist; setting
// the cap to its current value is not an error.
func (r *DoctorRepo) UpdateSlots(ctx context.Context, id uint64, slots uint32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE doctors SET slots_per_day = ? WHERE id = ?`, slots, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the doctor is missing or the value was unchanged.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM doctors WHERE id = ?)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrDoctorNotFound
		}
	}
	return nil
}

// Count returns the total number of doctor profiles.
func (r *DoctorRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&n)
	return n, err
}
