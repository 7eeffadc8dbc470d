package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/careslot/hospital-booking/internal/model"
	"github.com/careslot/hospital-booking/internal/utils"
)

// UserRepo persists users across all three roles.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,username,email,password_hash,role,date_of_birth,created_at"

// Create hashes the password and inserts a user, returning its ID.
// Duplicate username/email violations (MySQL 1062) are mapped onto
// ErrUsernameExists / ErrEmailExists so nothing is written on a retaken name.
func (r *UserRepo) Create(ctx context.Context, username, email, password, role string, dob *time.Time, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role, date_of_birth) VALUES (?,?,?,?,?)",
		username, email, hash, role, dob)
	if err != nil {
		return 0, dupUserErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CreateTx is Create inside a caller-owned transaction.  It is used when a
// user row and a doctor profile must be committed together.
func (r *UserRepo) CreateTx(ctx context.Context, tx *sql.Tx, username, email, password, role string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, email, hash, role)
	if err != nil {
		return 0, dupUserErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.DateOfBirth, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.DateOfBirth, &u.CreatedAt)
	return u, err
}

// GetPatientByID fetches a user by id and verifies it carries the PATIENT
// role.  Non-patient ids yield sql.ErrNoRows so callers can answer 404
// without leaking which ids exist under other roles.
func (r *UserRepo) GetPatientByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? AND role=? LIMIT 1",
		id, model.RolePatient).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.DateOfBirth, &u.CreatedAt)
	return u, err
}

// ListByRole returns all users with the given role ordered by username.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userCols+" FROM users WHERE role=? ORDER BY username",
		role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.DateOfBirth, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CountByRole returns how many users carry the given role.
func (r *UserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role=?", role).Scan(&n)
	return n, err
}

// UpdateProfile changes a user's email and date of birth.  A 1062 on the
// email unique key means another account owns that address.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, email string, dob *time.Time) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=?, date_of_birth=? WHERE id=?",
		email, dob, id)
	if err != nil {
		return dupUserErr(err)
	}
	return nil
}

// dupUserErr translates MySQL duplicate-key errors on the users table into
// the matching sentinel.  The driver message names the violated key, which
// is how username and email collisions are told apart.
func dupUserErr(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	if strings.Contains(msg, "email") {
		return ErrEmailExists
	}
	return ErrUsernameExists
}
