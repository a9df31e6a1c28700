package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ado1d/profile-taks-manager/internal/models"
)

// ErrDuplicateUser means the username or email is already taken.
var ErrDuplicateUser = errors.New("username or email already exists")

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User (transactional)
// ==========================

// Create checks username/email uniqueness and inserts within one transaction,
// so two concurrent registrations with the same email cannot both pass the
// check. The unique indexes on users back this up; a 23505 from the insert is
// still mapped to ErrDuplicateUser by the caller.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash, role string) (*models.User, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM users WHERE email = $1 OR username = $2 LIMIT 1`,
		email, username,
	).Scan(&existing)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	user := &models.User{}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, username, email, role`,
		username, email, passwordHash, role,
	).Scan(&user.ID, &user.Username, &user.Email, &user.Role)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, role
		FROM users
		WHERE email = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, role
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role)

	if err != nil {
		return nil, err
	}

	return user, nil
}
