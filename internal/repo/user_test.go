package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM users WHERE email = \$1 OR username = \$2`).
		WithArgs("alice@x.com", "alice").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO users \(username, email, password_hash, role\)`).
		WithArgs("alice", "alice@x.com", "hash", "user").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "role"}).
			AddRow(1, "alice", "alice@x.com", "user"))
	mock.ExpectCommit()

	r := NewUserRepo(db)
	user, err := r.Create(context.Background(), "alice", "alice@x.com", "hash", "user")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != 1 || user.Username != "alice" || user.Role != "user" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM users WHERE email = \$1 OR username = \$2`).
		WithArgs("alice@x.com", "alice2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectRollback()

	r := NewUserRepo(db)
	_, err = r.Create(context.Background(), "alice2", "alice@x.com", "hash", "user")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("Create: got %v, want ErrDuplicateUser", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash, role`).
		WithArgs("alice@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role"}).
			AddRow(1, "alice", "alice@x.com", "hash", "admin"))

	r := NewUserRepo(db)
	user, err := r.GetByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.PasswordHash != "hash" || user.Role != "admin" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash, role`).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	r := NewUserRepo(db)
	if _, err := r.GetByEmail(context.Background(), "nobody@x.com"); err != sql.ErrNoRows {
		t.Errorf("GetByEmail: got %v, want sql.ErrNoRows", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
