package repo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var taskCols = []string{"id", "user_id", "title", "description", "status", "created_at"}

func TestTaskRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO tasks \(user_id, title, description, status\)`).
		WithArgs(1, "Buy milk", nil, "To Do").
		WillReturnRows(sqlmock.NewRows(taskCols).AddRow(1, 1, "Buy milk", nil, "To Do", now))

	r := NewTaskRepo(db)
	task, err := r.Create(context.Background(), 1, "Buy milk", nil, "To Do")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID != 1 || task.UserID != 1 || task.Status != "To Do" {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.Description.Valid {
		t.Errorf("Description: got %q, want null", task.Description.String)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_List_OwnerAndStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, title, description, status, created_at FROM tasks WHERE user_id = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(1, "Completed", 10, 10).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(5, 1, "done thing", "notes", "Completed", now))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks WHERE user_id = \$1 AND status = \$2`).
		WithArgs(1, "Completed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	r := NewTaskRepo(db)
	owner := 1
	tasks, total, err := r.List(context.Background(), TaskFilter{
		OwnerID: &owner,
		Status:  "Completed",
		Limit:   10,
		Offset:  10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != 5 {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
	if total != 25 {
		t.Errorf("total: got %d, want 25", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_List_AllOwners(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, user_id, title, description, status, created_at FROM tasks ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(taskCols))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	r := NewTaskRepo(db)
	tasks, total, err := r.List(context.Background(), TaskFilter{Limit: 20, Offset: 0})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 0 || total != 0 {
		t.Errorf("unexpected result: tasks=%+v total=%d", tasks, total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_UpdateFields_StatusOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE tasks SET status = \$1 WHERE id = \$2`).
		WithArgs("Completed", 1).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(1, 1, "Buy milk", "2 liters", "Completed", now))

	r := NewTaskRepo(db)
	status := "Completed"
	task, err := r.UpdateFields(context.Background(), 1, TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if task.Status != "Completed" || task.Title != "Buy milk" {
		t.Errorf("unexpected task: %+v", task)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_UpdateFields_ClearDescription(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE tasks SET description = \$1 WHERE id = \$2`).
		WithArgs(nil, 1).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(1, 1, "Buy milk", nil, "To Do", now))

	r := NewTaskRepo(db)
	task, err := r.UpdateFields(context.Background(), 1, TaskPatch{Description: &sql.NullString{}})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if task.Description.Valid {
		t.Errorf("Description: got %q, want null", task.Description.String)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewTaskRepo(db)
	if err := r.Delete(context.Background(), 99); err != sql.ErrNoRows {
		t.Errorf("Delete: got %v, want sql.ErrNoRows", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM tasks GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("To Do", 3).
			AddRow("Completed", 7))

	r := NewTaskRepo(db)
	counts, err := r.CountByStatus(context.Background())
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts["To Do"] != 3 || counts["Completed"] != 7 || counts["In Progress"] != 0 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
