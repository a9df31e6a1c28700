package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ado1d/profile-taks-manager/internal/models"
)

const taskColumns = "id, user_id, title, description, status, created_at"

// ==========================
// TaskRepo
// ==========================
type TaskRepo struct {
	DB *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

// TaskFilter narrows List. A nil OwnerID spans all owners (admin listing);
// an empty Status matches any status.
type TaskFilter struct {
	OwnerID *int
	Status  string
	Limit   int
	Offset  int
}

// TaskPatch carries the fields of a partial update. Nil fields are left
// untouched in the row; a Description pointing at an invalid NullString sets
// the column to NULL.
type TaskPatch struct {
	Title       *string
	Description *sql.NullString
	Status      *string
}

// IsEmpty reports whether the patch carries no recognized field.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// ==========================
// Create Task
// ==========================
func (r *TaskRepo) Create(ctx context.Context, ownerID int, title string, description *string, status string) (models.Task, error) {
	var task models.Task
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO tasks (user_id, title, description, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+taskColumns,
		ownerID, title, description, status,
	).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.CreatedAt,
	)
	return task, err
}

// ==========================
// Get Task By ID
// ==========================
func (r *TaskRepo) GetByID(ctx context.Context, id int) (models.Task, error) {
	var task models.Task
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`,
		id,
	).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.CreatedAt,
	)
	return task, err
}

// ==========================
// List Tasks (filtered, newest first)
// ==========================

// List returns one page of tasks matching f plus the total count under the
// same predicate (ignoring limit/offset). Ordering is created_at DESC so
// pagination is stable across pages.
func (r *TaskRepo) List(ctx context.Context, f TaskFilter) ([]models.Task, int, error) {
	where, params := buildTaskWhere(f)

	query := fmt.Sprintf(
		"SELECT %s FROM tasks %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		taskColumns, where, len(params)+1, len(params)+2,
	)

	rows, err := r.DB.QueryContext(ctx, query, append(params, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tasks %s", where)
	if err := r.DB.QueryRowContext(ctx, countQuery, params...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// buildTaskWhere assembles the WHERE clause shared by the page and count
// queries. Only trusted values reach the SQL text; user input goes through
// the params slice.
func buildTaskWhere(f TaskFilter) (string, []interface{}) {
	var conds []string
	var params []interface{}

	if f.OwnerID != nil {
		params = append(params, *f.OwnerID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(params)))
	}
	if f.Status != "" {
		params = append(params, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(params)))
	}

	if len(conds) == 0 {
		return "", params
	}
	return "WHERE " + strings.Join(conds, " AND "), params
}

// ==========================
// List All Tasks (admin)
// ==========================
func (r *TaskRepo) ListAll(ctx context.Context) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ==========================
// Update Task (partial)
// ==========================

// UpdateFields applies only the fields present in patch and returns the
// updated row. Fields omitted from the patch keep their stored value.
func (r *TaskRepo) UpdateFields(ctx context.Context, id int, patch TaskPatch) (models.Task, error) {
	var sets []string
	var params []interface{}

	if patch.Title != nil {
		params = append(params, *patch.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(params)))
	}
	if patch.Description != nil {
		params = append(params, *patch.Description) // NullString renders NULL when invalid
		sets = append(sets, fmt.Sprintf("description = $%d", len(params)))
	}
	if patch.Status != nil {
		params = append(params, *patch.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(params)))
	}

	params = append(params, id)
	query := fmt.Sprintf(
		"UPDATE tasks SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(params), taskColumns,
	)

	var task models.Task
	err := r.DB.QueryRowContext(ctx, query, params...).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.CreatedAt,
	)
	return task, err
}

// ==========================
// Delete Task
// ==========================
func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ==========================
// Count By Status
// ==========================

// CountByStatus returns the number of tasks per status across all owners.
// Statuses with no tasks are absent from the map.
func (r *TaskRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
