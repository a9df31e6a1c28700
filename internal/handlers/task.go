package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ado1d/profile-taks-manager/internal/authz"
	"github.com/ado1d/profile-taks-manager/internal/middleware"
	"github.com/ado1d/profile-taks-manager/internal/models"
	"github.com/ado1d/profile-taks-manager/internal/repo"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// ==========================
// TaskHandler
// ==========================
type TaskHandler struct {
	Repo *repo.TaskRepo
}

// ==========================
// Create Task (owner is always the caller, never the request body)
// ==========================
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
		Status      string  `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		fields["title"] = "required"
	} else if utf8.RuneCountInString(input.Title) > 150 {
		fields["title"] = "must be at most 150 characters"
	}
	status := input.Status
	if status == "" {
		status = models.StatusTodo
	}
	if !models.ValidStatus(status) {
		fields["status"] = "must be one of To Do, In Progress, Completed"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	task, err := h.Repo.Create(r.Context(), claims.UserID, input.Title, input.Description, status)
	if err != nil {
		slog.Error("create task", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, task, http.StatusCreated)
}

// ==========================
// List Tasks
// ==========================

// ListTasks returns the caller's tasks, newest first, with page/limit
// pagination and an optional status filter. Admins may pass all=true to span
// every owner; for anyone else the flag is ignored and the query stays
// scoped to their own tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()

	page := defaultPage
	if p := q.Get("page"); p != "" {
		val, err := strconv.Atoi(p)
		if err != nil || val < 1 {
			JSONError(w, "invalid pagination parameters", http.StatusBadRequest)
			return
		}
		page = val
	}

	limit := defaultLimit
	if l := q.Get("limit"); l != "" {
		val, err := strconv.Atoi(l)
		if err != nil || val < 1 || val > maxLimit {
			JSONError(w, "invalid pagination parameters", http.StatusBadRequest)
			return
		}
		limit = val
	}

	status := q.Get("status")
	if status != "" && !models.ValidStatus(status) {
		JSONError(w, "invalid status filter", http.StatusBadRequest)
		return
	}

	// Only the literal "true" turns the flag on; anything else is false.
	all := q.Get("all") == "true"

	filter := repo.TaskFilter{
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if !(all && claims.Role == models.RoleAdmin) {
		ownerID := claims.UserID
		filter.OwnerID = &ownerID
	}

	tasks, total, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("list tasks", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, map[string]interface{}{
		"data": tasks,
		"meta": map[string]int{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	}, http.StatusOK)
}

// ==========================
// Get Task By ID
// ==========================
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.loadAuthorized(w, r)
	if !ok {
		return
	}
	JSON(w, task, http.StatusOK)
}

// ==========================
// Update Task (partial)
// ==========================
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.loadAuthorized(w, r)
	if !ok {
		return
	}

	// Decode by key presence: an explicit null description clears the column,
	// while an absent key leaves the field untouched.
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var patch repo.TaskPatch
	fields := make(map[string]string)

	if v, ok := raw["title"]; ok {
		var title *string
		if err := json.Unmarshal(v, &title); err != nil || title == nil {
			fields["title"] = "must be a string"
		} else {
			trimmed := strings.TrimSpace(*title)
			if trimmed == "" {
				fields["title"] = "must not be empty"
			} else if utf8.RuneCountInString(trimmed) > 150 {
				fields["title"] = "must be at most 150 characters"
			}
			patch.Title = &trimmed
		}
	}
	if v, ok := raw["description"]; ok {
		var desc *string
		if err := json.Unmarshal(v, &desc); err != nil {
			fields["description"] = "must be a string or null"
		} else {
			ns := sql.NullString{}
			if desc != nil {
				ns = sql.NullString{String: *desc, Valid: true}
			}
			patch.Description = &ns
		}
	}
	if v, ok := raw["status"]; ok {
		var status *string
		if err := json.Unmarshal(v, &status); err != nil || status == nil || !models.ValidStatus(*status) {
			fields["status"] = "must be one of To Do, In Progress, Completed"
		} else {
			patch.Status = status
		}
	}

	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}
	if patch.IsEmpty() {
		JSONError(w, "no fields to update", http.StatusBadRequest)
		return
	}

	updated, err := h.Repo.UpdateFields(r.Context(), task.ID, patch)
	if err != nil {
		slog.Error("update task", "error", err, "task_id", task.ID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, updated, http.StatusOK)
}

// ==========================
// Delete Task
// ==========================
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.loadAuthorized(w, r)
	if !ok {
		return
	}

	if err := h.Repo.Delete(r.Context(), task.ID); err != nil {
		// The row can vanish between the existence check and the delete.
		if err == sql.ErrNoRows {
			JSONError(w, "task not found", http.StatusNotFound)
			return
		}
		slog.Error("delete task", "error", err, "task_id", task.ID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ==========================
// Admin: list every task
// ==========================
func (h *TaskHandler) AdminListAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Repo.ListAll(r.Context())
	if err != nil {
		slog.Error("admin list tasks", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	JSON(w, tasks, http.StatusOK)
}

// loadAuthorized resolves the {id} task and enforces the access rule for
// single-task operations. Existence is checked first so a missing task is
// always 404, never 403, regardless of who asks. On failure it writes the
// response and returns ok=false.
func (h *TaskHandler) loadAuthorized(w http.ResponseWriter, r *http.Request) (models.Task, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return models.Task{}, false
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		JSONError(w, "invalid task id", http.StatusBadRequest)
		return models.Task{}, false
	}

	task, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			JSONError(w, "task not found", http.StatusNotFound)
			return models.Task{}, false
		}
		slog.Error("get task", "error", err, "task_id", id)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return models.Task{}, false
	}

	if !authz.CanAccessTask(claims.UserID, claims.Role, task.UserID) {
		JSONError(w, "forbidden: cannot access another user's task", http.StatusForbidden)
		return models.Task{}, false
	}

	return task, true
}
