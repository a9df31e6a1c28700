package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ado1d/profile-taks-manager/internal/auth"
	"github.com/ado1d/profile-taks-manager/internal/metrics"
	"github.com/ado1d/profile-taks-manager/internal/models"
	"github.com/ado1d/profile-taks-manager/internal/repo"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo *repo.UserRepo
	Secret   []byte
	TokenTTL time.Duration
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required,min=3,max=50"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Role     string `json:"role"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	input.Username = strings.TrimSpace(input.Username)

	fields := validationFields(validate.Struct(input))
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	// TODO: gate admin self-registration behind a bootstrap flag or invite;
	// today any caller may register with role=admin.
	if !models.ValidRole(role) {
		fields["role"] = "must be user or admin"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.UserRepo.Create(r.Context(), input.Username, input.Email, string(hash), role)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUser) {
			JSONError(w, "username or email already exists", http.StatusConflict)
			return
		}
		// Unique index catches the insert race the pre-check cannot see.
		if e, ok := err.(*pq.Error); ok && e.Code == "23505" {
			JSONError(w, "username or email already exists", http.StatusConflict)
			return
		}
		slog.Error("register: create user", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, user, http.StatusCreated)
}

// ==========================
// Login (uniform failure: unknown email and wrong password are indistinguishable)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := validationFields(validate.Struct(input)); len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		metrics.IncLogins("failure")
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		metrics.IncLogins("failure")
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.IssueToken(h.Secret, user.ID, user.Role, h.TokenTTL)
	if err != nil {
		slog.Error("login: sign token", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncLogins("success")
	JSON(w, map[string]interface{}{
		"token": token,
		"user":  user,
	}, http.StatusOK)
}

// validationFields flattens validator errors into a field -> message map.
// Returns an empty (non-nil) map when err is nil.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)
	if err == nil {
		return fields
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["body"] = "invalid"
		return fields
	}
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "required"
		case "email":
			fields[name] = "must be a valid email"
		case "min":
			fields[name] = "must be at least " + fe.Param() + " characters"
		case "max":
			fields[name] = "must be at most " + fe.Param() + " characters"
		default:
			fields[name] = "invalid"
		}
	}
	return fields
}
