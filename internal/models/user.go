package models

// RoleUser is the default role assigned at registration.
const RoleUser = "user"

// RoleAdmin can read and mutate any user's tasks.
const RoleAdmin = "admin"

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
