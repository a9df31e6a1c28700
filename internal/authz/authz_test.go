package authz

import (
	"testing"

	"github.com/ado1d/profile-taks-manager/internal/models"
)

func TestCanAccessTask(t *testing.T) {
	tests := []struct {
		name        string
		requesterID int
		role        string
		ownerID     int
		want        bool
	}{
		{"owner can access own task", 1, models.RoleUser, 1, true},
		{"other user denied", 2, models.RoleUser, 1, false},
		{"admin can access any task", 3, models.RoleAdmin, 1, true},
		{"admin can access own task", 3, models.RoleAdmin, 3, true},
		{"unknown role falls back to ownership", 1, "viewer", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessTask(tt.requesterID, tt.role, tt.ownerID); got != tt.want {
				t.Errorf("CanAccessTask(%d, %q, %d) = %v, want %v",
					tt.requesterID, tt.role, tt.ownerID, got, tt.want)
			}
		})
	}
}
