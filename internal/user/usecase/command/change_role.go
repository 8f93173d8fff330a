package command

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/user/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
)

// ChangeRoleCommand represents the command to change user role (admin only)
type ChangeRoleCommand struct {
	UserID uint
	Role   string
	Actor  auth.Session
}

// ChangeRoleHandler handles user role change command
type ChangeRoleHandler struct {
	repo domain.UserRepository
}

// NewChangeRoleHandler creates a new change role handler
func NewChangeRoleHandler(repo domain.UserRepository) *ChangeRoleHandler {
	return &ChangeRoleHandler{repo: repo}
}

// Handle executes the change role command. Admins cannot demote
// themselves.
func (h *ChangeRoleHandler) Handle(ctx context.Context, cmd ChangeRoleCommand) (*domain.User, error) {
	if err := requireAdmin(cmd.Actor, "change roles"); err != nil {
		return nil, err
	}
	role := auth.NormalizeRole(cmd.Role)
	if role == "" {
		return nil, apperr.Validation(fmt.Sprintf("invalid role %q", cmd.Role))
	}
	if cmd.UserID == cmd.Actor.UserID && role != domain.RoleAdmin {
		return nil, fmt.Errorf("admins cannot demote themselves: %w", apperr.ErrInvalidState)
	}

	// Find user
	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := h.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}
	return user, nil
}
