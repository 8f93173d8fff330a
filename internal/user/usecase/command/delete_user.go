package command

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/user/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/logger"
)

// DeleteUserCommand represents the command to delete a user (admin only)
type DeleteUserCommand struct {
	UserID uint
	Actor  auth.Session
}

// DeleteUserHandler handles user deletion command
type DeleteUserHandler struct {
	repo domain.UserRepository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle executes the delete user command
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUserCommand) error {
	if err := requireAdmin(cmd.Actor, "delete users"); err != nil {
		return err
	}
	if cmd.UserID == cmd.Actor.UserID {
		return fmt.Errorf("admins cannot delete themselves: %w", apperr.ErrInvalidState)
	}

	if err := h.repo.Delete(ctx, cmd.UserID); err != nil {
		return err
	}

	logger.Info(ctx).
		Uint("user_id", cmd.UserID).
		Str("actor", cmd.Actor.Username).
		Msg("User deleted")
	return nil
}
