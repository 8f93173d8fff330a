package command

import (
	"context"
	"fmt"

	"github.com/tair/supply-manager/internal/user/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/logger"
)

// ResetPasswordCommand sets a new password for any user (admin only)
type ResetPasswordCommand struct {
	UserID      uint
	NewPassword string
	Actor       auth.Session
}

// ResetPasswordHandler handles reset password command
type ResetPasswordHandler struct {
	repo domain.UserRepository
}

// NewResetPasswordHandler creates a new reset password handler
func NewResetPasswordHandler(repo domain.UserRepository) *ResetPasswordHandler {
	return &ResetPasswordHandler{repo: repo}
}

// Handle executes the reset password command
func (h *ResetPasswordHandler) Handle(ctx context.Context, cmd ResetPasswordCommand) error {
	if err := requireAdmin(cmd.Actor, "reset passwords"); err != nil {
		return err
	}
	if err := validatePassword(cmd.NewPassword); err != nil {
		return err
	}

	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if err := setPassword(ctx, h.repo, user, cmd.NewPassword); err != nil {
		return err
	}

	logger.Info(ctx).
		Uint("user_id", user.ID).
		Str("actor", cmd.Actor.Username).
		Msg("Password reset")
	return nil
}

// ChangePasswordCommand lets a user change their own password
type ChangePasswordCommand struct {
	OldPassword string
	NewPassword string
	Actor       auth.Session
}

// ChangePasswordHandler handles change password command
type ChangePasswordHandler struct {
	repo domain.UserRepository
}

// NewChangePasswordHandler creates a new change password handler
func NewChangePasswordHandler(repo domain.UserRepository) *ChangePasswordHandler {
	return &ChangePasswordHandler{repo: repo}
}

// Handle executes the change password command
func (h *ChangePasswordHandler) Handle(ctx context.Context, cmd ChangePasswordCommand) error {
	if err := validatePassword(cmd.NewPassword); err != nil {
		return err
	}

	user, err := h.repo.FindByID(ctx, cmd.Actor.UserID)
	if err != nil {
		return err
	}
	// Verify current password
	if !auth.CheckPassword(user.Password, cmd.OldPassword) {
		return fmt.Errorf("current password does not match: %w", apperr.ErrUnauthorized)
	}
	return setPassword(ctx, h.repo, user, cmd.NewPassword)
}

func setPassword(ctx context.Context, repo domain.UserRepository, user *domain.User, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hash
	if err := repo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
