package command

import (
	"context"
	"errors"

	"github.com/tair/supply-manager/internal/user/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/logger"
)

// SeedAdminCommand describes the default administrator
type SeedAdminCommand struct {
	Username string
	Password string
	FullName string // "Administrator" when empty
}

// SeedAdminHandler creates the default admin on first start
type SeedAdminHandler struct {
	repo   domain.UserRepository
	create *CreateUserHandler
}

// NewSeedAdminHandler creates a new seed admin handler
func NewSeedAdminHandler(repo domain.UserRepository, create *CreateUserHandler) *SeedAdminHandler {
	return &SeedAdminHandler{repo: repo, create: create}
}

// Handle creates the admin unless a user with that username exists. It
// reports whether a user was created.
func (h *SeedAdminHandler) Handle(ctx context.Context, cmd SeedAdminCommand) (bool, error) {
	_, err := h.repo.FindByUsername(ctx, cmd.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return false, err
	}

	fullName := cmd.FullName
	if fullName == "" {
		fullName = "Administrator"
	}

	user, err := h.create.create(ctx, CreateUserCommand{
		Username: cmd.Username,
		Password: cmd.Password,
		FullName: fullName,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return false, err
	}

	logger.Warn(ctx).
		Str("username", user.Username).
		Msg("Default admin created, change its password")
	return true, nil
}
