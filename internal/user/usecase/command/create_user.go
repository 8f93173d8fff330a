package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/supply-manager/internal/user/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/logger"
)

// CreateUserCommand represents the command to create a user (admin only)
type CreateUserCommand struct {
	Username string
	Password string
	FullName string
	Role     string
	Actor    auth.Session
}

// CreateUserHandler handles user creation command
type CreateUserHandler struct {
	repo domain.UserRepository
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.UserRepository) *CreateUserHandler {
	return &CreateUserHandler{repo: repo}
}

// Handle executes the create user command
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	if err := requireAdmin(cmd.Actor, "create users"); err != nil {
		return nil, err
	}
	return h.create(ctx, cmd)
}

func (h *CreateUserHandler) create(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	username := strings.TrimSpace(cmd.Username)
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	if err := validatePassword(cmd.Password); err != nil {
		return nil, err
	}
	role := auth.NormalizeRole(cmd.Role)
	if role == "" {
		return nil, apperr.Validation(fmt.Sprintf("invalid role %q", cmd.Role))
	}

	// Check if user already exists
	_, err := h.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil, fmt.Errorf("username %q is taken: %w", username, apperr.ErrConflict)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	// Hash password
	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: username,
		Password: hash,
		FullName: strings.TrimSpace(cmd.FullName),
		Role:     role,
		IsActive: true,
	}
	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("user_id", user.ID).
		Str("username", user.Username).
		Str("role", user.Role).
		Msg("User created")
	return user, nil
}
