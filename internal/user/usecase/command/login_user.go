package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/supply-manager/internal/user/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
	"github.com/tair/supply-manager/pkg/logger"
)

// ErrInvalidCredentials hides whether the username or the password was wrong
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
	Session auth.Session `json:"session"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle executes the login user command
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResponse, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, apperr.Validation("username and password are required")
	}

	// Unknown user and wrong password look the same to the caller
	user, err := h.repo.FindByUsername(ctx, cmd.Username)
	if errors.Is(err, apperr.ErrNotFound) {
		logger.Warn(ctx).Str("username", cmd.Username).Msg("Login for unknown user")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		logger.Warn(ctx).Str("username", user.Username).Msg("Login with wrong password")
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account %s is deactivated: %w", user.Username, apperr.ErrUnauthorized)
	}

	// Generate JWT token
	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info(ctx).
		Uint("user_id", user.ID).
		Str("username", user.Username).
		Str("role", user.Role).
		Msg("User logged in")

	return &LoginResponse{Token: token, User: user, Session: user.Session()}, nil
}
