package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/supply-manager/internal/user/usecase/command"
	"github.com/tair/supply-manager/internal/user/usecase/query"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/httpx"
	"github.com/tair/supply-manager/pkg/ratelimit"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	// Command handlers
	loginHandler          *command.LoginUserHandler
	createHandler         *command.CreateUserHandler
	deleteHandler         *command.DeleteUserHandler
	changeRoleHandler     *command.ChangeRoleHandler
	toggleActiveHandler   *command.ToggleActiveHandler
	resetPasswordHandler  *command.ResetPasswordHandler
	changePasswordHandler *command.ChangePasswordHandler

	// Query handlers
	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler
	statsHandler   *query.GetStatsHandler

	loginLimiter *ratelimit.RateLimiter
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	loginHandler *command.LoginUserHandler,
	createHandler *command.CreateUserHandler,
	deleteHandler *command.DeleteUserHandler,
	changeRoleHandler *command.ChangeRoleHandler,
	toggleActiveHandler *command.ToggleActiveHandler,
	resetPasswordHandler *command.ResetPasswordHandler,
	changePasswordHandler *command.ChangePasswordHandler,
	getUserHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
	statsHandler *query.GetStatsHandler,
	loginLimiter *ratelimit.RateLimiter,
) *UserHandler {
	return &UserHandler{
		loginHandler:          loginHandler,
		createHandler:         createHandler,
		deleteHandler:         deleteHandler,
		changeRoleHandler:     changeRoleHandler,
		toggleActiveHandler:   toggleActiveHandler,
		resetPasswordHandler:  resetPasswordHandler,
		changePasswordHandler: changePasswordHandler,
		getUserHandler:        getUserHandler,
		listHandler:           listHandler,
		statsHandler:          statsHandler,
		loginLimiter:          loginLimiter,
	}
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	response, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		// A failed login is an authentication problem, not a permission one
		if errors.Is(err, apperr.ErrUnauthorized) {
			httpx.RespondMessage(w, http.StatusUnauthorized, err.Error())
			return
		}
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, "Login successful", response)
}

// GetProfile handles GET /users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: httpx.Session(r).UserID})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", user)
}

// ChangePassword handles PUT /users/me/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	err := h.changePasswordHandler.Handle(r.Context(), command.ChangePasswordCommand{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
		Actor:       httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "Password changed successfully", nil)
}

// --- ADMIN ENDPOINTS ---

// CreateUser handles POST /admin/users (admin only)
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	user, err := h.createHandler.Handle(r.Context(), command.CreateUserCommand{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		Actor:    httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondCreated(w, "User created successfully", user)
}

// GetUser handles GET /admin/users/{id} (admin only)
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: id})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", user)
}

// ListUsers handles GET /admin/users (admin only)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{
		Role:   r.URL.Query().Get("role"),
		Limit:  httpx.QueryInt(r, "limit", 0),
		Offset: httpx.QueryInt(r, "offset", 0),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", users)
}

// DeleteUser handles DELETE /admin/users/{id} (admin only)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteUserCommand{UserID: id, Actor: httpx.Session(r)}); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "User deleted successfully", nil)
}

// ChangeRole handles PUT /admin/users/{id}/role (admin only)
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	user, err := h.changeRoleHandler.Handle(r.Context(), command.ChangeRoleCommand{
		UserID: id,
		Role:   req.Role,
		Actor:  httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "Role updated successfully", user)
}

// ResetPassword handles PUT /admin/users/{id}/password (admin only)
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req struct {
		NewPassword string `json:"new_password"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	err = h.resetPasswordHandler.Handle(r.Context(), command.ResetPasswordCommand{
		UserID:      id,
		NewPassword: req.NewPassword,
		Actor:       httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "Password reset successfully", nil)
}

// ToggleActive handles PUT /admin/users/{id}/active (admin only)
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUint(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	user, err := h.toggleActiveHandler.Handle(r.Context(), command.ToggleActiveCommand{
		UserID:   id,
		IsActive: req.IsActive,
		Actor:    httpx.Session(r),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "User status updated", user)
}

// GetStats handles GET /admin/stats (admin only)
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondOK(w, "", stats)
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/auth/login", h.loginLimiter.Wrap(h.Login)).Methods("POST")

	// Authenticated user routes
	router.HandleFunc("/users/me", httpx.AuthMiddleware(h.GetProfile)).Methods("GET")
	router.HandleFunc("/users/me/password", httpx.AuthMiddleware(h.ChangePassword)).Methods("PUT")

	// Admin routes
	router.HandleFunc("/admin/users", httpx.AdminMiddleware(h.CreateUser)).Methods("POST")
	router.HandleFunc("/admin/users", httpx.AdminMiddleware(h.ListUsers)).Methods("GET")
	router.HandleFunc("/admin/users/{id}", httpx.AdminMiddleware(h.GetUser)).Methods("GET")
	router.HandleFunc("/admin/users/{id}", httpx.AdminMiddleware(h.DeleteUser)).Methods("DELETE")
	router.HandleFunc("/admin/users/{id}/role", httpx.AdminMiddleware(h.ChangeRole)).Methods("PUT")
	router.HandleFunc("/admin/users/{id}/password", httpx.AdminMiddleware(h.ResetPassword)).Methods("PUT")
	router.HandleFunc("/admin/users/{id}/active", httpx.AdminMiddleware(h.ToggleActive)).Methods("PUT")
	router.HandleFunc("/admin/stats", httpx.AdminMiddleware(h.GetStats)).Methods("GET")
}
