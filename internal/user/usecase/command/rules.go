package command

import (
	"fmt"

	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/auth"
)

func requireAdmin(actor auth.Session, action string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("only admins can %s: %w", action, apperr.ErrUnauthorized)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < auth.MinPasswordLength {
		return apperr.Validation(fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength))
	}
	return nil
}
