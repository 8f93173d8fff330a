package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tair/supply-manager/internal/user/domain"
	"github.com/tair/supply-manager/pkg/apperr"
	"github.com/tair/supply-manager/pkg/database"
)

// GormUserRepository implements UserRepository interface using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user into the database
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", database.ClassifyError(err))
	}
	return nil
}

// FindByID retrieves a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("user %d", id))
	}
	return &user, nil
}

// FindByUsername retrieves a user by username, ignoring case
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&user).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("user %q", username))
	}
	return &user, nil
}

func filterScope(filter domain.UserFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.Role != "" {
			q = q.Where("role = ?", filter.Role)
		}
		if filter.ActiveOnly {
			q = q.Where("is_active = ?", true)
		}
		return q
	}
}

// List retrieves users ordered by username
func (r *GormUserRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	query := r.db.WithContext(ctx).Scopes(filterScope(filter)).Order("username")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var users []domain.User
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", database.ClassifyError(err))
	}
	return users, nil
}

// Count returns the number of users matching filter
func (r *GormUserRepository) Count(ctx context.Context, filter domain.UserFilter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Scopes(filterScope(filter)).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", database.ClassifyError(err))
	}
	return count, nil
}

// Update saves the mutable columns of user
func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	res := r.db.WithContext(ctx).Model(user).
		Select("password", "full_name", "role", "is_active").
		Updates(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", database.ClassifyError(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", user.ID, apperr.ErrNotFound)
	}
	return nil
}

// Delete soft-deletes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", database.ClassifyError(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	}
	return fmt.Errorf("failed to find %s: %w", what, database.ClassifyError(err))
}
