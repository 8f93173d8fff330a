package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tair/supply-manager/pkg/auth"
)

// Role types
const (
	RoleAdmin   = auth.RoleAdmin
	RoleStaff   = auth.RoleStaff
	RoleStudent = auth.RoleStudent
)

// User is an account of the supply room
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Username  string         `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"` // bcrypt hash
	FullName  string         `json:"full_name" gorm:"size:100"`
	Role      string         `json:"role" gorm:"size:20;not null;index"`
	IsActive  bool           `json:"is_active" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session is the authenticated view of the user
func (u *User) Session() auth.Session {
	return auth.Session{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// UserFilter narrows user listings; zero values mean "any"
type UserFilter struct {
	Role       string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
}
