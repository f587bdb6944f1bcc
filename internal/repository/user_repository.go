package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "profilehub/internal/errors"
	"profilehub/internal/model"
)

// mysqlDuplicateEntry is the server error number for a unique index violation.
const mysqlDuplicateEntry = 1062

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (uuid.UUID, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByID never returns the password hash.
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	if err := user.Validate(); err != nil {
		return uuid.Nil, err
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return uuid.Nil, translateError(err)
	}
	return user.ID, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Omit("password_hash").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return user.Sanitized(), nil
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", apperrors.ErrDuplicateUser, err)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("%w: %v", apperrors.ErrDuplicateUser, err)
	}
	return fmt.Errorf("user store: %w", err)
}
