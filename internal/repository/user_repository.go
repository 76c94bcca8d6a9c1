package repository

import (
	"context"

	"gorm.io/gorm"

	"complaint-service/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role model.UserRole) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

// GetRole reads only the role column; the admin gate re-checks it against
// the database rather than trusting the token.
func (r *UserRepository) GetRole(ctx context.Context, id int64) (model.UserRole, error) {
	var role model.UserRole
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("role").
		Where("id = ?", id).
		Scan(&role).Error
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", gorm.ErrRecordNotFound
	}
	return role, nil
}
