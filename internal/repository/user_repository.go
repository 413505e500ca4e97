package repository

import (
	"context"
	"errors"

	"taskmanager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListTeam(ctx context.Context, search string) ([]model.User, error)
	ListRecentActive(ctx context.Context, limit int) ([]model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Omit("Tasks").Create(user).Error
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListTeam returns every user, optionally narrowed by a case-insensitive
// match on title, name, role or email
func (r *UserRepository) ListTeam(ctx context.Context, search string) ([]model.User, error) {
	q := r.db.WithContext(ctx).Select("id", "name", "title", "role", "email", "is_active")
	if search != "" {
		pattern := "%" + escapeLike(search) + "%"
		q = q.Where("(title ILIKE ? OR name ILIKE ? OR role ILIKE ? OR email ILIKE ?)", pattern, pattern, pattern, pattern)
	}

	var users []model.User
	if err := q.Order("name").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListRecentActive returns the most recently created active users
func (r *UserRepository) ListRecentActive(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "title", "role", "is_active", "created_at").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// UpdateProfile saves name, title and role
func (r *UserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{ID: user.ID}).
		Select("name", "title", "role").
		Updates(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return r.updateColumn(ctx, id, "hashed_password", hashedPassword)
}

func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.updateColumn(ctx, id, "is_active", active)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
