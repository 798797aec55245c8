package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/feedtamer/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// GetActive 按 ID 查活跃用户（软删除用户视为不存在）
	GetActive(ctx context.Context, id string) (*model.User, error)
	// GetActiveByEmail 登录入口，同样只认活跃用户
	GetActiveByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id, hashed string) error
	Deactivate(ctx context.Context, id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

// activeUsers 显式活跃过滤，所有按身份读取的入口都必须走这里
func activeUsers(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Active = true
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetActive(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := activeUsers(r.db.WithContext(ctx)).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := activeUsers(r.db.WithContext(ctx)).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, hashed string) error {
	// 秒级对齐的失效判断在 User.ChangedPasswordAfter，这里存真实时刻即可
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"password": hashed, "password_changed_at": time.Now()}).Error
}

func (r *userRepository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("active", false).Error
}
