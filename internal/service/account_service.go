package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/feedtamer/internal/model"
	"github.com/d60-Lab/feedtamer/internal/repository"
)

var (
	ErrAlreadyFollowed = errors.New("account already followed")
	ErrBadPlatform     = errors.New("unknown platform")
)

// FollowInput 关注一个外部平台账号
type FollowInput struct {
	Platform       string `json:"platform" binding:"required,platform"`
	AccountID      string `json:"accountId" binding:"required"`
	Username       string `json:"username" binding:"required"`
	DisplayName    string `json:"displayName"`
	ProfilePicture string `json:"profilePicture"`
	Description    string `json:"description"`
	Category       string `json:"category"`
}

// Invalidator 账号集合变更后的缓存失效钩子
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// AccountService 账号目录：关注、查询、停用、置顶、通知设置
type AccountService interface {
	Follow(ctx context.Context, userID string, in FollowInput) (*model.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]*model.Account, error)
	GetAccount(ctx context.Context, userID, accountID string) (*model.Account, error)
	// Unfollow 软删除（is_active=false），保留 feed 历史
	Unfollow(ctx context.Context, userID, accountID string) error
	Pin(ctx context.Context, userID, accountID string) (*model.Account, error)
	Unpin(ctx context.Context, userID, accountID string) (*model.Account, error)
	UpdateNotifications(ctx context.Context, userID, accountID string, s model.NotificationSettings) (*model.Account, error)
}

type accountService struct {
	accounts    repository.AccountRepository
	invalidator Invalidator
}

func NewAccountService(accounts repository.AccountRepository, invalidator Invalidator) AccountService {
	return &accountService{accounts: accounts, invalidator: invalidator}
}

func (s *accountService) invalidate(ctx context.Context, userID string) {
	if s.invalidator != nil {
		_ = s.invalidator.Invalidate(ctx, userID)
	}
}

func (s *accountService) Follow(ctx context.Context, userID string, in FollowInput) (*model.Account, error) {
	if !model.ValidPlatform(in.Platform) {
		return nil, ErrBadPlatform
	}
	account := &model.Account{
		UserID:         userID,
		Platform:       in.Platform,
		AccountID:      in.AccountID,
		Username:       in.Username,
		DisplayName:    in.DisplayName,
		ProfilePicture: in.ProfilePicture,
		Description:    in.Description,
		Category:       in.Category,
		NotificationSettings: model.NotificationSettings{
			Enabled:   true,
			Frequency: "all",
		},
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowed
		}
		return nil, err
	}
	s.invalidate(ctx, userID)
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]*model.Account, error) {
	return s.accounts.ListActive(ctx, userID)
}

func (s *accountService) GetAccount(ctx context.Context, userID, accountID string) (*model.Account, error) {
	account, err := s.accounts.FindOwned(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) Unfollow(ctx context.Context, userID, accountID string) error {
	if err := s.accounts.Deactivate(ctx, userID, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *accountService) Pin(ctx context.Context, userID, accountID string) (*model.Account, error) {
	account, err := s.accounts.Pin(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) Unpin(ctx context.Context, userID, accountID string) (*model.Account, error) {
	account, err := s.accounts.Unpin(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) UpdateNotifications(ctx context.Context, userID, accountID string, n model.NotificationSettings) (*model.Account, error) {
	account, err := s.accounts.UpdateNotificationSettings(ctx, userID, accountID, n)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}
