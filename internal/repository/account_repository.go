package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/feedtamer/internal/model"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	// ListActive 用户当前关注的活跃账号（置顶优先）
	ListActive(ctx context.Context, userID string) ([]*model.Account, error)
	// FindOwned 只认「本人拥有且活跃」，其余一律 ErrRecordNotFound
	FindOwned(ctx context.Context, userID, accountID string) (*model.Account, error)
	Deactivate(ctx context.Context, userID, accountID string) error
	// Pin 置顶并分配序号：首个置顶为 1，之后取用户计数器自增值
	Pin(ctx context.Context, userID, accountID string) (*model.Account, error)
	Unpin(ctx context.Context, userID, accountID string) (*model.Account, error)
	UpdateNotificationSettings(ctx context.Context, userID, accountID string, s model.NotificationSettings) (*model.Account, error)
	UpdateStats(ctx context.Context, accountID string, stats model.AccountStats) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository { return &accountRepository{db: db} }

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.IsActive = true
	if account.LastUpdated.IsZero() {
		account.LastUpdated = time.Now()
	}
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) ListActive(ctx context.Context, userID string) ([]*model.Account, error) {
	var res []*model.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("pinned DESC, pinned_order ASC, created_at ASC").
		Find(&res).Error
	return res, err
}

func (r *accountRepository) FindOwned(ctx context.Context, userID, accountID string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active = ?", accountID, userID, true).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Deactivate(ctx context.Context, userID, accountID string) error {
	res := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ? AND user_id = ? AND is_active = ?", accountID, userID, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *accountRepository) Pin(ctx context.Context, userID, accountID string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ? AND is_active = ?", accountID, userID, true).
			First(&account).Error; err != nil {
			return err
		}
		if account.Pinned {
			return nil
		}
		// 计数器原子自增，并发置顶不会分到相同序号
		if err := tx.Model(&model.User{}).Where("id = ?", userID).
			UpdateColumn("pin_sequence", gorm.Expr("pin_sequence + 1")).Error; err != nil {
			return err
		}
		var seq int64
		if err := tx.Model(&model.User{}).Where("id = ?", userID).
			Select("pin_sequence").Scan(&seq).Error; err != nil {
			return err
		}
		order := int(seq)
		account.Pinned = true
		account.PinnedOrder = &order
		return tx.Model(&model.Account{}).Where("id = ?", account.ID).
			Updates(map[string]any{"pinned": true, "pinned_order": order}).Error
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Unpin(ctx context.Context, userID, accountID string) (*model.Account, error) {
	account, err := r.FindOwned(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if !account.Pinned {
		return account, nil
	}
	err = r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", account.ID).
		Updates(map[string]any{"pinned": false, "pinned_order": nil}).Error
	if err != nil {
		return nil, err
	}
	account.Pinned = false
	account.PinnedOrder = nil
	return account, nil
}

func (r *accountRepository) UpdateNotificationSettings(ctx context.Context, userID, accountID string, s model.NotificationSettings) (*model.Account, error) {
	account, err := r.FindOwned(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	account.NotificationSettings = s
	if err := r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", account.ID).
		Update("notification_settings", s).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) UpdateStats(ctx context.Context, accountID string, stats model.AccountStats) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]any{"stats": stats, "last_updated": time.Now()}).Error
}
