package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/feedtamer/internal/model"
)

type InteractionRepository interface {
	// Upsert 字段级合并补丁：行不存在则先建空记录，只更新补丁中出现的字段
	Upsert(ctx context.Context, contentID, userID string, patch model.InteractionPatch) error
	Get(ctx context.Context, contentID, userID string) (*model.UserInteraction, error)
	// ReadStats 统计某账号内容被其 owner 阅读的比例（seen 行数 / 内容总数）
	ReadStats(ctx context.Context, userID, accountID string) (seen, total int64, err error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Upsert(ctx context.Context, contentID, userID string, patch model.InteractionPatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := &model.UserInteraction{ID: uuid.New().String(), ContentID: contentID, UserID: userID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "content_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(row).Error; err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]any{}
		if patch.Seen != nil {
			updates["seen"] = *patch.Seen
			if *patch.Seen {
				// 显式 seen=true 每次都重打时间戳
				updates["seen_at"] = now
			}
		}
		if patch.Saved != nil {
			updates["saved"] = *patch.Saved
			if *patch.Saved {
				updates["saved_at"] = now
			}
		}
		if f := patch.Interaction; f != nil {
			if f.Liked != nil {
				updates["liked"] = *f.Liked
			}
			if f.Commented != nil {
				updates["commented"] = *f.Commented
			}
			if f.Shared != nil {
				updates["shared"] = *f.Shared
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.UserInteraction{}).
			Where("content_id = ? AND user_id = ?", contentID, userID).
			Updates(updates).Error
	})
}

func (r *interactionRepository) Get(ctx context.Context, contentID, userID string) (*model.UserInteraction, error) {
	var it model.UserInteraction
	err := r.db.WithContext(ctx).
		Where("content_id = ? AND user_id = ?", contentID, userID).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *interactionRepository) ReadStats(ctx context.Context, userID, accountID string) (int64, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Content{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	var seen int64
	err := r.db.WithContext(ctx).Model(&model.UserInteraction{}).
		Joins("JOIN contents ON contents.id = user_interactions.content_id").
		Where("contents.account_id = ? AND user_interactions.user_id = ? AND user_interactions.seen = ?", accountID, userID, true).
		Count(&seen).Error
	return seen, total, err
}
