package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/feedtamer/internal/model"
)

// FeedQuery feed 查询条件的合取：账号集合 ∧ 平台 ∧ 时效 ∧ 收藏 ∧ 未读
type FeedQuery struct {
	UserID      string
	AccountIDs  []string
	Platform    string // 为空则不限平台
	OnlySaved   bool
	IncludeRead bool
	MaxAge      int // 天数，0 表示不限
	Limit       int
	Skip        int
}

type ContentRepository interface {
	// Create 写入一条内容，(platform, content_id) 全局唯一，重复写入报错
	Create(ctx context.Context, content *model.Content) error
	GetByID(ctx context.Context, id string) (*model.Content, error)
	// GetForUser 带上调用方自己的互动记录
	GetForUser(ctx context.Context, id, userID string) (*model.Content, error)
	// Feed 按 published_at 倒序返回（id 倒序兜底，保证分页稳定）
	Feed(ctx context.Context, q FeedQuery) ([]*model.Content, error)
	CountByAccount(ctx context.Context, accountID string) (int64, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository { return &contentRepository{db: db} }

func (r *contentRepository) Create(ctx context.Context, content *model.Content) error {
	if content.ID == "" {
		content.ID = uuid.New().String()
	}
	if content.RetrievedAt.IsZero() {
		content.RetrievedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepository) GetByID(ctx context.Context, id string) (*model.Content, error) {
	var content model.Content
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) GetForUser(ctx context.Context, id, userID string) (*model.Content, error) {
	var content model.Content
	err := r.db.WithContext(ctx).
		Preload("Account").
		Preload("Interactions", "user_id = ?", userID).
		Where("id = ?", id).
		First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) Feed(ctx context.Context, q FeedQuery) ([]*model.Content, error) {
	// 空账号集直接返回，不打全表扫描
	if len(q.AccountIDs) == 0 {
		return []*model.Content{}, nil
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	skip := q.Skip
	if skip < 0 {
		skip = 0
	}

	db := r.db.WithContext(ctx).Model(&model.Content{}).
		Where("account_id IN ?", q.AccountIDs)
	if q.Platform != "" {
		db = db.Where("platform = ?", q.Platform)
	}
	if q.MaxAge > 0 {
		db = db.Where("published_at >= ?", time.Now().AddDate(0, 0, -q.MaxAge))
	}
	if q.OnlySaved {
		db = db.Where(`EXISTS (
			SELECT 1 FROM user_interactions ui
			WHERE ui.content_id = contents.id AND ui.user_id = ? AND ui.saved = ?)`, q.UserID, true)
	}
	if !q.IncludeRead {
		// 无互动记录即未读
		db = db.Where(`NOT EXISTS (
			SELECT 1 FROM user_interactions ui
			WHERE ui.content_id = contents.id AND ui.user_id = ? AND ui.seen = ?)`, q.UserID, true)
	}

	var res []*model.Content
	err := db.
		Order("published_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Preload("Account").
		Preload("Interactions", "user_id = ?", q.UserID).
		Find(&res).Error
	return res, err
}

func (r *contentRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Content{}).
		Where("account_id = ?", accountID).
		Count(&cnt).Error
	return cnt, err
}
