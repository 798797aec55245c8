package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/feedtamer/internal/model"
	"github.com/d60-Lab/feedtamer/internal/repository"
)

// InteractionService 用户互动账本：标记已读、收藏、子标记合并
type InteractionService interface {
	// Record 对 (content, user) 的互动记录应用字段级补丁并返回更新后的内容
	Record(ctx context.Context, contentID, userID string, patch model.InteractionPatch) (*model.Content, error)
	MarkSeen(ctx context.Context, contentID, userID string) (*model.Content, error)
	SetSaved(ctx context.Context, contentID, userID string, saved bool) (*model.Content, error)
}

type interactionService struct {
	contents     repository.ContentRepository
	interactions repository.InteractionRepository
	refresher    *StatsRefresher
}

func NewInteractionService(contents repository.ContentRepository, interactions repository.InteractionRepository, refresher *StatsRefresher) InteractionService {
	return &interactionService{contents: contents, interactions: interactions, refresher: refresher}
}

func (s *interactionService) Record(ctx context.Context, contentID, userID string, patch model.InteractionPatch) (*model.Content, error) {
	content, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Upsert 落库成功后才返回，互动不允许 fire-and-forget
	if err := s.interactions.Upsert(ctx, contentID, userID, patch); err != nil {
		return nil, err
	}
	if s.refresher != nil && patch.Seen != nil {
		s.refresher.Enqueue(userID, content.AccountID)
	}
	return s.contents.GetForUser(ctx, contentID, userID)
}

func (s *interactionService) MarkSeen(ctx context.Context, contentID, userID string) (*model.Content, error) {
	seen := true
	return s.Record(ctx, contentID, userID, model.InteractionPatch{Seen: &seen})
}

func (s *interactionService) SetSaved(ctx context.Context, contentID, userID string, saved bool) (*model.Content, error) {
	return s.Record(ctx, contentID, userID, model.InteractionPatch{Saved: &saved})
}
