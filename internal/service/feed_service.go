package service

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/d60-Lab/feedtamer/internal/model"
	"github.com/d60-Lab/feedtamer/internal/repository"
)

// AccountDirectory 提供用户活跃账号快照（缓存实现见 internal/cache）
type AccountDirectory interface {
	Snapshot(ctx context.Context, userID string) ([]model.AccountRef, error)
}

// FeedOptions feed 过滤条件，各项独立可选
type FeedOptions struct {
	Limit       int    // 默认 20
	Skip        int    // 默认 0
	Platform    string // 为空不限平台，非法平台名按缺省处理
	OnlySaved   bool
	IncludeRead bool
	MaxAge      int // 天数，0 不限
}

func (o FeedOptions) normalized() FeedOptions {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Skip < 0 {
		o.Skip = 0
	}
	if o.Platform != "" && !model.ValidPlatform(o.Platform) {
		o.Platform = ""
	}
	if o.MaxAge < 0 {
		o.MaxAge = 0
	}
	return o
}

// FeedService 聚合 feed：合并多账号内容，按 published_at 倒序分页
type FeedService interface {
	AssembleFeed(ctx context.Context, userID string, opts FeedOptions) ([]*model.Content, error)
	// FeedByPlatform 按平台分组，每个平台独立查询（只读，可并行）；Limit 为每平台条数，默认 10
	FeedByPlatform(ctx context.Context, userID string, opts FeedOptions) (map[string][]*model.Content, error)
	SavedFeed(ctx context.Context, userID string, opts FeedOptions) ([]*model.Content, error)
	// AccountFeed 单账号视图；非本人或已停用账号一律 ErrNotFound
	AccountFeed(ctx context.Context, userID, accountID string, opts FeedOptions) (*model.Account, []*model.Content, error)
}

type feedService struct {
	directory AccountDirectory
	accounts  repository.AccountRepository
	contents  repository.ContentRepository
}

func NewFeedService(directory AccountDirectory, accounts repository.AccountRepository, contents repository.ContentRepository) FeedService {
	return &feedService{directory: directory, accounts: accounts, contents: contents}
}

func (s *feedService) AssembleFeed(ctx context.Context, userID string, opts FeedOptions) ([]*model.Content, error) {
	opts = opts.normalized()
	refs, err := s.directory.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	// 没有关注任何账号：直接空结果，不查内容库
	if len(refs) == 0 {
		return []*model.Content{}, nil
	}
	ids := make([]string, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}
	return s.contents.Feed(ctx, repository.FeedQuery{
		UserID:      userID,
		AccountIDs:  ids,
		Platform:    opts.Platform,
		OnlySaved:   opts.OnlySaved,
		IncludeRead: opts.IncludeRead,
		MaxAge:      opts.MaxAge,
		Limit:       opts.Limit,
		Skip:        opts.Skip,
	})
}

func (s *feedService) FeedByPlatform(ctx context.Context, userID string, opts FeedOptions) (map[string][]*model.Content, error) {
	// 分组视图每平台默认 10 条，与统一 feed 的 20 不同
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	opts = opts.normalized()
	refs, err := s.directory.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make(map[string][]*model.Content)
	if len(refs) == 0 {
		return result, nil
	}

	ids := make([]string, len(refs))
	platformSet := make(map[string]struct{})
	for i, ref := range refs {
		ids[i] = ref.ID
		platformSet[ref.Platform] = struct{}{}
	}

	// 各平台查询互不依赖，并行执行后统一汇总
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for platform := range platformSet {
		wg.Add(1)
		go func(platform string) {
			defer wg.Done()
			content, err := s.contents.Feed(ctx, repository.FeedQuery{
				UserID:      userID,
				AccountIDs:  ids,
				Platform:    platform,
				IncludeRead: opts.IncludeRead,
				MaxAge:      opts.MaxAge,
				Limit:       opts.Limit,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			result[platform] = content
		}(platform)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

func (s *feedService) SavedFeed(ctx context.Context, userID string, opts FeedOptions) ([]*model.Content, error) {
	opts.OnlySaved = true
	return s.AssembleFeed(ctx, userID, opts)
}

func (s *feedService) AccountFeed(ctx context.Context, userID, accountID string, opts FeedOptions) (*model.Account, []*model.Content, error) {
	opts = opts.normalized()
	account, err := s.accounts.FindOwned(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	content, err := s.contents.Feed(ctx, repository.FeedQuery{
		UserID:      userID,
		AccountIDs:  []string{account.ID},
		IncludeRead: opts.IncludeRead,
		Limit:       opts.Limit,
		Skip:        opts.Skip,
	})
	if err != nil {
		return nil, nil, err
	}
	return account, content, nil
}
