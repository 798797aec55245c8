package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/feedtamer/internal/model"
)

func TestContentUniquePerPlatform(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com")
	account := seedAccount(t, db, user.ID, model.PlatformTwitter, "acc1")

	first := &model.Content{AccountID: account.ID, Platform: model.PlatformTwitter, ContentID: "tw-1", ContentType: model.ContentTypeTweet, PublishedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, first))

	// 同 (platform, content_id) 再插必须失败，与关注人数无关
	dup := &model.Content{AccountID: account.ID, Platform: model.PlatformTwitter, ContentID: "tw-1", ContentType: model.ContentTypeTweet, PublishedAt: time.Now()}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestFeedOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com")
	account := seedAccount(t, db, user.ID, model.PlatformTwitter, "acc1")

	base := time.Now().Truncate(time.Second)
	var ids []string
	for i := 3; i >= 0; i-- { // 乱序插入
		c := seedContent(t, db, account.ID, model.PlatformTwitter, fmt.Sprintf("tw-%d", i), base.Add(-time.Duration(i)*time.Hour))
		ids = append(ids, c.ID)
	}

	got, err := repo.Feed(ctx, FeedQuery{UserID: user.ID, AccountIDs: []string{account.ID}, IncludeRead: true})
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].PublishedAt.After(got[i-1].PublishedAt), "feed must be newest first")
	}
	assert.Equal(t, "tw-0", got[0].ContentID)
	assert.Equal(t, "tw-3", got[3].ContentID)
}

func TestFeedEmptyAccountSet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)

	got, err := repo.Feed(context.Background(), FeedQuery{UserID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFeedUnreadSemantics(t *testing.T) {
	db := setupTestDB(t)
	contentRepo := NewContentRepository(db)
	interactionRepo := NewInteractionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com")
	account := seedAccount(t, db, user.ID, model.PlatformTwitter, "acc1")
	now := time.Now()
	untouched := seedContent(t, db, account.ID, model.PlatformTwitter, "tw-1", now)
	seenContent := seedContent(t, db, account.ID, model.PlatformTwitter, "tw-2", now.Add(-time.Minute))
	unseenEntry := seedContent(t, db, account.ID, model.PlatformTwitter, "tw-3", now.Add(-2*time.Minute))

	seen := true
	require.NoError(t, interactionRepo.Upsert(ctx, seenContent.ID, user.ID, model.InteractionPatch{Seen: &seen}))
	saved := true // 有记录但 seen=false：仍算未读
	require.NoError(t, interactionRepo.Upsert(ctx, unseenEntry.ID, user.ID, model.InteractionPatch{Saved: &saved}))

	got, err := contentRepo.Feed(ctx, FeedQuery{UserID: user.ID, AccountIDs: []string{account.ID}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, untouched.ID, got[0].ID)
	assert.Equal(t, unseenEntry.ID, got[1].ID)

	// includeRead=true 时三条都在
	all, err := contentRepo.Feed(ctx, FeedQuery{UserID: user.ID, AccountIDs: []string{account.ID}, IncludeRead: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFeedOnlySavedIntersectsUnread(t *testing.T) {
	db := setupTestDB(t)
	contentRepo := NewContentRepository(db)
	interactionRepo := NewInteractionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com")
	account := seedAccount(t, db, user.ID, model.PlatformTwitter, "acc1")
	now := time.Now()
	savedUnseen := seedContent(t, db, account.ID, model.PlatformTwitter, "tw-1", now)
	savedSeen := seedContent(t, db, account.ID, model.PlatformTwitter, "tw-2", now.Add(-time.Minute))
	seedContent(t, db, account.ID, model.PlatformTwitter, "tw-3", now.Add(-2*time.Minute))

	boolTrue := true
	require.NoError(t, interactionRepo.Upsert(ctx, savedUnseen.ID, user.ID, model.InteractionPatch{Saved: &boolTrue}))
	require.NoError(t, interactionRepo.Upsert(ctx, savedSeen.ID, user.ID, model.InteractionPatch{Saved: &boolTrue, Seen: &boolTrue}))

	// saved ∧ 未读：seen 与 saved 是独立标记，取交集
	got, err := contentRepo.Feed(ctx, FeedQuery{UserID: user.ID, AccountIDs: []string{account.ID}, OnlySaved: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, savedUnseen.ID, got[0].ID)

	// saved 全量
	got, err = contentRepo.Feed(ctx, FeedQuery{UserID: user.ID, AccountIDs: []string{account.ID}, OnlySaved: true, IncludeRead: true})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFeedPlatformAndMaxAge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com")
	twitter := seedAccount(t, db, user.ID, model.PlatformTwitter, "acc-tw")
	insta := seedAccount(t, db, user.ID, model.PlatformInstagram, "acc-ig")

	now := time.Now()
	fresh := seedContent(t, db, twitter.ID, model.PlatformTwitter, "tw-1", now.Add(-24*time.Hour))
	seedContent(t, db, twitter.ID, model.PlatformTwitter, "tw-old", now.Add(-10*24*time.Hour))
	seedContent(t, db, insta.ID, model.PlatformInstagram, "ig-1", now)

	accountIDs := []string{twitter.ID, insta.ID}

	got, err := repo.Feed(ctx, FeedQuery{UserID: user.ID, AccountIDs: accountIDs, Platform: model.PlatformTwitter, IncludeRead: true})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = repo.Feed(ctx, FeedQuery{UserID: user.ID, AccountIDs: accountIDs, Platform: model.PlatformTwitter, MaxAge: 3, IncludeRead: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fresh.ID, got[0].ID)
}

func TestFeedPaginationStable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com")
	account := seedAccount(t, db, user.ID, model.PlatformReddit, "acc1")

	// 相同 published_at，靠 id 兜底保证翻页不重不漏
	ts := time.Now().Truncate(time.Second)
	for i := 0; i < 10; i++ {
		seedContent(t, db, account.ID, model.PlatformReddit, fmt.Sprintf("rd-%d", i), ts)
	}

	seenIDs := make(map[string]bool)
	for skip := 0; skip < 10; skip += 3 {
		page, err := repo.Feed(ctx, FeedQuery{UserID: user.ID, AccountIDs: []string{account.ID}, IncludeRead: true, Limit: 3, Skip: skip})
		require.NoError(t, err)
		for _, c := range page {
			assert.False(t, seenIDs[c.ID], "content %s appeared twice across pages", c.ID)
			seenIDs[c.ID] = true
		}
	}
	assert.Len(t, seenIDs, 10)
}

func TestGetForUserAttachesOwnInteractionOnly(t *testing.T) {
	db := setupTestDB(t)
	contentRepo := NewContentRepository(db)
	interactionRepo := NewInteractionRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	account := seedAccount(t, db, owner.ID, model.PlatformYouTube, "acc1")
	content := seedContent(t, db, account.ID, model.PlatformYouTube, "yt-1", time.Now())

	boolTrue := true
	require.NoError(t, interactionRepo.Upsert(ctx, content.ID, owner.ID, model.InteractionPatch{Seen: &boolTrue}))
	require.NoError(t, interactionRepo.Upsert(ctx, content.ID, other.ID, model.InteractionPatch{Saved: &boolTrue}))

	got, err := contentRepo.GetForUser(ctx, content.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.Interactions, 1)
	assert.Equal(t, owner.ID, got.Interactions[0].UserID)
	assert.True(t, got.Interactions[0].Seen)
}

func BenchmarkFeed(b *testing.B) {
	db, err := setupBenchDB()
	if err != nil {
		b.Fatalf("open db: %v", err)
	}
	repo := NewContentRepository(db)
	ctx := context.Background()

	accountID := "bench-account"
	if err := db.Create(&model.Account{ID: accountID, UserID: "bench-user", Platform: model.PlatformTwitter, AccountID: "remote", Username: "remote", IsActive: true}).Error; err != nil {
		b.Fatalf("seed account: %v", err)
	}
	now := time.Now()
	for i := 0; i < 2000; i++ {
		c := model.Content{AccountID: accountID, Platform: model.PlatformTwitter, ContentID: fmt.Sprintf("tw-%d", i), ContentType: model.ContentTypeTweet, PublishedAt: now.Add(-time.Duration(i) * time.Minute)}
		if err := repo.Create(ctx, &c); err != nil {
			b.Fatalf("seed content: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = repo.Feed(ctx, FeedQuery{UserID: "bench-user", AccountIDs: []string{accountID}, IncludeRead: true})
	}
}
