package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/feedtamer/internal/model"
)

func TestAccountUniquePerOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com")
	first := &model.Account{UserID: user.ID, Platform: model.PlatformTwitter, AccountID: "remote-1", Username: "remote-1"}
	require.NoError(t, repo.Create(ctx, first))

	dup := &model.Account{UserID: user.ID, Platform: model.PlatformTwitter, AccountID: "remote-1", Username: "remote-1"}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	// 另一个用户可以关注同一个远端账号
	other := seedUser(t, db, "other@example.com")
	again := &model.Account{UserID: other.ID, Platform: model.PlatformTwitter, AccountID: "remote-1", Username: "remote-1"}
	require.NoError(t, repo.Create(ctx, again))
}

func TestListActiveExcludesDeactivated(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com")
	keep := seedAccount(t, db, user.ID, model.PlatformTwitter, "keep")
	drop := seedAccount(t, db, user.ID, model.PlatformReddit, "drop")

	require.NoError(t, repo.Deactivate(ctx, user.ID, drop.ID))

	accounts, err := repo.ListActive(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, keep.ID, accounts[0].ID)
}

func TestFindOwnedHidesForeignAndInactive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	account := seedAccount(t, db, owner.ID, model.PlatformTwitter, "acc1")

	got, err := repo.FindOwned(ctx, owner.ID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)

	// 非本人与已停用账号对调用方不可区分：都是 not found
	_, err = repo.FindOwned(ctx, stranger.ID, account.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, repo.Deactivate(ctx, owner.ID, account.ID))
	_, err = repo.FindOwned(ctx, owner.ID, account.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestPinnedOrderPerUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	a1 := seedAccount(t, db, alice.ID, model.PlatformTwitter, "a1")
	a2 := seedAccount(t, db, alice.ID, model.PlatformReddit, "a2")
	b1 := seedAccount(t, db, bob.ID, model.PlatformTwitter, "b1")

	pinned, err := repo.Pin(ctx, alice.ID, a1.ID)
	require.NoError(t, err)
	require.NotNil(t, pinned.PinnedOrder)
	assert.Equal(t, 1, *pinned.PinnedOrder)

	pinned, err = repo.Pin(ctx, alice.ID, a2.ID)
	require.NoError(t, err)
	require.NotNil(t, pinned.PinnedOrder)
	assert.Equal(t, 2, *pinned.PinnedOrder)

	// 序号按用户独立
	pinned, err = repo.Pin(ctx, bob.ID, b1.ID)
	require.NoError(t, err)
	require.NotNil(t, pinned.PinnedOrder)
	assert.Equal(t, 1, *pinned.PinnedOrder)
}

func TestPinIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com")
	account := seedAccount(t, db, user.ID, model.PlatformTwitter, "acc1")

	first, err := repo.Pin(ctx, user.ID, account.ID)
	require.NoError(t, err)
	again, err := repo.Pin(ctx, user.ID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, *first.PinnedOrder, *again.PinnedOrder)
}

func TestUnpinClearsOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com")
	account := seedAccount(t, db, user.ID, model.PlatformTwitter, "acc1")

	_, err := repo.Pin(ctx, user.ID, account.ID)
	require.NoError(t, err)

	unpinned, err := repo.Unpin(ctx, user.ID, account.ID)
	require.NoError(t, err)
	assert.False(t, unpinned.Pinned)
	assert.Nil(t, unpinned.PinnedOrder)
}
