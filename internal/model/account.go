package model

import "time"

// 支持的外部平台
const (
	PlatformTwitter   = "twitter"
	PlatformInstagram = "instagram"
	PlatformYouTube   = "youtube"
	PlatformReddit    = "reddit"
	PlatformLinkedIn  = "linkedin"
)

// Platforms 全部合法平台名
var Platforms = []string{PlatformTwitter, PlatformInstagram, PlatformYouTube, PlatformReddit, PlatformLinkedIn}

// ValidPlatform 校验平台名
func ValidPlatform(p string) bool {
	for _, v := range Platforms {
		if v == p {
			return true
		}
	}
	return false
}

// Account 用户关注的外部平台账号（is_active=false 软删除，保留 feed 历史）
// 复合唯一键 (user_id, platform, account_id) 避免重复关注
type Account struct {
	ID             string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string `json:"userId" gorm:"type:varchar(36);index:idx_account_user;index:idx_account_owner_remote,unique;not null"`
	Platform       string `json:"platform" gorm:"type:varchar(16);index:idx_account_platform;index:idx_account_owner_remote,unique;not null"`
	AccountID      string `json:"accountId" gorm:"type:varchar(255);index:idx_account_owner_remote,unique;not null"`
	Username       string `json:"username" gorm:"type:varchar(255);not null"`
	DisplayName    string `json:"displayName,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Description    string `json:"description,omitempty"`
	Category       string `json:"category,omitempty"`

	FollowerCount  int64 `json:"followerCount,omitempty"`
	FollowingCount int64 `json:"followingCount,omitempty"`
	PostCount      int64 `json:"postCount,omitempty"`
	IsVerified     bool  `json:"isVerified"`

	IsActive bool `json:"isActive" gorm:"not null;default:true"`

	// 置顶账号必须带 PinnedOrder（每用户从 1 开始连续递增）
	Pinned      bool `json:"pinned" gorm:"not null;default:false"`
	PinnedOrder *int `json:"pinnedOrder,omitempty"`

	NotificationSettings NotificationSettings `json:"notificationSettings" gorm:"serializer:json"`
	Stats                AccountStats         `json:"stats" gorm:"serializer:json"`
	UserNotes            string               `json:"userNotes,omitempty"`

	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}

func (Account) TableName() string { return "accounts" }

// AccountRef 账号快照（feed 组装与缓存用的最小字段集）
type AccountRef struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
}

// Ref 取账号快照
func (a *Account) Ref() AccountRef {
	return AccountRef{ID: a.ID, Platform: a.Platform}
}

// NotificationSettings 账号级通知偏好
type NotificationSettings struct {
	Enabled   bool   `json:"enabled"`
	Frequency string `json:"frequency,omitempty"` // all | daily | none
}

// AccountStats 账号维度的缓存统计（异步刷新，非权威数据）
type AccountStats struct {
	AveragePostsPerWeek   float64    `json:"averagePostsPerWeek,omitempty"`
	AverageEngagementRate float64    `json:"averageEngagementRate,omitempty"`
	ReadPercentage        float64    `json:"readPercentage,omitempty"`
	LastInteraction       *time.Time `json:"lastInteraction,omitempty"`
}
