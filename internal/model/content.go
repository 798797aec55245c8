package model

import (
	"encoding/json"
	"time"
)

// 内容类型
const (
	ContentTypePost    = "post"
	ContentTypeTweet   = "tweet"
	ContentTypePhoto   = "photo"
	ContentTypeVideo   = "video"
	ContentTypeStory   = "story"
	ContentTypeArticle = "article"
	ContentTypeComment = "comment"
)

// Content 单条抓取内容，全局按 (platform, content_id) 去重
// 由采集侧写入一次，本服务只读 + 维护用户互动状态
type Content struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AccountID   string   `json:"accountId" gorm:"type:varchar(36);index:idx_content_account_published;not null"`
	Platform    string   `json:"platform" gorm:"type:varchar(16);index:ux_content_platform_remote,unique;index:idx_content_platform_published;not null"`
	ContentID   string   `json:"contentId" gorm:"type:varchar(255);index:ux_content_platform_remote,unique;not null"`
	ContentType string   `json:"contentType" gorm:"type:varchar(16);not null"`
	Text        string   `json:"text,omitempty" gorm:"type:text"`
	MediaURLs   []string `json:"mediaUrls,omitempty" gorm:"serializer:json"`
	MediaType   string   `json:"mediaType,omitempty" gorm:"type:varchar(16)"` // image | video | gif | audio | link | none
	Link        string   `json:"link,omitempty"`

	// PublishedAt 为排序权威时间；RetrievedAt 仅记录采集时刻
	PublishedAt time.Time `json:"publishedAt" gorm:"index:idx_content_account_published;index:idx_content_platform_published;not null"`
	RetrievedAt time.Time `json:"retrievedAt"`

	EngagementStats EngagementStats `json:"engagementStats" gorm:"serializer:json"`

	// RawData 源平台原始负载，不做校验原样透传
	RawData json.RawMessage `json:"rawData,omitempty"`

	Account      *Account          `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	Interactions []UserInteraction `json:"interactions,omitempty" gorm:"foreignKey:ContentID"`
}

func (Content) TableName() string { return "contents" }

// EngagementStats 平台侧互动计数（可选）
type EngagementStats struct {
	Likes    int64 `json:"likes,omitempty"`
	Comments int64 `json:"comments,omitempty"`
	Shares   int64 `json:"shares,omitempty"`
	Views    int64 `json:"views,omitempty"`
}
