package model

import "time"

// UserInteraction 每用户对单条内容的阅读/收藏状态
// 独立表替代文档内嵌数组：(content_id, user_id) 唯一，无记录即未读未收藏
type UserInteraction struct {
	ID        string `json:"-" gorm:"primaryKey;type:varchar(36)"`
	ContentID string `json:"contentId" gorm:"type:varchar(36);index:ux_interaction_content_user,unique;not null"`
	UserID    string `json:"userId" gorm:"type:varchar(36);index:ux_interaction_content_user,unique;index:idx_interaction_user;not null"`

	Seen    bool       `json:"seen" gorm:"not null;default:false"`
	SeenAt  *time.Time `json:"seenAt,omitempty"`
	Saved   bool       `json:"saved" gorm:"not null;default:false"`
	SavedAt *time.Time `json:"savedAt,omitempty"`

	// 子标记按键浅合并：未出现的键保持原值（NULL 表示从未设置）
	Liked     *bool `json:"liked,omitempty"`
	Commented *bool `json:"commented,omitempty"`
	Shared    *bool `json:"shared,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (UserInteraction) TableName() string { return "user_interactions" }

// InteractionFlags 互动子标记补丁（仅应用出现的键）
type InteractionFlags struct {
	Liked     *bool `json:"liked,omitempty"`
	Commented *bool `json:"commented,omitempty"`
	Shared    *bool `json:"shared,omitempty"`
}

// InteractionPatch 字段级合并补丁，未出现的字段不变
type InteractionPatch struct {
	Seen        *bool             `json:"seen,omitempty"`
	Saved       *bool             `json:"saved,omitempty"`
	Interaction *InteractionFlags `json:"interaction,omitempty"`
}
