package model

import "time"

// User 应用用户（active=false 软删除，任何身份查询都必须显式过滤）
type User struct {
	ID                string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email             string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password          string     `json:"-" gorm:"type:varchar(255);not null"`
	Name              string     `json:"name" gorm:"type:varchar(255);not null"`
	ProfilePicture    string     `json:"profilePicture,omitempty"`
	Preferences       UserPrefs  `json:"preferences" gorm:"serializer:json"`
	// PinSequence 置顶序号计数器（原子自增，替代 max+1 重查）
	PinSequence       int64      `json:"-" gorm:"not null;default:0"`
	Active            bool       `json:"-" gorm:"not null;default:true"`
	PasswordChangedAt *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"-"`
}

func (User) TableName() string { return "users" }

// UserPrefs 界面与 feed 偏好
type UserPrefs struct {
	Theme         string `json:"theme,omitempty"`         // light | dark | system
	DefaultView   string `json:"defaultView,omitempty"`   // unified | platform
	ContentOrder  string `json:"contentOrder,omitempty"`  // chronological | platform
	ShowReadPosts bool   `json:"showReadPosts"`
}

// ChangedPasswordAfter 判断改密时间是否晚于 token 签发时间
// JWT iat 只有秒级精度，比较按秒对齐：改密前一秒及更早签发的 token 作废，
// 与改密落在同一秒的（改密后新签发的）不作废
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	return u.PasswordChangedAt != nil && issuedAt.Unix() < u.PasswordChangedAt.Truncate(time.Second).Unix()
}
