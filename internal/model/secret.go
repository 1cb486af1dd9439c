package model

import (
	"time"

	"gorm.io/gorm"
)

// 密钥 JSON 中的凭证字段名（调用目标系统的 bearer token）
const SecretKeyGPTEngineerTestToken = "GPT_ENGINEER_TEST_TOKEN"

// UserSecret 每个用户一条密钥记录 - 整体是一个 JSON blob
type UserSecret struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 所属用户（一人一条）
	UserID string `gorm:"type:varchar(100);uniqueIndex;not null" json:"user_id"`

	// 密钥内容，如 {"GPT_ENGINEER_TEST_TOKEN": "..."}
	SecretJSON string `gorm:"type:text;not null" json:"-"`
}
