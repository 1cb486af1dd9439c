package model

import (
	"time"

	"gorm.io/gorm"
)

// Scenario 基准测试场景 - 一条预置的提示词用例
type Scenario struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 场景名称
	Name string `gorm:"type:varchar(200);not null;index" json:"name"`

	// 提示词全文（模拟用户提交的内容）
	Prompt string `gorm:"type:text;not null" json:"prompt"`

	// 目标模型名称
	Model string `gorm:"type:varchar(100)" json:"model"`

	// 采样温度（可选；为空时调用方不传）
	Temperature *float64 `gorm:"type:decimal(3,2)" json:"temperature"`

	// 场景描述（可选）
	Description string `gorm:"type:text" json:"description"`

	// 该场景配置的评审器（一个场景可以有多个评分维度）
	Reviewers []Reviewer `gorm:"foreignKey:ScenarioID" json:"reviewers"`
}

// Reviewer 评审器 - 对某个场景的一条评分口径（一个维度）
type Reviewer struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 所属场景
	ScenarioID uint `gorm:"not null;index" json:"scenario_id"`

	// 评分维度标签（如 clarity / safety）
	Dimension string `gorm:"type:varchar(100);not null" json:"dimension"`

	// 权重（当前聚合不加权，仅保留字段）
	Weight float64 `gorm:"type:decimal(4,2);default:1" json:"weight"`

	// 评审用的模型与温度配置
	Model       string  `gorm:"type:varchar(100)" json:"model"`
	Temperature float64 `gorm:"type:decimal(3,2);default:0" json:"temperature"`

	// 每次评审运行的次数
	RunCount int `gorm:"default:1" json:"run_count"`
}
