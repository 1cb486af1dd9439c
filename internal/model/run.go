package model

import (
	"time"

	"gorm.io/gorm"
)

// Run 状态常量。状态机由数据库存储过程驱动，应用侧只写入 paused 并观察结果
const (
	RunStatePaused  = "paused"
	RunStateRunning = "running"
)

// Run 一次基准测试执行 - 某场景针对某个目标系统版本跑了一次
type Run struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 所属场景
	ScenarioID uint `gorm:"not null;index" json:"scenario_id"`

	// 目标系统版本（基准 URL，如 https://run.gptengineer.app）
	SystemVersion string `gorm:"type:varchar(500);not null" json:"system_version"`

	// 模拟用户后在目标系统创建出的项目
	ProjectID   string `gorm:"type:varchar(100)" json:"project_id"`
	ProjectLink string `gorm:"type:varchar(500)" json:"project_link"`

	// 发起人
	UserID string `gorm:"type:varchar(100);index" json:"user_id"`

	// 生命周期状态：paused/running（由 start_paused_run 存储过程切换）
	State string `gorm:"type:varchar(20);index" json:"state"`
}

// Result 评审结果 - 一个评审器对一次 Run 的评分记录
type Result struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 关联的 Run
	RunID uint `gorm:"not null;index" json:"run_id"`

	// 打分的评审器
	ReviewerID uint `gorm:"index" json:"reviewer_id"`

	// 不透明 JSON 负载；评分完成后至少包含数值字段 score
	PayloadJSON string `gorm:"type:text" json:"payload_json"`
}
