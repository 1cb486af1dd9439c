package service

import (
	"context"
	"fmt"

	"bench-test/internal/db"
	"bench-test/internal/model"
)

// Gateway 数据网关 - 编排器消费的窄接口。
// 生产实现走 gorm；测试用桩实现替换。
type Gateway interface {
	// ListScenarios 返回全部场景（含评审器）
	ListScenarios(ctx context.Context) ([]model.Scenario, error)
	// GetUserSecret 按用户取密钥记录；不存在返回 ErrConfiguration
	GetUserSecret(ctx context.Context, userID string) (*model.UserSecret, error)
	// CreateRun 插入 Run 行（ID/时间戳由存储侧赋值）
	CreateRun(ctx context.Context, run *model.Run) error
	// CreateResult 插入 Result 行
	CreateResult(ctx context.Context, result *model.Result) error
	// StartPausedRun 调用 start_paused_run 存储过程。
	// 返回 false 表示过程执行了但没有切换任何行（Run 不处于 paused 等）
	StartPausedRun(ctx context.Context, runID uint) (bool, error)
}

// GormGateway Gateway 的 gorm 实现，复用全局 db.DB
type GormGateway struct{}

func NewGormGateway() *GormGateway {
	return &GormGateway{}
}

func (g *GormGateway) ListScenarios(ctx context.Context) ([]model.Scenario, error) {
	var scenarios []model.Scenario
	if err := db.DB.WithContext(ctx).Preload("Reviewers").Find(&scenarios).Error; err != nil {
		return nil, fmt.Errorf("查询场景失败: %w", err)
	}
	return scenarios, nil
}

func (g *GormGateway) GetUserSecret(ctx context.Context, userID string) (*model.UserSecret, error) {
	var secret model.UserSecret
	if err := db.DB.WithContext(ctx).Where("user_id = ?", userID).First(&secret).Error; err != nil {
		return nil, fmt.Errorf("%w: 用户 %s 没有密钥记录", ErrConfiguration, userID)
	}
	return &secret, nil
}

func (g *GormGateway) CreateRun(ctx context.Context, run *model.Run) error {
	if err := db.DB.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("创建 run 失败: %w", err)
	}
	return nil
}

func (g *GormGateway) CreateResult(ctx context.Context, result *model.Result) error {
	if err := db.DB.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("创建 result 失败: %w", err)
	}
	return nil
}

func (g *GormGateway) StartPausedRun(ctx context.Context, runID uint) (bool, error) {
	var out struct {
		Started int `gorm:"column:started"`
	}
	if err := db.DB.WithContext(ctx).Raw("CALL start_paused_run(?)", runID).Scan(&out).Error; err != nil {
		return false, fmt.Errorf("调用 start_paused_run 失败: %w", err)
	}
	return out.Started > 0, nil
}
