package db

import (
	"fmt"
	"log"

	"bench-test/internal/config"
	"bench-test/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// start_paused_run 存储过程：paused -> running 的状态切换在数据库侧完成，
// 应用只负责调用并观察受影响行数
const startPausedRunProcedure = `
CREATE PROCEDURE start_paused_run(IN p_run_id BIGINT UNSIGNED)
BEGIN
    UPDATE runs
    SET state = 'running', updated_at = NOW()
    WHERE id = p_run_id AND state = 'paused' AND deleted_at IS NULL;
    SELECT ROW_COUNT() AS started;
END`

func InitDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 自动迁移
	if err := DB.AutoMigrate(
		&model.Scenario{},
		&model.Reviewer{},
		&model.Run{},
		&model.Result{},
		&model.UserSecret{},
	); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	if err := installProcedures(DB); err != nil {
		return fmt.Errorf("安装存储过程失败: %w", err)
	}

	log.Println("数据库初始化成功")
	return nil
}

func installProcedures(db *gorm.DB) error {
	// MySQL 不支持 CREATE PROCEDURE IF NOT EXISTS，先删再建
	if err := db.Exec("DROP PROCEDURE IF EXISTS start_paused_run").Error; err != nil {
		return err
	}
	return db.Exec(startPausedRunProcedure).Error
}
