/*
 * @module service/database/migrate
 * @description 数据库迁移模块，负责创建和更新数据库表结构
 * @architecture 数据访问层 - 迁移管理
 * @documentReference dev_docs/model.md
 * @stateFlow 应用启动时执行数据库迁移
 * @rules 确保数据库结构与模型定义保持一致
 * @dependencies vendor-service/service/models, gorm.io/gorm
 * @refs dev_docs/requirements.md
 */

package database

import (
	"log"

	"gorm.io/gorm"

	"vendor-service/service/models"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	log.Println("开始数据库迁移...")

	err := db.AutoMigrate(
		&models.Vendor{},
		&models.PurchaseOrder{},
		&models.HistoricalPerformance{},
	)
	if err != nil {
		return err
	}

	log.Println("数据库迁移完成")
	return nil
}
