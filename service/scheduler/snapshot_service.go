/*
 * @module service/scheduler/snapshot_service
 * @description 历史绩效快照调度服务，定时将各供应商当前绩效指标追加为历史快照
 * @architecture 基于Go协程和cron定时器的调度器模式
 * @documentReference dev_docs/requirements.md
 * @stateFlow 应用启动时注册cron任务 -> 按计划批量写入快照 -> 应用退出时停止
 * @rules 快照只追加不修改；调度服务只读供应商记录，不改写绩效指标
 * @dependencies gorm.io/gorm, github.com/robfig/cron/v3
 * @refs service/models/vendor.go
 */

package scheduler

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"vendor-service/service/models"
)

// 默认每小时整点执行一次快照
const defaultSnapshotCron = "0 0 * * * *"

// SnapshotService 历史绩效快照调度服务
type SnapshotService struct {
	db       *gorm.DB
	cron     *cron.Cron
	cronSpec string
	entryID  cron.EntryID
}

// NewSnapshotService 创建快照调度服务实例
func NewSnapshotService(db *gorm.DB) *SnapshotService {
	spec := os.Getenv("SNAPSHOT_CRON")
	if spec == "" {
		spec = defaultSnapshotCron
	}

	return &SnapshotService{
		db:       db,
		cron:     cron.New(cron.WithSeconds()),
		cronSpec: spec,
	}
}

// Start 启动快照调度器
func (s *SnapshotService) Start() error {
	log.Println("启动历史绩效快照调度器")

	entryID, err := s.cron.AddFunc(s.cronSpec, func() {
		if err := s.TakeSnapshots(); err != nil {
			log.Printf("执行绩效快照失败: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("注册快照调度任务失败: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	log.Printf("历史绩效快照调度器启动完成, cron=%s", s.cronSpec)
	return nil
}

// Stop 停止快照调度器
func (s *SnapshotService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	log.Println("历史绩效快照调度器已停止")
}

// TakeSnapshots 为所有供应商追加一条当前绩效快照
func (s *SnapshotService) TakeSnapshots() error {
	var vendors []models.Vendor
	if err := s.db.Find(&vendors).Error; err != nil {
		return err
	}

	now := time.Now()
	for _, v := range vendors {
		snapshot := models.HistoricalPerformance{
			VendorID:            v.ID,
			Date:                now,
			OnTimeDeliveryRate:  v.OnTimeDeliveryRate,
			QualityRatingAvg:    v.QualityRatingAvg,
			AverageResponseTime: v.AverageResponseTime,
			FulfillmentRate:     v.FulfillmentRate,
		}
		if err := s.db.Create(&snapshot).Error; err != nil {
			log.Printf("写入供应商 %s 绩效快照失败: %v", v.VendorCode, err)
			continue
		}
	}

	log.Printf("绩效快照完成, 供应商数=%d", len(vendors))
	return nil
}
