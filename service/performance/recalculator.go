/*
 * @module service/performance/recalculator
 * @description 供应商绩效指标重算服务，订单保存后同步重算四项滚动指标
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 采购订单保存 -> 全量扫描该供应商订单 -> 按条件重算指标 -> 回写供应商记录
 * @rules 四项指标各自独立判断是否重算，单项跳过不影响其他项；重算失败不阻断触发写入
 * @dependencies gorm.io/gorm, github.com/prometheus/client_golang
 * @refs service/models/vendor.go, service/models/purchase_order.go
 */

package performance

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	"vendor-service/service/models"
)

var (
	recalculationTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vendor_performance_recalculations_total",
		Help: "供应商绩效指标重算执行总次数",
	})
	recalculationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vendor_performance_recalculation_errors_total",
		Help: "供应商绩效指标重算失败总次数",
	})
)

// Recalculator 供应商绩效重算服务
type Recalculator struct {
	db *gorm.DB
}

// NewRecalculator 创建绩效重算服务实例
func NewRecalculator(db *gorm.DB) *Recalculator {
	return &Recalculator{db: db}
}

// Recalculate 在采购订单保存成功后重算其供应商的绩效指标。
// created 区分新建和更新，当前公式不使用该标志，保留在契约中供后续差异化处理。
//
// 每次重算都全量读取该供应商的订单集合，不维护增量聚合状态；
// 同一供应商的并发写入按各自时点读取、最后写入者胜出，不做乐观锁控制。
func (r *Recalculator) Recalculate(po *models.PurchaseOrder, created bool) error {
	recalculationTotal.Inc()

	var orders []models.PurchaseOrder
	if err := r.db.Where("vendor_id = ?", po.VendorID).Find(&orders).Error; err != nil {
		recalculationErrors.Inc()
		return err
	}

	now := time.Now()
	updates := map[string]interface{}{}

	// 准时交付率与质量评分均值：仅当触发订单已完成时重算。
	// 已完成订单集合为空时整体跳过，保留原值（除零保护通过门控表达）。
	if po.IsCompleted() {
		var completed []models.PurchaseOrder
		for _, o := range orders {
			if o.IsCompleted() {
				completed = append(completed, o)
			}
		}
		if len(completed) > 0 {
			onTime := 0
			ratingSum := 0.0
			ratingCount := 0
			for _, o := range completed {
				if !o.DeliveryDate.After(now) {
					onTime++
				}
				// 未评分订单同时排除在分子和分母之外
				if o.QualityRating != nil {
					ratingSum += *o.QualityRating
					ratingCount++
				}
			}
			updates["on_time_delivery_rate"] = float64(onTime) / float64(len(completed))
			if ratingCount > 0 {
				updates["quality_rating_avg"] = ratingSum / float64(ratingCount)
			} else {
				updates["quality_rating_avg"] = 0.0
			}
		}
	}

	// 平均响应时间：仅当触发订单同时具备下发时间和确认时间时重算，
	// 聚合范围为该供应商所有具备两个时间戳的订单（不限状态）。
	// 单位取小时（修正参考实现中原始时长与文档口径不一致的缺陷，见DESIGN.md）。
	if po.HasResponseWindow() {
		hoursSum := 0.0
		count := 0
		for _, o := range orders {
			if o.HasResponseWindow() {
				hoursSum += o.ResponseTime()
				count++
			}
		}
		if count > 0 {
			updates["average_response_time"] = hoursSum / float64(count)
		}
	}

	// 履约率：无条件尝试重算。订单集合为空理论上不会出现
	// （触发订单本身必然计入），但保护必须存在。
	if len(orders) > 0 {
		completedCount := 0
		for _, o := range orders {
			if o.IsCompleted() {
				completedCount++
			}
		}
		updates["fulfillment_rate"] = float64(completedCount) / float64(len(orders))
	}

	if len(updates) == 0 {
		return nil
	}

	// 只回写本次重算的指标子集，未重算的指标保留原值
	if err := r.db.Model(&models.Vendor{}).Where("id = ?", po.VendorID).Updates(updates).Error; err != nil {
		recalculationErrors.Inc()
		return err
	}
	return nil
}
