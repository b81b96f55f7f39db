/*
 * @module service/models/vendor
 * @description 供应商相关模型定义，包括供应商、历史绩效快照等
 * @architecture DDD领域驱动设计 - 实体模型
 * @documentReference dev_docs/model.md
 * @stateFlow 供应商生命周期管理，绩效指标由重算服务维护
 * @rules 四项绩效指标字段只允许绩效重算服务写入，其他组件不得直接修改
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs dev_docs/requirements.md
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vendor 供应商模型
type Vendor struct {
	ID             string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name           string `json:"name" gorm:"not null;size:255"`
	ContactDetails string `json:"contact_details" gorm:"size:1000"`
	Address        string `json:"address" gorm:"size:1000"`
	VendorCode     string `json:"vendor_code" gorm:"not null;unique;size:50"`

	// 绩效指标（由绩效重算服务维护，禁止其他途径写入）
	OnTimeDeliveryRate  float64 `json:"on_time_delivery_rate" gorm:"not null;default:0"`
	QualityRatingAvg    float64 `json:"quality_rating_avg" gorm:"not null;default:0"`
	AverageResponseTime float64 `json:"average_response_time" gorm:"not null;default:0"` // 单位：小时
	FulfillmentRate     float64 `json:"fulfillment_rate" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// 关联关系
	PurchaseOrders         []PurchaseOrder         `json:"purchase_orders,omitempty" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	HistoricalPerformances []HistoricalPerformance `json:"historical_performances,omitempty" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
}

// HistoricalPerformance 供应商历史绩效快照模型（只追加，不修改）
type HistoricalPerformance struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VendorID            string    `json:"vendor_id" gorm:"not null;type:varchar(36);index"`
	Date                time.Time `json:"date" gorm:"not null"`
	OnTimeDeliveryRate  float64   `json:"on_time_delivery_rate" gorm:"not null"`
	QualityRatingAvg    float64   `json:"quality_rating_avg" gorm:"not null"`
	AverageResponseTime float64   `json:"average_response_time" gorm:"not null"`
	FulfillmentRate     float64   `json:"fulfillment_rate" gorm:"not null"`
	CreatedAt           time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// 关联关系
	Vendor Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}

// VendorPerformance 供应商绩效查询投影（非持久化）
type VendorPerformance struct {
	VendorID            string  `json:"vendor_id"`
	VendorCode          string  `json:"vendor_code"`
	Name                string  `json:"name"`
	OnTimeDeliveryRate  float64 `json:"on_time_delivery_rate"`
	QualityRatingAvg    float64 `json:"quality_rating_avg"`
	AverageResponseTime float64 `json:"average_response_time"`
	FulfillmentRate     float64 `json:"fulfillment_rate"`
}

// BeforeCreate GORM钩子，创建前生成UUID
func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

func (hp *HistoricalPerformance) BeforeCreate(tx *gorm.DB) error {
	if hp.ID == "" {
		hp.ID = uuid.New().String()
	}
	return nil
}
