/*
 * @module service/models/purchase_order
 * @description 采购订单模型定义，包含订单状态生命周期和时间戳字段
 * @architecture DDD领域驱动设计 - 实体模型
 * @documentReference dev_docs/model.md
 * @stateFlow pending -> completed/cancelled，保存后触发供应商绩效重算
 * @rules 订单编号全局唯一，订单删除仅由供应商级联删除触发
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs dev_docs/requirements.md
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 采购订单状态
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// PurchaseOrder 采购订单模型
type PurchaseOrder struct {
	ID           string                 `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PONumber     string                 `json:"po_number" gorm:"column:po_number;not null;unique;size:50"`
	VendorID     string                 `json:"vendor_id" gorm:"not null;type:varchar(36);index"`
	OrderDate    time.Time              `json:"order_date" gorm:"not null"`
	DeliveryDate time.Time              `json:"delivery_date" gorm:"not null"`
	Items        map[string]interface{} `json:"items" gorm:"type:jsonb;serializer:json"`
	Quantity     int                    `json:"quantity" gorm:"not null"`
	Status       string                 `json:"status" gorm:"not null;default:'pending';size:50"`

	// 可选字段：质量评分在订单评价后才有值，确认时间在供应商确认后才有值
	QualityRating      *float64   `json:"quality_rating"`
	IssueDate          *time.Time `json:"issue_date"`
	AcknowledgmentDate *time.Time `json:"acknowledgment_date"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// 关联关系
	Vendor Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}

// IsCompleted 订单是否已完成
func (po *PurchaseOrder) IsCompleted() bool {
	return po.Status == OrderStatusCompleted
}

// HasResponseWindow 订单是否同时具备下发时间和确认时间
func (po *PurchaseOrder) HasResponseWindow() bool {
	return po.IssueDate != nil && po.AcknowledgmentDate != nil
}

// ResponseTime 订单响应时长（小时），缺少任一时间戳时返回0
func (po *PurchaseOrder) ResponseTime() float64 {
	if !po.HasResponseWindow() {
		return 0
	}
	return po.AcknowledgmentDate.Sub(*po.IssueDate).Hours()
}

// BeforeCreate GORM钩子，创建前生成UUID
func (po *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if po.ID == "" {
		po.ID = uuid.New().String()
	}
	return nil
}
