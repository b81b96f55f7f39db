/*
 * @module service/purchase_order/service
 * @description 采购订单业务逻辑服务，提供订单CRUD并在保存后触发供应商绩效重算
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 订单创建/更新 -> 持久化 -> 显式调用绩效重算钩子 -> 返回结果
 * @rules 订单编号全局唯一；重算钩子在每次成功写入后恰好调用一次，失败仅记录日志不阻断写入
 * @dependencies vendor-service/service/models, vendor-service/service/performance, gorm.io/gorm
 * @refs service/performance/recalculator.go
 */

package purchase_order

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"vendor-service/service/models"
	"vendor-service/service/performance"
)

// Service 采购订单服务
type Service struct {
	db           *gorm.DB
	recalculator *performance.Recalculator
}

// NewService 创建采购订单服务实例
func NewService(db *gorm.DB, recalculator *performance.Recalculator) *Service {
	return &Service{db: db, recalculator: recalculator}
}

// CreatePurchaseOrder 创建采购订单，保存成功后触发供应商绩效重算
func (s *Service) CreatePurchaseOrder(po *models.PurchaseOrder) error {
	if po.PONumber == "" {
		return errors.New("采购订单编号不能为空")
	}

	// 供应商必须存在（参照完整性）
	var vendor models.Vendor
	if err := s.db.First(&vendor, "id = ?", po.VendorID).Error; err != nil {
		return errors.New("供应商不存在")
	}

	// 检查订单编号是否已存在
	var existing models.PurchaseOrder
	if err := s.db.Where("po_number = ?", po.PONumber).First(&existing).Error; err == nil {
		return errors.New("采购订单编号已存在")
	}

	// 新订单默认处于pending状态
	if po.Status == "" {
		po.Status = models.OrderStatusPending
	}

	if err := s.db.Create(po).Error; err != nil {
		return err
	}

	s.afterSave(po, true)
	return nil
}

// GetPurchaseOrder 根据ID获取采购订单
func (s *Service) GetPurchaseOrder(id string) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	if err := s.db.First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

// GetPurchaseOrders 获取采购订单列表，支持按供应商和状态过滤
func (s *Service) GetPurchaseOrders(page, pageSize int, vendorID, status string) ([]models.PurchaseOrder, int64, error) {
	var orders []models.PurchaseOrder
	var total int64

	query := s.db.Model(&models.PurchaseOrder{})
	if vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("order_date DESC").Offset(offset).Limit(pageSize).Find(&orders).Error

	return orders, total, err
}

// UpdatePurchaseOrder 更新采购订单，保存成功后触发供应商绩效重算
func (s *Service) UpdatePurchaseOrder(id string, updates *models.PurchaseOrder) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	if err := s.db.First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if updates.PONumber != "" && updates.PONumber != po.PONumber {
		var existing models.PurchaseOrder
		if err := s.db.Where("po_number = ?", updates.PONumber).First(&existing).Error; err == nil {
			return nil, errors.New("采购订单编号已存在")
		}
		fields["po_number"] = updates.PONumber
	}
	if updates.VendorID != "" && updates.VendorID != po.VendorID {
		var vendor models.Vendor
		if err := s.db.First(&vendor, "id = ?", updates.VendorID).Error; err != nil {
			return nil, errors.New("供应商不存在")
		}
		fields["vendor_id"] = updates.VendorID
	}
	if !updates.OrderDate.IsZero() {
		fields["order_date"] = updates.OrderDate
	}
	if !updates.DeliveryDate.IsZero() {
		fields["delivery_date"] = updates.DeliveryDate
	}
	if updates.Items != nil {
		fields["items"] = updates.Items
	}
	if updates.Quantity != 0 {
		fields["quantity"] = updates.Quantity
	}
	if updates.Status != "" {
		fields["status"] = updates.Status
	}
	if updates.QualityRating != nil {
		fields["quality_rating"] = *updates.QualityRating
	}
	if updates.IssueDate != nil {
		fields["issue_date"] = *updates.IssueDate
	}
	if updates.AcknowledgmentDate != nil {
		fields["acknowledgment_date"] = *updates.AcknowledgmentDate
	}

	if len(fields) > 0 {
		if err := s.db.Model(&po).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	// 重新加载，确保钩子拿到的是已落库的订单状态
	if err := s.db.First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}

	s.afterSave(&po, false)
	return &po, nil
}

// DeletePurchaseOrder 删除采购订单。删除不触发绩效重算，
// 指标会在该供应商下一次订单写入时自然收敛。
func (s *Service) DeletePurchaseOrder(id string) error {
	var po models.PurchaseOrder
	if err := s.db.First(&po, "id = ?", id).Error; err != nil {
		return errors.New("采购订单不存在")
	}
	return s.db.Delete(&po).Error
}

// afterSave 订单写入后的显式钩子：同步重算供应商绩效。
// 重算失败只记录日志，不回滚也不阻断触发它的订单写入。
func (s *Service) afterSave(po *models.PurchaseOrder, created bool) {
	if err := s.recalculator.Recalculate(po, created); err != nil {
		slog.Warn("供应商绩效指标重算失败",
			"po_number", po.PONumber,
			"vendor_id", po.VendorID,
			"created", created,
			"error", err)
	}
}
