/*
 * @module service/vendors/service
 * @description 供应商业务逻辑服务，提供供应商CRUD、绩效查询和历史快照查询
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 供应商生命周期管理流程
 * @rules 供应商编码全局唯一；更新操作不得触碰绩效指标字段；删除级联订单与历史快照
 * @dependencies vendor-service/service/models, gorm.io/gorm
 * @refs dev_docs/model.md
 */

package vendors

import (
	"errors"

	"gorm.io/gorm"

	"vendor-service/service/models"
)

// Service 供应商服务
type Service struct {
	db *gorm.DB
}

// NewService 创建供应商服务实例
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateVendor 创建供应商
func (s *Service) CreateVendor(vendor *models.Vendor) error {
	if vendor.Name == "" {
		return errors.New("供应商名称不能为空")
	}
	if vendor.VendorCode == "" {
		return errors.New("供应商编码不能为空")
	}

	// 检查编码是否已存在
	var existing models.Vendor
	if err := s.db.Where("vendor_code = ?", vendor.VendorCode).First(&existing).Error; err == nil {
		return errors.New("供应商编码已存在")
	}

	// 绩效指标只能由重算服务写入，创建时强制归零
	vendor.OnTimeDeliveryRate = 0
	vendor.QualityRatingAvg = 0
	vendor.AverageResponseTime = 0
	vendor.FulfillmentRate = 0

	return s.db.Create(vendor).Error
}

// GetVendor 根据ID获取供应商
func (s *Service) GetVendor(id string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := s.db.First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetVendors 获取供应商列表，支持按名称或编码模糊检索
func (s *Service) GetVendors(page, pageSize int, keyword string) ([]models.Vendor, int64, error) {
	var vendors []models.Vendor
	var total int64

	query := s.db.Model(&models.Vendor{})
	if keyword != "" {
		query = query.Where("name LIKE ? OR vendor_code LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&vendors).Error

	return vendors, total, err
}

// UpdateVendor 更新供应商描述性字段。
// 绩效指标字段不在更新范围内，保持重算服务独占写入。
func (s *Service) UpdateVendor(id string, updates *models.Vendor) error {
	var vendor models.Vendor
	if err := s.db.First(&vendor, "id = ?", id).Error; err != nil {
		return errors.New("供应商不存在")
	}

	fields := map[string]interface{}{}
	if updates.Name != "" {
		fields["name"] = updates.Name
	}
	if updates.ContactDetails != "" {
		fields["contact_details"] = updates.ContactDetails
	}
	if updates.Address != "" {
		fields["address"] = updates.Address
	}
	if updates.VendorCode != "" && updates.VendorCode != vendor.VendorCode {
		var existing models.Vendor
		if err := s.db.Where("vendor_code = ?", updates.VendorCode).First(&existing).Error; err == nil {
			return errors.New("供应商编码已存在")
		}
		fields["vendor_code"] = updates.VendorCode
	}

	if len(fields) == 0 {
		return nil
	}
	return s.db.Model(&vendor).Updates(fields).Error
}

// DeleteVendor 删除供应商，级联删除其采购订单与历史绩效快照
func (s *Service) DeleteVendor(id string) error {
	var vendor models.Vendor
	if err := s.db.First(&vendor, "id = ?", id).Error; err != nil {
		return errors.New("供应商不存在")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vendor_id = ?", id).Delete(&models.PurchaseOrder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vendor_id = ?", id).Delete(&models.HistoricalPerformance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&vendor).Error
	})
}

// GetVendorPerformance 获取供应商当前绩效指标投影
func (s *Service) GetVendorPerformance(id string) (*models.VendorPerformance, error) {
	var vendor models.Vendor
	if err := s.db.First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &models.VendorPerformance{
		VendorID:            vendor.ID,
		VendorCode:          vendor.VendorCode,
		Name:                vendor.Name,
		OnTimeDeliveryRate:  vendor.OnTimeDeliveryRate,
		QualityRatingAvg:    vendor.QualityRatingAvg,
		AverageResponseTime: vendor.AverageResponseTime,
		FulfillmentRate:     vendor.FulfillmentRate,
	}, nil
}

// GetPerformanceHistory 获取供应商历史绩效快照列表，按快照时间倒序
func (s *Service) GetPerformanceHistory(id string, page, pageSize int) ([]models.HistoricalPerformance, int64, error) {
	var vendor models.Vendor
	if err := s.db.First(&vendor, "id = ?", id).Error; err != nil {
		return nil, 0, err
	}

	var snapshots []models.HistoricalPerformance
	var total int64

	query := s.db.Model(&models.HistoricalPerformance{}).Where("vendor_id = ?", id)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("date DESC").Offset(offset).Limit(pageSize).Find(&snapshots).Error

	return snapshots, total, err
}
