/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, time
 * @refs service/models
 */

package testutil

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vendor-service/service/models"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.Vendor{},
		&models.PurchaseOrder{},
		&models.HistoricalPerformance{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	// 清空所有表的数据
	tables := []string{
		"purchase_orders",
		"historical_performances",
		"vendors",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// VendorOption 供应商选项函数类型
type VendorOption func(*models.Vendor)

// CreateVendor 创建测试供应商
func (f *TestDataFactory) CreateVendor(opts ...VendorOption) *models.Vendor {
	vendor := &models.Vendor{
		Name:           "测试供应商",
		ContactDetails: "contact@example.com",
		Address:        "测试地址",
		VendorCode:     "VND" + generateSuffix(),
	}

	// 应用选项
	for _, opt := range opts {
		opt(vendor)
	}

	err := f.DB.Create(vendor).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test vendor: %v", err))
	}

	return vendor
}

// PurchaseOrderOption 采购订单选项函数类型
type PurchaseOrderOption func(*models.PurchaseOrder)

// CreatePurchaseOrder 创建测试采购订单
func (f *TestDataFactory) CreatePurchaseOrder(vendorID string, opts ...PurchaseOrderOption) *models.PurchaseOrder {
	now := time.Now()
	order := &models.PurchaseOrder{
		PONumber:     "PO" + generateSuffix(),
		VendorID:     vendorID,
		OrderDate:    now.Add(-48 * time.Hour),
		DeliveryDate: now.Add(-24 * time.Hour),
		Items: map[string]interface{}{
			"item": "测试物料",
		},
		Quantity: 10,
		Status:   models.OrderStatusPending,
	}

	// 应用选项
	for _, opt := range opts {
		opt(order)
	}

	err := f.DB.Create(order).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test purchase order: %v", err))
	}

	return order
}

// WithStatus 设置订单状态
func WithStatus(status string) PurchaseOrderOption {
	return func(po *models.PurchaseOrder) {
		po.Status = status
	}
}

// WithQualityRating 设置订单质量评分
func WithQualityRating(rating float64) PurchaseOrderOption {
	return func(po *models.PurchaseOrder) {
		po.QualityRating = &rating
	}
}

// WithDeliveryDate 设置订单交付时间
func WithDeliveryDate(date time.Time) PurchaseOrderOption {
	return func(po *models.PurchaseOrder) {
		po.DeliveryDate = date
	}
}

// WithResponseWindow 设置订单下发时间和确认时间
func WithResponseWindow(issue, acknowledgment time.Time) PurchaseOrderOption {
	return func(po *models.PurchaseOrder) {
		po.IssueDate = &issue
		po.AcknowledgmentDate = &acknowledgment
	}
}

var suffixCounter int64

func generateSuffix() string {
	suffixCounter++
	return fmt.Sprintf("%d%05d", time.Now().UnixNano()%1000000, suffixCounter)
}
