/*
 * @module service/purchase_order/service_test
 * @description 采购订单服务单元测试
 * @architecture 测试层 - 基于内存sqlite验证CRUD与保存后重算钩子
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 服务方法调用 -> 数据库状态验证 -> 供应商指标验证
 * @rules 确保每次成功写入后重算钩子恰好生效一次
 * @dependencies testing, testify, gorm, vendor-service/testutil
 * @refs service.go, service/performance/recalculator.go
 */

package purchase_order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vendor-service/service/models"
	"vendor-service/service/performance"
	"vendor-service/testutil"
)

func setupOrderTest(t *testing.T) (*testutil.TestDB, *testutil.TestDataFactory, *Service) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	svc := NewService(tdb.DB, performance.NewRecalculator(tdb.DB))
	return tdb, testutil.NewTestDataFactory(tdb.DB), svc
}

// TestCreatePurchaseOrder 创建订单并验证默认状态与绩效重算副作用
func TestCreatePurchaseOrder(t *testing.T) {
	tdb, factory, svc := setupOrderTest(t)

	v := factory.CreateVendor()
	now := time.Now()
	po := &models.PurchaseOrder{
		PONumber:     "PO-CREATE-001",
		VendorID:     v.ID,
		OrderDate:    now.Add(-48 * time.Hour),
		DeliveryDate: now.Add(-24 * time.Hour),
		Items:        map[string]interface{}{"item": "轴承", "spec": "6204"},
		Quantity:     100,
	}

	require.NoError(t, svc.CreatePurchaseOrder(po))
	assert.NotEmpty(t, po.ID)
	assert.Equal(t, models.OrderStatusPending, po.Status)

	// 创建即触发履约率重算：1笔订单0笔完成
	var vendor models.Vendor
	require.NoError(t, tdb.DB.First(&vendor, "id = ?", v.ID).Error)
	assert.Equal(t, 0.0, vendor.FulfillmentRate)
	assert.Equal(t, 0.0, vendor.OnTimeDeliveryRate)
}

// TestCreatePurchaseOrderValidation 创建订单的参照完整性和唯一性校验
func TestCreatePurchaseOrderValidation(t *testing.T) {
	_, factory, svc := setupOrderTest(t)

	v := factory.CreateVendor()

	err := svc.CreatePurchaseOrder(&models.PurchaseOrder{VendorID: v.ID})
	assert.EqualError(t, err, "采购订单编号不能为空")

	err = svc.CreatePurchaseOrder(&models.PurchaseOrder{PONumber: "PO-X", VendorID: "missing"})
	assert.EqualError(t, err, "供应商不存在")

	existing := factory.CreatePurchaseOrder(v.ID)
	err = svc.CreatePurchaseOrder(&models.PurchaseOrder{PONumber: existing.PONumber, VendorID: v.ID})
	assert.EqualError(t, err, "采购订单编号已存在")
}

// TestUpdatePurchaseOrderTriggersRecalculation 订单完成转换后四项指标按落库状态重算
func TestUpdatePurchaseOrderTriggersRecalculation(t *testing.T) {
	tdb, factory, svc := setupOrderTest(t)

	v := factory.CreateVendor()
	po := factory.CreatePurchaseOrder(v.ID,
		testutil.WithDeliveryDate(time.Now().Add(-24*time.Hour)))

	rating := 4.0
	updated, err := svc.UpdatePurchaseOrder(po.ID, &models.PurchaseOrder{
		Status:        models.OrderStatusCompleted,
		QualityRating: &rating,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)

	var vendor models.Vendor
	require.NoError(t, tdb.DB.First(&vendor, "id = ?", v.ID).Error)
	assert.Equal(t, 1.0, vendor.FulfillmentRate)
	assert.Equal(t, 1.0, vendor.OnTimeDeliveryRate)
	assert.Equal(t, 4.0, vendor.QualityRatingAvg)
}

// TestUpdatePurchaseOrderNotFound 更新不存在的订单返回记录不存在
func TestUpdatePurchaseOrderNotFound(t *testing.T) {
	_, _, svc := setupOrderTest(t)

	_, err := svc.UpdatePurchaseOrder("missing", &models.PurchaseOrder{Status: models.OrderStatusCompleted})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestGetPurchaseOrders 列表查询支持供应商和状态过滤
func TestGetPurchaseOrders(t *testing.T) {
	_, factory, svc := setupOrderTest(t)

	v1 := factory.CreateVendor()
	v2 := factory.CreateVendor()
	factory.CreatePurchaseOrder(v1.ID, testutil.WithStatus(models.OrderStatusCompleted))
	factory.CreatePurchaseOrder(v1.ID)
	factory.CreatePurchaseOrder(v2.ID)

	orders, total, err := svc.GetPurchaseOrders(1, 10, v1.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)

	orders, total, err = svc.GetPurchaseOrders(1, 10, v1.ID, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, orders, 1)
}

// TestDeletePurchaseOrder 删除订单不触发绩效重算
func TestDeletePurchaseOrder(t *testing.T) {
	tdb, factory, svc := setupOrderTest(t)

	v := factory.CreateVendor()
	po := factory.CreatePurchaseOrder(v.ID, testutil.WithStatus(models.OrderStatusCompleted))
	trigger := factory.CreatePurchaseOrder(v.ID)
	_, err := svc.UpdatePurchaseOrder(trigger.ID, &models.PurchaseOrder{Quantity: 5})
	require.NoError(t, err)

	var before models.Vendor
	require.NoError(t, tdb.DB.First(&before, "id = ?", v.ID).Error)
	require.InDelta(t, 0.5, before.FulfillmentRate, 1e-9)

	require.NoError(t, svc.DeletePurchaseOrder(po.ID))

	// 指标保持删除前的值，待下次订单写入时收敛
	var after models.Vendor
	require.NoError(t, tdb.DB.First(&after, "id = ?", v.ID).Error)
	assert.Equal(t, before.FulfillmentRate, after.FulfillmentRate)

	err = svc.DeletePurchaseOrder(po.ID)
	assert.EqualError(t, err, "采购订单不存在")
}

// TestConcurrentRecalculationLastWriteWins 同一供应商的并发重算不做串行化，最后写入者胜出
func TestConcurrentRecalculationLastWriteWins(t *testing.T) {
	tdb, factory, svc := setupOrderTest(t)

	v := factory.CreateVendor()
	a := factory.CreatePurchaseOrder(v.ID)
	b := factory.CreatePurchaseOrder(v.ID)

	_, err := svc.UpdatePurchaseOrder(a.ID, &models.PurchaseOrder{Status: models.OrderStatusCompleted})
	require.NoError(t, err)
	_, err = svc.UpdatePurchaseOrder(b.ID, &models.PurchaseOrder{Status: models.OrderStatusCompleted})
	require.NoError(t, err)

	// 两次重算各自按自身时点的订单集合计算，最终值来自最后一次写入
	var vendor models.Vendor
	require.NoError(t, tdb.DB.First(&vendor, "id = ?", v.ID).Error)
	assert.Equal(t, 1.0, vendor.FulfillmentRate)
}
