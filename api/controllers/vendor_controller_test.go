/*
 * @module api/controllers/vendor_controller_test
 * @description 供应商控制器单元测试
 * @architecture 测试层
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 测试准备 -> 请求构建 -> 响应验证
 * @rules 确保供应商API的正确性和响应格式
 * @dependencies testing, net/http/httptest, stretchr/testify
 */

package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendor-service/service/models"
	"vendor-service/service/performance"
	"vendor-service/service/purchase_order"
	"vendor-service/service/vendors"
	"vendor-service/testutil"
)

func setupControllerTest(t *testing.T) (*testutil.TestDB, *chi.Mux) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	vendorService := vendors.NewService(tdb.DB)
	orderService := purchase_order.NewService(tdb.DB, performance.NewRecalculator(tdb.DB))

	r := chi.NewRouter()
	vendorController := NewVendorController(vendorService)
	orderController := NewPurchaseOrderController(orderService)

	r.Route("/vendors", func(r chi.Router) {
		r.Post("/", vendorController.CreateVendor)
		r.Get("/", vendorController.GetVendors)
		r.Get("/{id}", vendorController.GetVendor)
		r.Put("/{id}", vendorController.UpdateVendor)
		r.Delete("/{id}", vendorController.DeleteVendor)
		r.Get("/{id}/performance", vendorController.GetVendorPerformance)
		r.Get("/{id}/performance/history", vendorController.GetPerformanceHistory)
	})
	r.Route("/purchase-orders", func(r chi.Router) {
		r.Post("/", orderController.CreatePurchaseOrder)
		r.Get("/{id}", orderController.GetPurchaseOrder)
		r.Put("/{id}", orderController.UpdatePurchaseOrder)
	})

	return tdb, r
}

func doJSON(t *testing.T, r *chi.Mux, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestVendorCRUDFlow 供应商创建、查询、更新、删除全流程
func TestVendorCRUDFlow(t *testing.T) {
	_, r := setupControllerTest(t)

	w := doJSON(t, r, http.MethodPost, "/vendors", map[string]interface{}{
		"name":            "测试供应商",
		"contact_details": "contact@example.com",
		"address":         "测试地址",
		"vendor_code":     "VND-API-001",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var created APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, 0, created.Status)
	data, ok := created.Data.(map[string]interface{})
	require.True(t, ok)
	vendorID, _ := data["id"].(string)
	require.NotEmpty(t, vendorID)

	w = doJSON(t, r, http.MethodGet, "/vendors/"+vendorID, nil)
	var got APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, 0, got.Status)

	w = doJSON(t, r, http.MethodPut, "/vendors/"+vendorID, map[string]interface{}{"name": "更名供应商"})
	var updated APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, 0, updated.Status)

	w = doJSON(t, r, http.MethodDelete, "/vendors/"+vendorID, nil)
	var deleted APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&deleted))
	assert.Equal(t, 0, deleted.Status)

	w = doJSON(t, r, http.MethodGet, "/vendors/"+vendorID, nil)
	var missing APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&missing))
	assert.Equal(t, http.StatusNotFound, missing.Status)
}

// TestVendorPerformanceEndpoint 订单完成后绩效接口返回重算结果
func TestVendorPerformanceEndpoint(t *testing.T) {
	tdb, r := setupControllerTest(t)
	factory := testutil.NewTestDataFactory(tdb.DB)

	v := factory.CreateVendor()
	po := factory.CreatePurchaseOrder(v.ID,
		testutil.WithDeliveryDate(time.Now().Add(-24*time.Hour)))

	w := doJSON(t, r, http.MethodPut, "/purchase-orders/"+po.ID, map[string]interface{}{
		"status":         models.OrderStatusCompleted,
		"quality_rating": 4.0,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/vendors/"+v.ID+"/performance", nil)
	var resp APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 0, resp.Status)

	perf, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 1.0, perf["on_time_delivery_rate"].(float64), 1e-9)
	assert.InDelta(t, 4.0, perf["quality_rating_avg"].(float64), 1e-9)
	assert.InDelta(t, 1.0, perf["fulfillment_rate"].(float64), 1e-9)
}

// TestVendorPerformanceNotFound 未知供应商ID返回NotFound
func TestVendorPerformanceNotFound(t *testing.T) {
	_, r := setupControllerTest(t)

	w := doJSON(t, r, http.MethodGet, "/vendors/missing/performance", nil)
	var resp APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "供应商不存在", resp.Msg)
}

// TestCreatePurchaseOrderEndpoint 创建订单接口与参数错误响应
func TestCreatePurchaseOrderEndpoint(t *testing.T) {
	tdb, r := setupControllerTest(t)
	factory := testutil.NewTestDataFactory(tdb.DB)

	v := factory.CreateVendor()
	now := time.Now()
	w := doJSON(t, r, http.MethodPost, "/purchase-orders", map[string]interface{}{
		"po_number":     "PO-API-001",
		"vendor_id":     v.ID,
		"order_date":    now.Add(-48 * time.Hour),
		"delivery_date": now.Add(-24 * time.Hour),
		"items":         map[string]interface{}{"item": "阀门"},
		"quantity":      20,
	})
	var resp APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 0, resp.Status)

	// 供应商不存在时返回参数错误
	w = doJSON(t, r, http.MethodPost, "/purchase-orders", map[string]interface{}{
		"po_number": "PO-API-002",
		"vendor_id": "missing",
	})
	var bad APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&bad))
	assert.Equal(t, http.StatusBadRequest, bad.Status)
}
