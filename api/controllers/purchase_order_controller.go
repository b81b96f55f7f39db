/*
 * @module api/controllers/purchase_order_controller
 * @description 采购订单API控制器，处理订单CRUD请求
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @stateFlow HTTP请求处理流程，订单创建/更新在服务层触发供应商绩效重算
 * @rules 统一的错误处理和响应格式，参数验证
 * @dependencies vendor-service/service/purchase_order, github.com/go-chi/render
 * @refs service/performance/recalculator.go
 */

package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"gorm.io/gorm"

	"vendor-service/service/models"
	"vendor-service/service/purchase_order"
)

// PurchaseOrderController 采购订单控制器
type PurchaseOrderController struct {
	service *purchase_order.Service
}

// NewPurchaseOrderController 创建采购订单控制器实例
func NewPurchaseOrderController(service *purchase_order.Service) *PurchaseOrderController {
	return &PurchaseOrderController{service: service}
}

// CreatePurchaseOrder 创建采购订单
// @Summary 创建采购订单
// @Description 创建新的采购订单，保存成功后同步重算供应商绩效指标
// @Tags 采购订单
// @Accept json
// @Produce json
// @Param order body models.PurchaseOrder true "采购订单信息"
// @Success 200 {object} APIResponse{data=models.PurchaseOrder}
// @Failure 400 {object} APIResponse
// @Router /purchase-orders [post]
func (c *PurchaseOrderController) CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseOrder
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse(fmt.Sprintf("请求参数格式错误:%s", err.Error()), nil))
		return
	}

	if err := c.service.CreatePurchaseOrder(&req); err != nil {
		render.JSON(w, r, BadRequestResponse(err.Error(), nil))
		return
	}

	render.JSON(w, r, SuccessResponse("创建成功", &req))
}

// GetPurchaseOrders 获取采购订单列表
// @Summary 获取采购订单列表
// @Description 分页获取采购订单列表，支持按供应商和状态过滤
// @Tags 采购订单
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param vendor_id query string false "供应商ID"
// @Param status query string false "订单状态"
// @Success 200 {object} PaginatedResponse{data=[]models.PurchaseOrder}
// @Failure 500 {object} APIResponse
// @Router /purchase-orders [get]
func (c *PurchaseOrderController) GetPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	page, size := parsePagination(r)
	vendorID := r.URL.Query().Get("vendor_id")
	status := r.URL.Query().Get("status")

	orders, total, err := c.service.GetPurchaseOrders(page, size, vendorID, status)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("获取采购订单列表失败", err))
		return
	}

	render.JSON(w, r, SuccessPaginatedResponse("查询成功", orders, total, page, size))
}

// GetPurchaseOrder 获取采购订单详情
// @Summary 获取采购订单详情
// @Description 根据ID获取采购订单详细信息
// @Tags 采购订单
// @Produce json
// @Param id path string true "采购订单ID"
// @Success 200 {object} APIResponse{data=models.PurchaseOrder}
// @Failure 404 {object} APIResponse
// @Router /purchase-orders/{id} [get]
func (c *PurchaseOrderController) GetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		render.JSON(w, r, BadRequestResponse("ID参数不能为空", nil))
		return
	}

	po, err := c.service.GetPurchaseOrder(id)
	if err != nil {
		render.JSON(w, r, NotFoundResponse("采购订单不存在", nil))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", po))
}

// UpdatePurchaseOrder 更新采购订单
// @Summary 更新采购订单
// @Description 更新采购订单信息，保存成功后同步重算供应商绩效指标
// @Tags 采购订单
// @Accept json
// @Produce json
// @Param id path string true "采购订单ID"
// @Param order body models.PurchaseOrder true "更新信息"
// @Success 200 {object} APIResponse{data=models.PurchaseOrder}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /purchase-orders/{id} [put]
func (c *PurchaseOrderController) UpdatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		render.JSON(w, r, BadRequestResponse("ID参数不能为空", nil))
		return
	}

	var req models.PurchaseOrder
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	po, err := c.service.UpdatePurchaseOrder(id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			render.JSON(w, r, NotFoundResponse("采购订单不存在", nil))
			return
		}
		render.JSON(w, r, BadRequestResponse(err.Error(), nil))
		return
	}

	render.JSON(w, r, SuccessResponse("更新成功", po))
}

// DeletePurchaseOrder 删除采购订单
// @Summary 删除采购订单
// @Description 删除采购订单，删除操作不触发供应商绩效重算
// @Tags 采购订单
// @Produce json
// @Param id path string true "采购订单ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /purchase-orders/{id} [delete]
func (c *PurchaseOrderController) DeletePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		render.JSON(w, r, BadRequestResponse("ID参数不能为空", nil))
		return
	}

	if err := c.service.DeletePurchaseOrder(id); err != nil {
		render.JSON(w, r, BadRequestResponse(err.Error(), nil))
		return
	}

	render.JSON(w, r, SuccessResponse("删除成功", nil))
}
