/*
 * @module api/controllers/vendor_controller
 * @description 供应商API控制器，处理供应商CRUD和绩效查询请求
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式，参数验证
 * @dependencies vendor-service/service/vendor, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"vendor-service/service/models"
	"vendor-service/service/vendors"
)

// VendorController 供应商控制器
type VendorController struct {
	service *vendors.Service
}

// NewVendorController 创建供应商控制器实例
func NewVendorController(service *vendors.Service) *VendorController {
	return &VendorController{service: service}
}

// parsePagination 解析分页查询参数
func parsePagination(r *http.Request) (page, size int) {
	page = cast.ToInt(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	size = cast.ToInt(r.URL.Query().Get("size"))
	if size <= 0 || size > 100 {
		size = 10
	}
	return page, size
}

// CreateVendor 创建供应商
// @Summary 创建供应商
// @Description 创建新的供应商记录，供应商编码全局唯一
// @Tags 供应商
// @Accept json
// @Produce json
// @Param vendor body models.Vendor true "供应商信息"
// @Success 200 {object} APIResponse{data=models.Vendor}
// @Failure 400 {object} APIResponse
// @Router /vendors [post]
func (c *VendorController) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req models.Vendor
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse(fmt.Sprintf("请求参数格式错误:%s", err.Error()), nil))
		return
	}

	if err := c.service.CreateVendor(&req); err != nil {
		render.JSON(w, r, BadRequestResponse(err.Error(), nil))
		return
	}

	render.JSON(w, r, SuccessResponse("创建成功", &req))
}

// GetVendors 获取供应商列表
// @Summary 获取供应商列表
// @Description 分页获取供应商列表，支持按名称或编码模糊检索
// @Tags 供应商
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Param keyword query string false "名称或编码关键字"
// @Success 200 {object} PaginatedResponse{data=[]models.Vendor}
// @Failure 500 {object} APIResponse
// @Router /vendors [get]
func (c *VendorController) GetVendors(w http.ResponseWriter, r *http.Request) {
	page, size := parsePagination(r)
	keyword := r.URL.Query().Get("keyword")

	vendors, total, err := c.service.GetVendors(page, size, keyword)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("获取供应商列表失败", err))
		return
	}

	render.JSON(w, r, SuccessPaginatedResponse("查询成功", vendors, total, page, size))
}

// GetVendor 获取供应商详情
// @Summary 获取供应商详情
// @Description 根据ID获取供应商详细信息
// @Tags 供应商
// @Produce json
// @Param id path string true "供应商ID"
// @Success 200 {object} APIResponse{data=models.Vendor}
// @Failure 404 {object} APIResponse
// @Router /vendors/{id} [get]
func (c *VendorController) GetVendor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		render.JSON(w, r, BadRequestResponse("ID参数不能为空", nil))
		return
	}

	v, err := c.service.GetVendor(id)
	if err != nil {
		render.JSON(w, r, NotFoundResponse("供应商不存在", nil))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", v))
}

// UpdateVendor 更新供应商
// @Summary 更新供应商
// @Description 更新供应商描述性信息，绩效指标字段不可通过该接口修改
// @Tags 供应商
// @Accept json
// @Produce json
// @Param id path string true "供应商ID"
// @Param vendor body models.Vendor true "更新信息"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /vendors/{id} [put]
func (c *VendorController) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		render.JSON(w, r, BadRequestResponse("ID参数不能为空", nil))
		return
	}

	var req models.Vendor
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	if err := c.service.UpdateVendor(id, &req); err != nil {
		render.JSON(w, r, BadRequestResponse(err.Error(), nil))
		return
	}

	render.JSON(w, r, SuccessResponse("更新成功", nil))
}

// DeleteVendor 删除供应商
// @Summary 删除供应商
// @Description 删除供应商，级联删除其采购订单与历史绩效快照
// @Tags 供应商
// @Produce json
// @Param id path string true "供应商ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /vendors/{id} [delete]
func (c *VendorController) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		render.JSON(w, r, BadRequestResponse("ID参数不能为空", nil))
		return
	}

	if err := c.service.DeleteVendor(id); err != nil {
		render.JSON(w, r, BadRequestResponse(err.Error(), nil))
		return
	}

	render.JSON(w, r, SuccessResponse("删除成功", nil))
}

// GetVendorPerformance 获取供应商绩效
// @Summary 获取供应商绩效
// @Description 获取供应商当前四项绩效指标
// @Tags 供应商
// @Produce json
// @Param id path string true "供应商ID"
// @Success 200 {object} APIResponse{data=models.VendorPerformance}
// @Failure 404 {object} APIResponse
// @Router /vendors/{id}/performance [get]
func (c *VendorController) GetVendorPerformance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		render.JSON(w, r, BadRequestResponse("ID参数不能为空", nil))
		return
	}

	perf, err := c.service.GetVendorPerformance(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			render.JSON(w, r, NotFoundResponse("供应商不存在", nil))
			return
		}
		render.JSON(w, r, InternalErrorResponse("获取供应商绩效失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", perf))
}

// GetPerformanceHistory 获取供应商历史绩效快照
// @Summary 获取供应商历史绩效快照
// @Description 分页获取供应商历史绩效快照，按快照时间倒序
// @Tags 供应商
// @Produce json
// @Param id path string true "供应商ID"
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Success 200 {object} PaginatedResponse{data=[]models.HistoricalPerformance}
// @Failure 404 {object} APIResponse
// @Router /vendors/{id}/performance/history [get]
func (c *VendorController) GetPerformanceHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		render.JSON(w, r, BadRequestResponse("ID参数不能为空", nil))
		return
	}

	page, size := parsePagination(r)

	snapshots, total, err := c.service.GetPerformanceHistory(id, page, size)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			render.JSON(w, r, NotFoundResponse("供应商不存在", nil))
			return
		}
		render.JSON(w, r, InternalErrorResponse("获取历史绩效快照失败", err))
		return
	}

	render.JSON(w, r, SuccessPaginatedResponse("查询成功", snapshots, total, page, size))
}
