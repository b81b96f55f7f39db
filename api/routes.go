/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference dev_docs/requirements.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"vendor-service/api/controllers"
	"vendor-service/service"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController()
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 供应商管理
	r.Route("/vendors", func(r chi.Router) {
		vendorController := controllers.NewVendorController(service.GlobalVendorService)

		r.Post("/", vendorController.CreateVendor)
		r.Get("/", vendorController.GetVendors)
		r.Get("/{id}", vendorController.GetVendor)
		r.Put("/{id}", vendorController.UpdateVendor)
		r.Delete("/{id}", vendorController.DeleteVendor)

		// 绩效查询
		r.Get("/{id}/performance", vendorController.GetVendorPerformance)
		r.Get("/{id}/performance/history", vendorController.GetPerformanceHistory)
	})

	// 采购订单管理
	r.Route("/purchase-orders", func(r chi.Router) {
		purchaseOrderController := controllers.NewPurchaseOrderController(service.GlobalPurchaseOrderService)

		r.Post("/", purchaseOrderController.CreatePurchaseOrder)
		r.Get("/", purchaseOrderController.GetPurchaseOrders)
		r.Get("/{id}", purchaseOrderController.GetPurchaseOrder)
		r.Put("/{id}", purchaseOrderController.UpdatePurchaseOrder)
		r.Delete("/{id}", purchaseOrderController.DeletePurchaseOrder)
	})
}
