/*
 * @module api/controllers/response
 * @description 统一API响应结构和响应构造函数
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 所有接口统一返回APIResponse结构，status为0表示成功
 * @dependencies net/http
 * @refs dev_docs/model.md
 */

package controllers

import "net/http"

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`
}

// PaginatedResponse 分页响应结构
type PaginatedResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data"`
	Total  int64       `json:"total" example:"100"`
	Page   int         `json:"page" example:"1"`
	Size   int         `json:"size" example:"10"`
}

// SuccessResponse 构造成功响应
func SuccessResponse(msg string, data interface{}) APIResponse {
	return APIResponse{Status: 0, Msg: msg, Data: data}
}

// SuccessPaginatedResponse 构造分页成功响应
func SuccessPaginatedResponse(msg string, data interface{}, total int64, page, size int) PaginatedResponse {
	return PaginatedResponse{Status: 0, Msg: msg, Data: data, Total: total, Page: page, Size: size}
}

// ErrorResponse 构造指定状态码的错误响应
func ErrorResponse(status int, msg string, data interface{}) APIResponse {
	return APIResponse{Status: status, Msg: msg, Data: data}
}

// BadRequestResponse 构造参数错误响应
func BadRequestResponse(msg string, data interface{}) APIResponse {
	return ErrorResponse(http.StatusBadRequest, msg, data)
}

// NotFoundResponse 构造资源不存在响应
func NotFoundResponse(msg string, data interface{}) APIResponse {
	return ErrorResponse(http.StatusNotFound, msg, data)
}

// InternalErrorResponse 构造服务内部错误响应
func InternalErrorResponse(msg string, data interface{}) APIResponse {
	return ErrorResponse(http.StatusInternalServerError, msg, data)
}
