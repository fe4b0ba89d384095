package api

import (
	"errors"
	"net/http"

	"crm/config"
	"crm/store"

	"github.com/gin-gonic/gin"
)

// 错误类型，响应中的机器可读 error 字段
const (
	ErrKindValidation   = "ValidationError"
	ErrKindNotFound     = "NotFoundError"
	ErrKindUnauthorized = "Unauthorized"
	ErrKindInternal     = "InternalError"
)

// Response 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// SuccessWithCount 带记录数的成功响应（列表接口）
func SuccessWithCount(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, Response{Success: true, Count: &count, Data: data})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Created 创建成功响应
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Error 错误响应
func Error(c *gin.Context, status int, kind, message string) {
	c.JSON(status, Response{Success: false, Error: kind, Message: message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, ErrKindValidation, message)
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, ErrKindUnauthorized, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, ErrKindNotFound, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, ErrKindInternal, message)
}

// StoreError 将存储层错误映射为对应的 HTTP 错误响应
// 校验失败 400、记录不存在 404、其余按内部错误 500 处理
func StoreError(c *gin.Context, err error, fallback string) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		BadRequest(c, ve.Error())
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, "记录不存在")
	default:
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}
