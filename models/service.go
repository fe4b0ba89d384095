package models

import (
	"strings"

	"crm/store"
)

// Service 服务类别
const (
	ServiceCategoryDesign      = "design"
	ServiceCategoryDevelopment = "development"
	ServiceCategoryMarketing   = "marketing"
	ServiceCategoryConsulting  = "consulting"
	ServiceCategoryOther       = "other"
)

// Service 服务状态
const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"
	ServiceStatusArchived = "archived"
)

// GetServiceCategories 获取服务类别列表
func GetServiceCategories() []string {
	return []string{
		ServiceCategoryDesign,
		ServiceCategoryDevelopment,
		ServiceCategoryMarketing,
		ServiceCategoryConsulting,
		ServiceCategoryOther,
	}
}

// GetServiceStatuses 获取服务状态列表
func GetServiceStatuses() []string {
	return []string{
		ServiceStatusActive,
		ServiceStatusInactive,
		ServiceStatusArchived,
	}
}

// GetDurationUnits 获取服务周期单位列表
func GetDurationUnits() []string {
	return []string{"hours", "days", "weeks", "months"}
}

// Service 服务（价目表条目）模型，删除策略为物理删除
type Service struct {
	Base
	Name          string  `json:"name" gorm:"size:100;not null"`
	Description   string  `json:"description" gorm:"size:500;not null"`
	Category      string  `json:"category" gorm:"size:50;not null;index"`
	Price         float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	Currency      string  `json:"currency" gorm:"size:10;default:USD"`
	DurationValue int     `json:"duration_value"`
	DurationUnit  string  `json:"duration_unit" gorm:"size:20"`
	Status        string  `json:"status" gorm:"size:20;default:active;index"`
}

// TableName 设置表名
func (Service) TableName() string {
	return "services"
}

// MarkDeleted 服务不做软删除，此处仅为满足存储接口
func (s *Service) MarkDeleted() {
	s.Status = store.StatusDeleted
}

// Validate 创建/更新前的字段校验
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return store.NewValidationError("name", "服务名称不能为空")
	}
	if strings.TrimSpace(s.Description) == "" {
		return store.NewValidationError("description", "服务描述不能为空")
	}
	if !oneOf(s.Category, GetServiceCategories()) {
		return store.NewValidationError("category", "无效的服务类别")
	}
	if s.Price < 0 {
		return store.NewValidationError("price", "价格不能为负数")
	}
	if s.DurationUnit != "" && !oneOf(s.DurationUnit, GetDurationUnits()) {
		return store.NewValidationError("duration_unit", "无效的周期单位")
	}
	if s.Status == "" {
		s.Status = ServiceStatusActive
	}
	if s.Status != store.StatusDeleted && !oneOf(s.Status, GetServiceStatuses()) {
		return store.NewValidationError("status", "无效的服务状态")
	}
	return nil
}
