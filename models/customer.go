package models

import (
	"strings"

	"crm/store"
)

// Customer 客户状态
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
	CustomerStatusPending  = "pending"
)

// GetCustomerStatuses 获取客户状态列表（不含软删除终态）
func GetCustomerStatuses() []string {
	return []string{
		CustomerStatusActive,
		CustomerStatusInactive,
		CustomerStatusPending,
	}
}

// Customer 客户模型
type Customer struct {
	Base
	FirstName  string  `json:"first_name" gorm:"size:50;not null"`
	LastName   string  `json:"last_name" gorm:"size:50;not null"`
	Email      string  `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Phone      string  `json:"phone" gorm:"size:30"`
	Company    string  `json:"company" gorm:"size:100;index"`
	Street     string  `json:"street" gorm:"size:100"`
	City       string  `json:"city" gorm:"size:50"`
	State      string  `json:"state" gorm:"size:50"`
	ZipCode    string  `json:"zip_code" gorm:"size:20"`
	Country    string  `json:"country" gorm:"size:50"`
	Status     string  `json:"status" gorm:"size:20;default:active;index"`
	TotalSpent float64 `json:"total_spent" gorm:"type:decimal(12,2);default:0"`
	Notes      string  `json:"notes" gorm:"size:500"`
}

// TableName 设置表名
func (Customer) TableName() string {
	return "customers"
}

// MarkDeleted 软删除：状态置为 deleted
func (c *Customer) MarkDeleted() {
	c.Status = store.StatusDeleted
}

// Validate 创建/更新前的字段校验
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return store.NewValidationError("first_name", "名字不能为空")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return store.NewValidationError("last_name", "姓氏不能为空")
	}
	if strings.TrimSpace(c.Email) == "" {
		return store.NewValidationError("email", "邮箱不能为空")
	}
	if c.TotalSpent < 0 {
		return store.NewValidationError("total_spent", "累计消费不能为负数")
	}
	if c.Status == "" {
		c.Status = CustomerStatusActive
	}
	if c.Status != store.StatusDeleted && !oneOf(c.Status, GetCustomerStatuses()) {
		return store.NewValidationError("status", "无效的客户状态")
	}
	return nil
}
