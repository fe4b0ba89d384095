package models

import (
	"strings"
	"time"

	"crm/store"
)

// Receipt 收据状态
const (
	ReceiptStatusDraft     = "draft"
	ReceiptStatusSent      = "sent"
	ReceiptStatusPaid      = "paid"
	ReceiptStatusCancelled = "cancelled"
)

// GetReceiptStatuses 获取收据状态列表
func GetReceiptStatuses() []string {
	return []string{
		ReceiptStatusDraft,
		ReceiptStatusSent,
		ReceiptStatusPaid,
		ReceiptStatusCancelled,
	}
}

// Receipt 收据模型
type Receipt struct {
	Base
	ReceiptNumber string     `json:"receipt_number" gorm:"size:40;uniqueIndex;not null"`
	CustomerName  string     `json:"customer_name" gorm:"size:100;not null"`
	CustomerEmail string     `json:"customer_email" gorm:"size:100;index"`
	Amount        float64    `json:"amount" gorm:"type:decimal(12,2);not null"`
	Tax           float64    `json:"tax" gorm:"type:decimal(12,2);default:0"`
	Discount      float64    `json:"discount" gorm:"type:decimal(12,2);default:0"`
	Currency      string     `json:"currency" gorm:"size:10;default:USD"`
	Items         int        `json:"items" gorm:"default:1"`
	PaymentMethod string     `json:"payment_method" gorm:"size:30"`
	Status        string     `json:"status" gorm:"size:20;default:draft;index"`
	IssueDate     time.Time  `json:"issue_date"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	PaidDate      *time.Time `json:"paid_date,omitempty"`
	Notes         string     `json:"notes" gorm:"size:500"`
}

// TableName 设置表名
func (Receipt) TableName() string {
	return "receipts"
}

// MarkDeleted 软删除：状态置为 deleted
func (r *Receipt) MarkDeleted() {
	r.Status = store.StatusDeleted
}

// Validate 创建/更新前的字段校验
func (r *Receipt) Validate() error {
	if strings.TrimSpace(r.ReceiptNumber) == "" {
		return store.NewValidationError("receipt_number", "收据编号不能为空")
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		return store.NewValidationError("customer_name", "客户不能为空")
	}
	if r.Amount < 0 {
		return store.NewValidationError("amount", "金额不能为负数")
	}
	if r.Tax < 0 {
		return store.NewValidationError("tax", "税额不能为负数")
	}
	if r.Discount < 0 {
		return store.NewValidationError("discount", "折扣不能为负数")
	}
	if r.Items < 0 {
		return store.NewValidationError("items", "条目数不能为负数")
	}
	if r.PaymentMethod != "" && !oneOf(r.PaymentMethod, GetPaymentMethods()) {
		return store.NewValidationError("payment_method", "无效的支付方式")
	}
	if r.Status == "" {
		r.Status = ReceiptStatusDraft
	}
	if r.Status != store.StatusDeleted && !oneOf(r.Status, GetReceiptStatuses()) {
		return store.NewValidationError("status", "无效的收据状态")
	}
	return nil
}
