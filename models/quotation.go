package models

import (
	"strings"
	"time"

	"crm/store"
)

// Quotation 报价单状态
const (
	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusAccepted = "accepted"
	QuotationStatusRejected = "rejected"
	QuotationStatusExpired  = "expired"
)

// GetQuotationStatuses 获取报价单状态列表
func GetQuotationStatuses() []string {
	return []string{
		QuotationStatusDraft,
		QuotationStatusSent,
		QuotationStatusAccepted,
		QuotationStatusRejected,
		QuotationStatusExpired,
	}
}

// Quotation 报价单模型
type Quotation struct {
	Base
	QuoteNumber   string     `json:"quote_number" gorm:"size:40;uniqueIndex;not null"`
	CustomerName  string     `json:"customer_name" gorm:"size:100;not null"`
	CustomerEmail string     `json:"customer_email" gorm:"size:100"`
	Amount        float64    `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency      string     `json:"currency" gorm:"size:10;default:USD"`
	Status        string     `json:"status" gorm:"size:20;default:draft;index"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`
	Notes         string     `json:"notes" gorm:"size:500"`
}

// TableName 设置表名
func (Quotation) TableName() string {
	return "quotations"
}

// MarkDeleted 软删除：状态置为 deleted
func (q *Quotation) MarkDeleted() {
	q.Status = store.StatusDeleted
}

// Validate 创建/更新前的字段校验
func (q *Quotation) Validate() error {
	if strings.TrimSpace(q.QuoteNumber) == "" {
		return store.NewValidationError("quote_number", "报价单编号不能为空")
	}
	if strings.TrimSpace(q.CustomerName) == "" {
		return store.NewValidationError("customer_name", "客户不能为空")
	}
	if q.Amount < 0 {
		return store.NewValidationError("amount", "金额不能为负数")
	}
	if q.Status == "" {
		q.Status = QuotationStatusDraft
	}
	if q.Status != store.StatusDeleted && !oneOf(q.Status, GetQuotationStatuses()) {
		return store.NewValidationError("status", "无效的报价单状态")
	}
	return nil
}
