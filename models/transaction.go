package models

import (
	"strings"
	"time"

	"crm/store"
)

// Transaction 交易类型
const (
	TransactionTypeIncome = "income"
	TransactionTypeRefund = "refund"
)

// Transaction 交易状态
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

// GetTransactionTypes 获取交易类型列表
func GetTransactionTypes() []string {
	return []string{TransactionTypeIncome, TransactionTypeRefund}
}

// GetTransactionStatuses 获取交易状态列表
func GetTransactionStatuses() []string {
	return []string{
		TransactionStatusPending,
		TransactionStatusCompleted,
		TransactionStatusFailed,
		TransactionStatusCancelled,
	}
}

// GetPaymentMethods 获取支付方式列表（交易/收据/支出共用）
func GetPaymentMethods() []string {
	return []string{"cash", "card", "bank_transfer", "paypal", "other"}
}

// Transaction 交易记录模型
type Transaction struct {
	Base
	CustomerID      uint      `json:"customer_id" gorm:"index"`
	CustomerName    string    `json:"customer_name" gorm:"size:100;not null"`
	Amount          float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency        string    `json:"currency" gorm:"size:10;default:USD"`
	Type            string    `json:"type" gorm:"size:20;default:income;index"`
	Status          string    `json:"status" gorm:"size:20;default:pending;index"`
	PaymentMethod   string    `json:"payment_method" gorm:"size:30"`
	Description     string    `json:"description" gorm:"size:500"`
	InvoiceNumber   string    `json:"invoice_number" gorm:"size:40;uniqueIndex"`
	TransactionDate time.Time `json:"transaction_date" gorm:"index"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// MarkDeleted 软删除：状态置为 deleted
func (t *Transaction) MarkDeleted() {
	t.Status = store.StatusDeleted
}

// Validate 创建/更新前的字段校验
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.CustomerName) == "" {
		return store.NewValidationError("customer_name", "客户不能为空")
	}
	if t.Amount < 0 {
		return store.NewValidationError("amount", "金额不能为负数")
	}
	if t.Type == "" {
		t.Type = TransactionTypeIncome
	}
	if !oneOf(t.Type, GetTransactionTypes()) {
		return store.NewValidationError("type", "无效的交易类型")
	}
	if t.Status == "" {
		t.Status = TransactionStatusPending
	}
	if t.Status != store.StatusDeleted && !oneOf(t.Status, GetTransactionStatuses()) {
		return store.NewValidationError("status", "无效的交易状态")
	}
	if t.PaymentMethod != "" && !oneOf(t.PaymentMethod, GetPaymentMethods()) {
		return store.NewValidationError("payment_method", "无效的支付方式")
	}
	return nil
}
