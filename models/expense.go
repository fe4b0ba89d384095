package models

import (
	"strings"
	"time"

	"crm/store"
)

// Expense 支出类别
const (
	ExpenseCategoryOffice    = "office"
	ExpenseCategorySoftware  = "software"
	ExpenseCategoryMarketing = "marketing"
	ExpenseCategoryTravel    = "travel"
	ExpenseCategoryUtilities = "utilities"
	ExpenseCategorySalaries  = "salaries"
	ExpenseCategoryOther     = "other"
)

// Expense 支出状态
const (
	ExpenseStatusPending  = "pending"
	ExpenseStatusApproved = "approved"
	ExpenseStatusRejected = "rejected"
)

// GetExpenseCategories 获取支出类别列表
func GetExpenseCategories() []string {
	return []string{
		ExpenseCategoryOffice,
		ExpenseCategorySoftware,
		ExpenseCategoryMarketing,
		ExpenseCategoryTravel,
		ExpenseCategoryUtilities,
		ExpenseCategorySalaries,
		ExpenseCategoryOther,
	}
}

// GetExpenseStatuses 获取支出状态列表
func GetExpenseStatuses() []string {
	return []string{
		ExpenseStatusPending,
		ExpenseStatusApproved,
		ExpenseStatusRejected,
	}
}

// GetExpensePaymentMethods 获取支出支付方式列表
func GetExpensePaymentMethods() []string {
	return []string{"cash", "card", "bank_transfer", "other"}
}

// Expense 支出记录模型
type Expense struct {
	Base
	Title         string    `json:"title" gorm:"size:100;not null"`
	Amount        float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency      string    `json:"currency" gorm:"size:10;default:USD"`
	Category      string    `json:"category" gorm:"size:50;not null;index"`
	Description   string    `json:"description" gorm:"size:500"`
	Vendor        string    `json:"vendor" gorm:"size:100"`
	PaymentMethod string    `json:"payment_method" gorm:"size:30"`
	ReceiptURL    string    `json:"receipt_url" gorm:"size:255"`
	ExpenseDate   time.Time `json:"expense_date" gorm:"index"`
	Status        string    `json:"status" gorm:"size:20;default:pending;index"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// MarkDeleted 软删除：状态置为 deleted
func (e *Expense) MarkDeleted() {
	e.Status = store.StatusDeleted
}

// Validate 创建/更新前的字段校验
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return store.NewValidationError("title", "支出标题不能为空")
	}
	if e.Amount < 0 {
		return store.NewValidationError("amount", "金额不能为负数")
	}
	if !oneOf(e.Category, GetExpenseCategories()) {
		return store.NewValidationError("category", "无效的支出类别")
	}
	if e.PaymentMethod != "" && !oneOf(e.PaymentMethod, GetExpensePaymentMethods()) {
		return store.NewValidationError("payment_method", "无效的支付方式")
	}
	if e.Status == "" {
		e.Status = ExpenseStatusPending
	}
	if e.Status != store.StatusDeleted && !oneOf(e.Status, GetExpenseStatuses()) {
		return store.NewValidationError("status", "无效的支出状态")
	}
	return nil
}
