package api

import (
	"time"

	"crm/database"
	"crm/export"
	"crm/filter"
	"crm/models"
	"crm/store"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 交易处理器
type TransactionHandler struct {
	res *resource[models.Transaction, *models.Transaction]
}

// NewTransactionHandler 创建交易处理器
func NewTransactionHandler() *TransactionHandler {
	return NewTransactionHandlerWithStore(store.NewGorm[models.Transaction, *models.Transaction](database.GetDB))
}

// NewTransactionHandlerWithStore 使用指定存储创建交易处理器（测试用）
func NewTransactionHandlerWithStore(s store.Store[models.Transaction, *models.Transaction]) *TransactionHandler {
	return &TransactionHandler{res: &resource[models.Transaction, *models.Transaction]{
		store: s,
		name:  "交易",
		searchable: func(t *models.Transaction) []string {
			return []string{t.CustomerName, t.Description, t.InvoiceNumber}
		},
		filterFields: filter.Fields[*models.Transaction]{
			"type":           func(t *models.Transaction) string { return t.Type },
			"status":         func(t *models.Transaction) string { return t.Status },
			"payment_method": func(t *models.Transaction) string { return t.PaymentMethod },
		},
		filterParams: []string{"type", "status", "payment_method"},
		amount:       func(t *models.Transaction) float64 { return t.Amount },
		// 交易按支付方式分组统计
		category: func(t *models.Transaction) string { return t.PaymentMethod },
		status:   func(t *models.Transaction) string { return t.Status },
		csvHeaders: []string{
			"Invoice Number", "Customer", "Amount", "Type", "Status", "Payment Method", "Date", "Description",
		},
		csvRow: func(t *models.Transaction) []string {
			return []string{
				t.InvoiceNumber,
				t.CustomerName,
				export.Money(t.Amount),
				t.Type,
				t.Status,
				t.PaymentMethod,
				t.TransactionDate.Format("2006-01-02"),
				t.Description,
			}
		},
		csvFilename: "transactions.csv",
		deleteMode:  store.DeleteSoft,
	}}
}

// CreateTransactionRequest 创建交易请求
type CreateTransactionRequest struct {
	CustomerID      uint    `json:"customer_id"`
	CustomerName    string  `json:"customer_name" binding:"required" example:"Acme Inc"`
	Amount          float64 `json:"amount" binding:"required,gte=0" example:"3000.00"`
	Currency        string  `json:"currency" example:"USD"`
	Type            string  `json:"type" example:"income"`
	Status          string  `json:"status" example:"pending"`
	PaymentMethod   string  `json:"payment_method" example:"bank_transfer"`
	Description     string  `json:"description"`
	InvoiceNumber   string  `json:"invoice_number"`
	TransactionDate string  `json:"transaction_date" example:"2024-01-15"`
}

// UpdateTransactionRequest 更新交易请求，仅更新出现的字段
type UpdateTransactionRequest struct {
	CustomerName    *string  `json:"customer_name"`
	Amount          *float64 `json:"amount"`
	Currency        *string  `json:"currency"`
	Type            *string  `json:"type"`
	Status          *string  `json:"status"`
	PaymentMethod   *string  `json:"payment_method"`
	Description     *string  `json:"description"`
	TransactionDate *string  `json:"transaction_date"`
}

// Create 创建交易
// @Summary 创建交易
// @Description 创建交易记录，未提供发票号时自动生成，状态默认为 pending
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "交易信息"
// @Success 201 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	transactionDate := time.Now()
	if req.TransactionDate != "" {
		t, err := parseDate(req.TransactionDate)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		transactionDate = t
	}

	txn := models.Transaction{
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		Amount:          req.Amount,
		Currency:        defaultString(req.Currency, "USD"),
		Type:            defaultString(req.Type, models.TransactionTypeIncome),
		Status:          defaultString(req.Status, models.TransactionStatusPending),
		PaymentMethod:   req.PaymentMethod,
		Description:     req.Description,
		InvoiceNumber:   defaultString(req.InvoiceNumber, nextNumber("INV")),
		TransactionDate: transactionDate,
	}

	if err := h.res.store.Create(c.Request.Context(), &txn); err != nil {
		StoreError(c, err, "创建交易失败")
		return
	}
	Created(c, "创建成功", txn)
}

// Update 更新交易
// @Summary 更新交易
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Param request body UpdateTransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var transactionDate *time.Time
	if req.TransactionDate != nil {
		t, err := parseDate(*req.TransactionDate)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		transactionDate = &t
	}

	txn, err := h.res.store.Update(c.Request.Context(), id, func(t *models.Transaction) {
		setString(&t.CustomerName, req.CustomerName)
		setFloat(&t.Amount, req.Amount)
		setString(&t.Currency, req.Currency)
		setString(&t.Type, req.Type)
		setString(&t.Status, req.Status)
		setString(&t.PaymentMethod, req.PaymentMethod)
		setString(&t.Description, req.Description)
		if transactionDate != nil {
			t.TransactionDate = *transactionDate
		}
	})
	if err != nil {
		StoreError(c, err, "更新交易失败")
		return
	}
	SuccessWithMessage(c, "更新成功", txn)
}

// List 获取交易列表
// @Summary 获取交易列表
// @Description 支持 search 关键字搜索（客户/描述/发票号）和 type/status/payment_method 筛选
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Transaction} "获取成功"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) { h.res.list(c) }

// Get 获取单条交易
func (h *TransactionHandler) Get(c *gin.Context) { h.res.get(c) }

// Delete 删除交易（软删除）
func (h *TransactionHandler) Delete(c *gin.Context) { h.res.remove(c) }

// GetStatistics 获取交易统计（按支付方式分布）
func (h *TransactionHandler) GetStatistics(c *gin.Context) { h.res.statistics(c) }

// ExportCSV 导出交易为 CSV
func (h *TransactionHandler) ExportCSV(c *gin.Context) { h.res.exportCSV(c) }
