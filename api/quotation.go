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

// QuotationHandler 报价单处理器
type QuotationHandler struct {
	res *resource[models.Quotation, *models.Quotation]
}

// NewQuotationHandler 创建报价单处理器
func NewQuotationHandler() *QuotationHandler {
	return NewQuotationHandlerWithStore(store.NewGorm[models.Quotation, *models.Quotation](database.GetDB))
}

// NewQuotationHandlerWithStore 使用指定存储创建报价单处理器（测试用）
func NewQuotationHandlerWithStore(s store.Store[models.Quotation, *models.Quotation]) *QuotationHandler {
	return &QuotationHandler{res: &resource[models.Quotation, *models.Quotation]{
		store: s,
		name:  "报价单",
		searchable: func(q *models.Quotation) []string {
			return []string{q.QuoteNumber, q.CustomerName, q.CustomerEmail, q.Notes}
		},
		filterFields: filter.Fields[*models.Quotation]{
			"status": func(q *models.Quotation) string { return q.Status },
		},
		filterParams: []string{"status"},
		amount:       func(q *models.Quotation) float64 { return q.Amount },
		category:     func(q *models.Quotation) string { return q.Status },
		status:       func(q *models.Quotation) string { return q.Status },
		csvHeaders:   []string{"Quote Number", "Customer", "Email", "Amount", "Status", "Valid Until", "Date"},
		csvRow: func(q *models.Quotation) []string {
			validUntil := ""
			if q.ValidUntil != nil {
				validUntil = q.ValidUntil.Format("2006-01-02")
			}
			return []string{
				q.QuoteNumber,
				q.CustomerName,
				q.CustomerEmail,
				export.Money(q.Amount),
				q.Status,
				validUntil,
				q.CreatedAt.Format("2006-01-02"),
			}
		},
		csvFilename: "quotations.csv",
		deleteMode:  store.DeleteSoft,
	}}
}

// CreateQuotationRequest 创建报价单请求
type CreateQuotationRequest struct {
	QuoteNumber   string  `json:"quote_number"`
	CustomerName  string  `json:"customer_name" binding:"required" example:"Acme Inc"`
	CustomerEmail string  `json:"customer_email" binding:"omitempty,email"`
	Amount        float64 `json:"amount" binding:"required,gte=0" example:"5000.00"`
	Currency      string  `json:"currency" example:"USD"`
	Status        string  `json:"status" example:"draft"`
	ValidUntil    string  `json:"valid_until" example:"2024-02-15"`
	Notes         string  `json:"notes"`
}

// UpdateQuotationRequest 更新报价单请求，仅更新出现的字段
type UpdateQuotationRequest struct {
	CustomerName  *string  `json:"customer_name"`
	CustomerEmail *string  `json:"customer_email"`
	Amount        *float64 `json:"amount"`
	Currency      *string  `json:"currency"`
	Status        *string  `json:"status"`
	ValidUntil    *string  `json:"valid_until"`
	Notes         *string  `json:"notes"`
}

// Create 创建报价单
// @Summary 创建报价单
// @Description 创建报价单，未提供编号时自动生成，状态默认为 draft
// @Tags 报价单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateQuotationRequest true "报价单信息"
// @Success 201 {object} Response{data=models.Quotation} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	var req CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var validUntil *time.Time
	if req.ValidUntil != "" {
		t, err := parseDate(req.ValidUntil)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		validUntil = &t
	}

	quotation := models.Quotation{
		QuoteNumber:   defaultString(req.QuoteNumber, nextNumber("QUO")),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Amount:        req.Amount,
		Currency:      defaultString(req.Currency, "USD"),
		Status:        defaultString(req.Status, models.QuotationStatusDraft),
		ValidUntil:    validUntil,
		Notes:         req.Notes,
	}

	if err := h.res.store.Create(c.Request.Context(), &quotation); err != nil {
		StoreError(c, err, "创建报价单失败")
		return
	}
	Created(c, "创建成功", quotation)
}

// Update 更新报价单
// @Summary 更新报价单
// @Tags 报价单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "报价单ID"
// @Param request body UpdateQuotationRequest true "报价单信息"
// @Success 200 {object} Response{data=models.Quotation} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var validUntil *time.Time
	if req.ValidUntil != nil {
		t, err := parseDate(*req.ValidUntil)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		validUntil = &t
	}

	quotation, err := h.res.store.Update(c.Request.Context(), id, func(q *models.Quotation) {
		setString(&q.CustomerName, req.CustomerName)
		setString(&q.CustomerEmail, req.CustomerEmail)
		setFloat(&q.Amount, req.Amount)
		setString(&q.Currency, req.Currency)
		setString(&q.Status, req.Status)
		setString(&q.Notes, req.Notes)
		if validUntil != nil {
			q.ValidUntil = validUntil
		}
	})
	if err != nil {
		StoreError(c, err, "更新报价单失败")
		return
	}
	SuccessWithMessage(c, "更新成功", quotation)
}

// List 获取报价单列表
// @Summary 获取报价单列表
// @Description 支持 search 关键字搜索（编号/客户/邮箱/备注）和 status 筛选
// @Tags 报价单
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Quotation} "获取成功"
// @Router /api/v1/quotations [get]
func (h *QuotationHandler) List(c *gin.Context) { h.res.list(c) }

// Get 获取单个报价单
func (h *QuotationHandler) Get(c *gin.Context) { h.res.get(c) }

// Delete 删除报价单（软删除）
func (h *QuotationHandler) Delete(c *gin.Context) { h.res.remove(c) }

// GetStatistics 获取报价单统计（按状态分布）
func (h *QuotationHandler) GetStatistics(c *gin.Context) { h.res.statistics(c) }

// ExportCSV 导出报价单为 CSV
func (h *QuotationHandler) ExportCSV(c *gin.Context) { h.res.exportCSV(c) }
