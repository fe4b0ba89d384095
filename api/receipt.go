package api

import (
	"strconv"
	"time"

	"crm/config"
	"crm/database"
	"crm/export"
	"crm/filter"
	"crm/models"
	"crm/service"
	"crm/store"

	"github.com/gin-gonic/gin"
)

// ReceiptHandler 收据处理器
type ReceiptHandler struct {
	res          *resource[models.Receipt, *models.Receipt]
	emailService *service.EmailService
}

// NewReceiptHandler 创建收据处理器
func NewReceiptHandler(cfg *config.Config) *ReceiptHandler {
	return NewReceiptHandlerWithStore(cfg, store.NewGorm[models.Receipt, *models.Receipt](database.GetDB))
}

// NewReceiptHandlerWithStore 使用指定存储创建收据处理器（测试用）
func NewReceiptHandlerWithStore(cfg *config.Config, s store.Store[models.Receipt, *models.Receipt]) *ReceiptHandler {
	return &ReceiptHandler{
		emailService: service.NewEmailService(&cfg.Email),
		res: &resource[models.Receipt, *models.Receipt]{
			store: s,
			name:  "收据",
			searchable: func(r *models.Receipt) []string {
				return []string{r.ReceiptNumber, r.CustomerName, r.CustomerEmail}
			},
			filterFields: filter.Fields[*models.Receipt]{
				"status":         func(r *models.Receipt) string { return r.Status },
				"payment_method": func(r *models.Receipt) string { return r.PaymentMethod },
			},
			filterParams: []string{"status", "payment_method"},
			amount:       func(r *models.Receipt) float64 { return r.Amount },
			category:     func(r *models.Receipt) string { return r.Status },
			status:       func(r *models.Receipt) string { return r.Status },
			csvHeaders:   []string{"Receipt Number", "Customer", "Email", "Amount", "Date", "Payment Method", "Status", "Items"},
			csvRow: func(r *models.Receipt) []string {
				return []string{
					r.ReceiptNumber,
					r.CustomerName,
					r.CustomerEmail,
					export.Money(r.Amount),
					r.IssueDate.Format("2006-01-02"),
					r.PaymentMethod,
					r.Status,
					strconv.Itoa(r.Items),
				}
			},
			csvFilename: "receipts.csv",
			deleteMode:  store.DeleteSoft,
		},
	}
}

// CreateReceiptRequest 创建收据请求
type CreateReceiptRequest struct {
	ReceiptNumber string  `json:"receipt_number" example:"RCP-1001"`
	CustomerName  string  `json:"customer_name" binding:"required" example:"Acme Inc"`
	CustomerEmail string  `json:"customer_email" binding:"omitempty,email"`
	Amount        float64 `json:"amount" binding:"required,gte=0" example:"1500.00"`
	Tax           float64 `json:"tax" binding:"gte=0"`
	Discount      float64 `json:"discount" binding:"gte=0"`
	Currency      string  `json:"currency" example:"USD"`
	Items         int     `json:"items" binding:"gte=0" example:"3"`
	PaymentMethod string  `json:"payment_method" example:"bank_transfer"`
	Status        string  `json:"status" example:"draft"`
	IssueDate     string  `json:"issue_date" example:"2024-01-15"`
	DueDate       string  `json:"due_date"`
	Notes         string  `json:"notes"`
}

// UpdateReceiptRequest 更新收据请求，仅更新出现的字段
type UpdateReceiptRequest struct {
	CustomerName  *string  `json:"customer_name"`
	CustomerEmail *string  `json:"customer_email"`
	Amount        *float64 `json:"amount"`
	Tax           *float64 `json:"tax"`
	Discount      *float64 `json:"discount"`
	Currency      *string  `json:"currency"`
	Items         *int     `json:"items"`
	PaymentMethod *string  `json:"payment_method"`
	Status        *string  `json:"status"`
	IssueDate     *string  `json:"issue_date"`
	DueDate       *string  `json:"due_date"`
	Notes         *string  `json:"notes"`
}

// Create 创建收据
// @Summary 创建收据
// @Description 创建收据，未提供编号时自动生成，状态默认为 draft
// @Tags 收据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReceiptRequest true "收据信息"
// @Success 201 {object} Response{data=models.Receipt} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	issueDate := time.Now()
	if req.IssueDate != "" {
		t, err := parseDate(req.IssueDate)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		issueDate = t
	}
	var dueDate *time.Time
	if req.DueDate != "" {
		t, err := parseDate(req.DueDate)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		dueDate = &t
	}

	items := req.Items
	if items == 0 {
		items = 1
	}
	receipt := models.Receipt{
		ReceiptNumber: defaultString(req.ReceiptNumber, nextNumber("RCP")),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Amount:        req.Amount,
		Tax:           req.Tax,
		Discount:      req.Discount,
		Currency:      defaultString(req.Currency, "USD"),
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		Status:        defaultString(req.Status, models.ReceiptStatusDraft),
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Notes:         req.Notes,
	}

	if err := h.res.store.Create(c.Request.Context(), &receipt); err != nil {
		StoreError(c, err, "创建收据失败")
		return
	}
	Created(c, "创建成功", receipt)
}

// Update 更新收据
// @Summary 更新收据
// @Tags 收据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "收据ID"
// @Param request body UpdateReceiptRequest true "收据信息"
// @Success 200 {object} Response{data=models.Receipt} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/receipts/{id} [put]
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var issueDate, dueDate *time.Time
	if req.IssueDate != nil {
		t, err := parseDate(*req.IssueDate)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		issueDate = &t
	}
	if req.DueDate != nil {
		t, err := parseDate(*req.DueDate)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		dueDate = &t
	}

	receipt, err := h.res.store.Update(c.Request.Context(), id, func(r *models.Receipt) {
		setString(&r.CustomerName, req.CustomerName)
		setString(&r.CustomerEmail, req.CustomerEmail)
		setFloat(&r.Amount, req.Amount)
		setFloat(&r.Tax, req.Tax)
		setFloat(&r.Discount, req.Discount)
		setString(&r.Currency, req.Currency)
		setInt(&r.Items, req.Items)
		setString(&r.PaymentMethod, req.PaymentMethod)
		setString(&r.Notes, req.Notes)
		if req.Status != nil {
			r.Status = *req.Status
			// 标记为已支付时记录支付时间
			if r.Status == models.ReceiptStatusPaid && r.PaidDate == nil {
				now := time.Now()
				r.PaidDate = &now
			}
		}
		if issueDate != nil {
			r.IssueDate = *issueDate
		}
		if dueDate != nil {
			r.DueDate = dueDate
		}
	})
	if err != nil {
		StoreError(c, err, "更新收据失败")
		return
	}
	SuccessWithMessage(c, "更新成功", receipt)
}

// Send 将收据发送到客户邮箱并标记为 sent
// @Summary 发送收据
// @Tags 收据
// @Produce json
// @Security BearerAuth
// @Param id path int true "收据ID"
// @Success 200 {object} Response{data=models.Receipt} "发送成功"
// @Failure 400 {object} Response "客户邮箱为空或邮件服务未启用"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/receipts/{id}/send [post]
func (h *ReceiptHandler) Send(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	receipt, err := h.res.store.Get(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err, "查询收据失败")
		return
	}
	if receipt.CustomerEmail == "" {
		BadRequest(c, "客户邮箱为空，无法发送收据")
		return
	}

	if err := h.emailService.SendReceiptEmail(receipt); err != nil {
		InternalError(c, SafeErrorMessage(err, "发送收据失败"))
		return
	}

	// 草稿发送后进入 sent 状态
	updated, err := h.res.store.Update(c.Request.Context(), id, func(r *models.Receipt) {
		if r.Status == models.ReceiptStatusDraft {
			r.Status = models.ReceiptStatusSent
		}
	})
	if err != nil {
		StoreError(c, err, "更新收据状态失败")
		return
	}
	SuccessWithMessage(c, "发送成功", updated)
}

// List 获取收据列表
// @Summary 获取收据列表
// @Description 支持 search 关键字搜索（编号/客户/邮箱）和 status/payment_method 筛选
// @Tags 收据
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Receipt} "获取成功"
// @Router /api/v1/receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) { h.res.list(c) }

// Get 获取单条收据
// @Summary 获取单条收据
// @Tags 收据
// @Produce json
// @Security BearerAuth
// @Param id path int true "收据ID"
// @Success 200 {object} Response{data=models.Receipt} "获取成功"
// @Router /api/v1/receipts/{id} [get]
func (h *ReceiptHandler) Get(c *gin.Context) { h.res.get(c) }

// Delete 删除收据（软删除）
// @Summary 删除收据
// @Tags 收据
// @Produce json
// @Security BearerAuth
// @Param id path int true "收据ID"
// @Success 200 {object} Response "删除成功"
// @Router /api/v1/receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *gin.Context) { h.res.remove(c) }

// GetStatistics 获取收据统计（按状态分布）
// @Summary 获取收据统计
// @Tags 收据
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/receipts/statistics [get]
func (h *ReceiptHandler) GetStatistics(c *gin.Context) { h.res.statistics(c) }

// ExportCSV 导出收据为 CSV
// @Summary 导出收据
// @Tags 收据
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "CSV 文件"
// @Router /api/v1/receipts/export/csv [get]
func (h *ReceiptHandler) ExportCSV(c *gin.Context) { h.res.exportCSV(c) }
