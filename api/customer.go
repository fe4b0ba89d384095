package api

import (
	"crm/database"
	"crm/export"
	"crm/filter"
	"crm/models"
	"crm/store"

	"github.com/gin-gonic/gin"
)

// CustomerHandler 客户处理器
type CustomerHandler struct {
	res *resource[models.Customer, *models.Customer]
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler() *CustomerHandler {
	return NewCustomerHandlerWithStore(store.NewGorm[models.Customer, *models.Customer](database.GetDB))
}

// NewCustomerHandlerWithStore 使用指定存储创建客户处理器（测试用）
func NewCustomerHandlerWithStore(s store.Store[models.Customer, *models.Customer]) *CustomerHandler {
	return &CustomerHandler{res: &resource[models.Customer, *models.Customer]{
		store: s,
		name:  "客户",
		searchable: func(cu *models.Customer) []string {
			return []string{cu.FirstName, cu.LastName, cu.Email, cu.Company}
		},
		filterFields: filter.Fields[*models.Customer]{
			"status": func(cu *models.Customer) string { return cu.Status },
		},
		filterParams: []string{"status"},
		// 客户按累计消费额统计，按状态分组
		amount:   func(cu *models.Customer) float64 { return cu.TotalSpent },
		category: func(cu *models.Customer) string { return cu.Status },
		status:   func(cu *models.Customer) string { return cu.Status },
		csvHeaders: []string{
			"First Name", "Last Name", "Email", "Phone", "Company", "Status", "Total Spent",
		},
		csvRow: func(cu *models.Customer) []string {
			return []string{
				cu.FirstName,
				cu.LastName,
				cu.Email,
				cu.Phone,
				cu.Company,
				cu.Status,
				export.Money(cu.TotalSpent),
			}
		},
		csvFilename: "customers.csv",
		deleteMode:  store.DeleteSoft,
	}}
}

// CreateCustomerRequest 创建客户请求
type CreateCustomerRequest struct {
	FirstName  string  `json:"first_name" binding:"required" example:"Jane"`
	LastName   string  `json:"last_name" binding:"required" example:"Doe"`
	Email      string  `json:"email" binding:"required,email" example:"jane@example.com"`
	Phone      string  `json:"phone"`
	Company    string  `json:"company"`
	Street     string  `json:"street"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	ZipCode    string  `json:"zip_code"`
	Country    string  `json:"country"`
	Status     string  `json:"status" example:"active"`
	Notes      string  `json:"notes"`
	TotalSpent float64 `json:"total_spent" binding:"gte=0"`
}

// UpdateCustomerRequest 更新客户请求，仅更新出现的字段
type UpdateCustomerRequest struct {
	FirstName  *string  `json:"first_name"`
	LastName   *string  `json:"last_name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Company    *string  `json:"company"`
	Street     *string  `json:"street"`
	City       *string  `json:"city"`
	State      *string  `json:"state"`
	ZipCode    *string  `json:"zip_code"`
	Country    *string  `json:"country"`
	Status     *string  `json:"status"`
	Notes      *string  `json:"notes"`
	TotalSpent *float64 `json:"total_spent"`
}

// Create 创建客户
// @Summary 创建客户
// @Tags 客户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCustomerRequest true "客户信息"
// @Success 201 {object} Response{data=models.Customer} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	customer := models.Customer{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		ZipCode:    req.ZipCode,
		Country:    req.Country,
		Status:     defaultString(req.Status, models.CustomerStatusActive),
		Notes:      req.Notes,
		TotalSpent: req.TotalSpent,
	}

	if err := h.res.store.Create(c.Request.Context(), &customer); err != nil {
		StoreError(c, err, "创建客户失败")
		return
	}
	Created(c, "创建成功", customer)
}

// Update 更新客户
// @Summary 更新客户
// @Tags 客户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "客户ID"
// @Param request body UpdateCustomerRequest true "客户信息"
// @Success 200 {object} Response{data=models.Customer} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	customer, err := h.res.store.Update(c.Request.Context(), id, func(cu *models.Customer) {
		setString(&cu.FirstName, req.FirstName)
		setString(&cu.LastName, req.LastName)
		setString(&cu.Email, req.Email)
		setString(&cu.Phone, req.Phone)
		setString(&cu.Company, req.Company)
		setString(&cu.Street, req.Street)
		setString(&cu.City, req.City)
		setString(&cu.State, req.State)
		setString(&cu.ZipCode, req.ZipCode)
		setString(&cu.Country, req.Country)
		setString(&cu.Status, req.Status)
		setString(&cu.Notes, req.Notes)
		setFloat(&cu.TotalSpent, req.TotalSpent)
	})
	if err != nil {
		StoreError(c, err, "更新客户失败")
		return
	}
	SuccessWithMessage(c, "更新成功", customer)
}

// List 获取客户列表
// @Summary 获取客户列表
// @Description 支持 search 关键字搜索（姓名/邮箱/公司）和 status 筛选
// @Tags 客户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Customer} "获取成功"
// @Router /api/v1/customers [get]
func (h *CustomerHandler) List(c *gin.Context) { h.res.list(c) }

// Get 获取单个客户
func (h *CustomerHandler) Get(c *gin.Context) { h.res.get(c) }

// Delete 删除客户（软删除）
func (h *CustomerHandler) Delete(c *gin.Context) { h.res.remove(c) }

// GetStatistics 获取客户统计（按状态分布的累计消费额）
func (h *CustomerHandler) GetStatistics(c *gin.Context) { h.res.statistics(c) }

// ExportCSV 导出客户为 CSV
func (h *CustomerHandler) ExportCSV(c *gin.Context) { h.res.exportCSV(c) }
