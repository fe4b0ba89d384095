package api

import (
	"strconv"

	"crm/database"
	"crm/export"
	"crm/filter"
	"crm/models"
	"crm/store"

	"github.com/gin-gonic/gin"
)

// ServiceHandler 服务（价目表）处理器
type ServiceHandler struct {
	res *resource[models.Service, *models.Service]
}

// NewServiceHandler 创建服务处理器
func NewServiceHandler() *ServiceHandler {
	return NewServiceHandlerWithStore(store.NewGorm[models.Service, *models.Service](database.GetDB))
}

// NewServiceHandlerWithStore 使用指定存储创建服务处理器（测试用）
func NewServiceHandlerWithStore(s store.Store[models.Service, *models.Service]) *ServiceHandler {
	return &ServiceHandler{res: &resource[models.Service, *models.Service]{
		store: s,
		name:  "服务",
		searchable: func(sv *models.Service) []string {
			return []string{sv.Name, sv.Description}
		},
		filterFields: filter.Fields[*models.Service]{
			"category": func(sv *models.Service) string { return sv.Category },
			"status":   func(sv *models.Service) string { return sv.Status },
		},
		filterParams: []string{"category", "status"},
		amount:       func(sv *models.Service) float64 { return sv.Price },
		category:     func(sv *models.Service) string { return sv.Category },
		status:       func(sv *models.Service) string { return sv.Status },
		csvHeaders:   []string{"Name", "Category", "Price", "Duration", "Status", "Description"},
		csvRow: func(sv *models.Service) []string {
			duration := ""
			if sv.DurationValue > 0 {
				duration = strconv.Itoa(sv.DurationValue) + " " + sv.DurationUnit
			}
			return []string{
				sv.Name,
				sv.Category,
				export.Money(sv.Price),
				duration,
				sv.Status,
				sv.Description,
			}
		},
		csvFilename: "services.csv",
		// 服务是价目表条目，删除即移除，与其它资源不同
		deleteMode: store.DeleteHard,
	}}
}

// CreateServiceRequest 创建服务请求
type CreateServiceRequest struct {
	Name          string  `json:"name" binding:"required" example:"官网设计"`
	Description   string  `json:"description" binding:"required"`
	Category      string  `json:"category" binding:"required" example:"design"`
	Price         float64 `json:"price" binding:"required,gte=0" example:"2000.00"`
	Currency      string  `json:"currency" example:"USD"`
	DurationValue int     `json:"duration_value" binding:"gte=0" example:"2"`
	DurationUnit  string  `json:"duration_unit" example:"weeks"`
	Status        string  `json:"status" example:"active"`
}

// UpdateServiceRequest 更新服务请求，仅更新出现的字段
type UpdateServiceRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	Price         *float64 `json:"price"`
	Currency      *string  `json:"currency"`
	DurationValue *int     `json:"duration_value"`
	DurationUnit  *string  `json:"duration_unit"`
	Status        *string  `json:"status"`
}

// Create 创建服务
// @Summary 创建服务
// @Tags 服务
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateServiceRequest true "服务信息"
// @Success 201 {object} Response{data=models.Service} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	svc := models.Service{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		Currency:      defaultString(req.Currency, "USD"),
		DurationValue: req.DurationValue,
		DurationUnit:  req.DurationUnit,
		Status:        defaultString(req.Status, models.ServiceStatusActive),
	}

	if err := h.res.store.Create(c.Request.Context(), &svc); err != nil {
		StoreError(c, err, "创建服务失败")
		return
	}
	Created(c, "创建成功", svc)
}

// Update 更新服务
// @Summary 更新服务
// @Tags 服务
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "服务ID"
// @Param request body UpdateServiceRequest true "服务信息"
// @Success 200 {object} Response{data=models.Service} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/services/{id} [put]
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	svc, err := h.res.store.Update(c.Request.Context(), id, func(sv *models.Service) {
		setString(&sv.Name, req.Name)
		setString(&sv.Description, req.Description)
		setString(&sv.Category, req.Category)
		setFloat(&sv.Price, req.Price)
		setString(&sv.Currency, req.Currency)
		setInt(&sv.DurationValue, req.DurationValue)
		setString(&sv.DurationUnit, req.DurationUnit)
		setString(&sv.Status, req.Status)
	})
	if err != nil {
		StoreError(c, err, "更新服务失败")
		return
	}
	SuccessWithMessage(c, "更新成功", svc)
}

// List 获取服务列表
// @Summary 获取服务列表
// @Description 支持 search 关键字搜索（名称/描述）和 category/status 筛选
// @Tags 服务
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Service} "获取成功"
// @Router /api/v1/services [get]
func (h *ServiceHandler) List(c *gin.Context) { h.res.list(c) }

// Get 获取单个服务
func (h *ServiceHandler) Get(c *gin.Context) { h.res.get(c) }

// Delete 删除服务（物理删除）
func (h *ServiceHandler) Delete(c *gin.Context) { h.res.remove(c) }

// GetStatistics 获取服务统计（按类别分布的价格汇总）
func (h *ServiceHandler) GetStatistics(c *gin.Context) { h.res.statistics(c) }

// ExportCSV 导出服务为 CSV
func (h *ServiceHandler) ExportCSV(c *gin.Context) { h.res.exportCSV(c) }

// GetCategories 获取服务类别列表
// @Summary 获取服务类别列表
// @Tags 服务
// @Produce json
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /api/v1/services/categories [get]
func (h *ServiceHandler) GetCategories(c *gin.Context) {
	Success(c, models.GetServiceCategories())
}
