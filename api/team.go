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

// TeamMemberHandler 团队成员处理器
type TeamMemberHandler struct {
	res *resource[models.TeamMember, *models.TeamMember]
}

// NewTeamMemberHandler 创建团队成员处理器
func NewTeamMemberHandler() *TeamMemberHandler {
	return NewTeamMemberHandlerWithStore(store.NewGorm[models.TeamMember, *models.TeamMember](database.GetDB))
}

// NewTeamMemberHandlerWithStore 使用指定存储创建团队成员处理器（测试用）
func NewTeamMemberHandlerWithStore(s store.Store[models.TeamMember, *models.TeamMember]) *TeamMemberHandler {
	return &TeamMemberHandler{res: &resource[models.TeamMember, *models.TeamMember]{
		store: s,
		name:  "团队成员",
		searchable: func(m *models.TeamMember) []string {
			return []string{m.FirstName, m.LastName, m.Email, m.Position}
		},
		filterFields: filter.Fields[*models.TeamMember]{
			"department": func(m *models.TeamMember) string { return m.Department },
			"role":       func(m *models.TeamMember) string { return m.Role },
			"status":     func(m *models.TeamMember) string { return m.Status },
		},
		filterParams: []string{"department", "role", "status"},
		// 成员按薪资统计，按部门分组
		amount:   func(m *models.TeamMember) float64 { return m.Salary },
		category: func(m *models.TeamMember) string { return m.Department },
		status:   func(m *models.TeamMember) string { return m.Status },
		csvHeaders: []string{
			"First Name", "Last Name", "Email", "Position", "Department", "Role", "Status", "Salary", "Hire Date",
		},
		csvRow: func(m *models.TeamMember) []string {
			hireDate := ""
			if !m.HireDate.IsZero() {
				hireDate = m.HireDate.Format("2006-01-02")
			}
			return []string{
				m.FirstName,
				m.LastName,
				m.Email,
				m.Position,
				m.Department,
				m.Role,
				m.Status,
				export.Money(m.Salary),
				hireDate,
			}
		},
		csvFilename: "team_members.csv",
		deleteMode:  store.DeleteSoft,
	}}
}

// CreateTeamMemberRequest 创建团队成员请求
type CreateTeamMemberRequest struct {
	FirstName  string  `json:"first_name" binding:"required" example:"伟"`
	LastName   string  `json:"last_name" binding:"required" example:"李"`
	Email      string  `json:"email" binding:"required,email" example:"liwei@example.com"`
	Phone      string  `json:"phone"`
	Position   string  `json:"position" binding:"required" example:"前端工程师"`
	Department string  `json:"department" example:"development"`
	Role       string  `json:"role" example:"employee"`
	Salary     float64 `json:"salary" binding:"gte=0"`
	HireDate   string  `json:"hire_date" example:"2023-06-01"`
	Status     string  `json:"status" example:"active"`
	Bio        string  `json:"bio"`
}

// UpdateTeamMemberRequest 更新团队成员请求，仅更新出现的字段
type UpdateTeamMemberRequest struct {
	FirstName  *string  `json:"first_name"`
	LastName   *string  `json:"last_name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Position   *string  `json:"position"`
	Department *string  `json:"department"`
	Role       *string  `json:"role"`
	Salary     *float64 `json:"salary"`
	HireDate   *string  `json:"hire_date"`
	Status     *string  `json:"status"`
	Bio        *string  `json:"bio"`
}

// Create 创建团队成员
// @Summary 创建团队成员
// @Tags 团队
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTeamMemberRequest true "成员信息"
// @Success 201 {object} Response{data=models.TeamMember} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/team [post]
func (h *TeamMemberHandler) Create(c *gin.Context) {
	var req CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	hireDate := time.Now()
	if req.HireDate != "" {
		t, err := parseDate(req.HireDate)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		hireDate = t
	}

	member := models.TeamMember{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Department: defaultString(req.Department, models.DepartmentOther),
		Role:       defaultString(req.Role, models.RoleEmployee),
		Salary:     req.Salary,
		HireDate:   hireDate,
		Status:     defaultString(req.Status, models.TeamStatusActive),
		Bio:        req.Bio,
	}

	if err := h.res.store.Create(c.Request.Context(), &member); err != nil {
		StoreError(c, err, "创建团队成员失败")
		return
	}
	Created(c, "创建成功", member)
}

// Update 更新团队成员
// @Summary 更新团队成员
// @Tags 团队
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "成员ID"
// @Param request body UpdateTeamMemberRequest true "成员信息"
// @Success 200 {object} Response{data=models.TeamMember} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/team/{id} [put]
func (h *TeamMemberHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var hireDate *time.Time
	if req.HireDate != nil {
		t, err := parseDate(*req.HireDate)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		hireDate = &t
	}

	member, err := h.res.store.Update(c.Request.Context(), id, func(m *models.TeamMember) {
		setString(&m.FirstName, req.FirstName)
		setString(&m.LastName, req.LastName)
		setString(&m.Email, req.Email)
		setString(&m.Phone, req.Phone)
		setString(&m.Position, req.Position)
		setString(&m.Department, req.Department)
		setString(&m.Role, req.Role)
		setFloat(&m.Salary, req.Salary)
		setString(&m.Status, req.Status)
		setString(&m.Bio, req.Bio)
		if hireDate != nil {
			m.HireDate = *hireDate
		}
	})
	if err != nil {
		StoreError(c, err, "更新团队成员失败")
		return
	}
	SuccessWithMessage(c, "更新成功", member)
}

// List 获取团队成员列表
// @Summary 获取团队成员列表
// @Description 支持 search 关键字搜索（姓名/邮箱/职位）和 department/role/status 筛选
// @Tags 团队
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.TeamMember} "获取成功"
// @Router /api/v1/team [get]
func (h *TeamMemberHandler) List(c *gin.Context) { h.res.list(c) }

// Get 获取单个团队成员
func (h *TeamMemberHandler) Get(c *gin.Context) { h.res.get(c) }

// Delete 删除团队成员（软删除）
func (h *TeamMemberHandler) Delete(c *gin.Context) { h.res.remove(c) }

// GetStatistics 获取团队统计（按部门分布的薪资汇总）
func (h *TeamMemberHandler) GetStatistics(c *gin.Context) { h.res.statistics(c) }

// ExportCSV 导出团队成员为 CSV
func (h *TeamMemberHandler) ExportCSV(c *gin.Context) { h.res.exportCSV(c) }

// GetDepartments 获取部门列表
// @Summary 获取部门列表
// @Tags 团队
// @Produce json
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /api/v1/team/departments [get]
func (h *TeamMemberHandler) GetDepartments(c *gin.Context) {
	Success(c, models.GetDepartments())
}
