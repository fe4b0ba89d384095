package models

import (
	"strings"
	"time"

	"crm/store"
)

// TeamMember 部门
const (
	DepartmentDesign      = "design"
	DepartmentDevelopment = "development"
	DepartmentMarketing   = "marketing"
	DepartmentSales       = "sales"
	DepartmentManagement  = "management"
	DepartmentOther       = "other"
)

// TeamMember 角色
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// TeamMember 成员状态
const (
	TeamStatusActive   = "active"
	TeamStatusInactive = "inactive"
	TeamStatusOnLeave  = "on_leave"
)

// GetDepartments 获取部门列表
func GetDepartments() []string {
	return []string{
		DepartmentDesign,
		DepartmentDevelopment,
		DepartmentMarketing,
		DepartmentSales,
		DepartmentManagement,
		DepartmentOther,
	}
}

// GetTeamRoles 获取角色列表
func GetTeamRoles() []string {
	return []string{RoleAdmin, RoleManager, RoleEmployee}
}

// GetTeamStatuses 获取成员状态列表
func GetTeamStatuses() []string {
	return []string{TeamStatusActive, TeamStatusInactive, TeamStatusOnLeave}
}

// TeamMember 团队成员模型
type TeamMember struct {
	Base
	FirstName  string    `json:"first_name" gorm:"size:50;not null"`
	LastName   string    `json:"last_name" gorm:"size:50;not null"`
	Email      string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Phone      string    `json:"phone" gorm:"size:30"`
	Position   string    `json:"position" gorm:"size:100;not null"`
	Department string    `json:"department" gorm:"size:50;index"`
	Role       string    `json:"role" gorm:"size:20;default:employee"`
	Salary     float64   `json:"salary" gorm:"type:decimal(12,2);default:0"`
	HireDate   time.Time `json:"hire_date"`
	Status     string    `json:"status" gorm:"size:20;default:active;index"`
	Bio        string    `json:"bio" gorm:"size:500"`
}

// TableName 设置表名
func (TeamMember) TableName() string {
	return "team_members"
}

// MarkDeleted 软删除：状态置为 deleted
func (m *TeamMember) MarkDeleted() {
	m.Status = store.StatusDeleted
}

// Validate 创建/更新前的字段校验
func (m *TeamMember) Validate() error {
	if strings.TrimSpace(m.FirstName) == "" {
		return store.NewValidationError("first_name", "名字不能为空")
	}
	if strings.TrimSpace(m.LastName) == "" {
		return store.NewValidationError("last_name", "姓氏不能为空")
	}
	if strings.TrimSpace(m.Email) == "" {
		return store.NewValidationError("email", "邮箱不能为空")
	}
	if strings.TrimSpace(m.Position) == "" {
		return store.NewValidationError("position", "职位不能为空")
	}
	if m.Department != "" && !oneOf(m.Department, GetDepartments()) {
		return store.NewValidationError("department", "无效的部门")
	}
	if m.Role == "" {
		m.Role = RoleEmployee
	}
	if !oneOf(m.Role, GetTeamRoles()) {
		return store.NewValidationError("role", "无效的角色")
	}
	if m.Salary < 0 {
		return store.NewValidationError("salary", "薪资不能为负数")
	}
	if m.Status == "" {
		m.Status = TeamStatusActive
	}
	if m.Status != store.StatusDeleted && !oneOf(m.Status, GetTeamStatuses()) {
		return store.NewValidationError("status", "无效的成员状态")
	}
	return nil
}
