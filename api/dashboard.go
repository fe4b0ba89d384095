package api

import (
	"crm/models"
	"crm/stats"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 数据看板处理器
type DashboardHandler struct {
	stores *Stores
}

// NewDashboardHandler 创建看板处理器
func NewDashboardHandler() *DashboardHandler {
	return NewDashboardHandlerWithStores(NewStores())
}

// NewDashboardHandlerWithStores 使用指定存储创建看板处理器（测试用）
func NewDashboardHandlerWithStores(st *Stores) *DashboardHandler {
	return &DashboardHandler{stores: st}
}

// GetStatistics 获取看板统计
// @Summary 获取数据看板统计
// @Description 汇总收入、支出、净利润以及各资源数量。收入只计已完成的 income 交易；扣除 refund 交易。
// @Tags 看板
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/v1/dashboard/statistics [get]
func (h *DashboardHandler) GetStatistics(c *gin.Context) {
	ctx := c.Request.Context()

	customers, err := visible(ctx, h.stores.Customers, func(cu *models.Customer) string { return cu.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	services, err := h.stores.Services.List(ctx)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	transactions, err := visible(ctx, h.stores.Transactions, func(t *models.Transaction) string { return t.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	expenses, err := visible(ctx, h.stores.Expenses, func(e *models.Expense) string { return e.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	receipts, err := visible(ctx, h.stores.Receipts, func(r *models.Receipt) string { return r.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	quotations, err := visible(ctx, h.stores.Quotations, func(q *models.Quotation) string { return q.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	team, err := visible(ctx, h.stores.TeamMembers, func(m *models.TeamMember) string { return m.Status })
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	// 收入 = 已完成的 income 交易之和 - 已完成的 refund 交易之和
	var revenue float64
	for _, t := range transactions {
		if t.Status != models.TransactionStatusCompleted {
			continue
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			revenue += t.Amount
		case models.TransactionTypeRefund:
			revenue -= t.Amount
		}
	}

	expenseAmount := func(e *models.Expense) float64 { return e.Amount }
	expenseCategory := func(e *models.Expense) string { return e.Category }
	totalExpenses := stats.Total(expenses, expenseAmount)

	Success(c, gin.H{
		"total_revenue":        revenue,
		"total_expenses":       totalExpenses,
		"net_profit":           revenue - totalExpenses,
		"top_expense_category": stats.TopCategory(expenses, expenseAmount, expenseCategory),
		"expense_breakdown":    stats.Breakdown(expenses, expenseAmount, expenseCategory),
		"counts": gin.H{
			"customers":    stats.Count(customers),
			"services":     stats.Count(services),
			"transactions": stats.Count(transactions),
			"expenses":     stats.Count(expenses),
			"receipts":     stats.Count(receipts),
			"quotations":   stats.Count(quotations),
			"team_members": stats.Count(team),
		},
	})
}
