package api

import (
	"fmt"
	"net/http"
	"strconv"

	"crm/export"
	"crm/filter"
	"crm/stats"
	"crm/store"

	"github.com/gin-gonic/gin"
)

// utf8BOM 让 Excel 正确识别 UTF-8 编码的 CSV
const utf8BOM = "\xEF\xBB\xBF"

// resource 资源处理器的公共部分
// 各资源的列表、详情、删除、统计、导出共用同一条流水线：
// 存储取全量 -> 筛选引擎过滤 -> 统计引擎汇总 / 序列化导出
type resource[T any, PT interface {
	store.Record
	*T
}] struct {
	store store.Store[T, PT]
	name  string

	// 筛选配置：搜索字段 + 类别过滤字段
	searchable   func(PT) []string
	filterFields filter.Fields[PT]
	filterParams []string

	// 统计配置：金额与分组维度
	amount   func(PT) float64
	category func(PT) string
	status   func(PT) string

	// 导出配置
	csvHeaders  []string
	csvRow      func(PT) []string
	csvFilename string

	deleteMode store.DeleteMode
}

// filteredView 从请求参数构建筛选后的视图
// 默认隐藏软删除记录，显式传 status=deleted 时可以查看
func (r *resource[T, PT]) filteredView(c *gin.Context) ([]PT, error) {
	records, err := r.store.List(c.Request.Context())
	if err != nil {
		return nil, err
	}

	filters := make(map[string]string, len(r.filterParams))
	for _, name := range r.filterParams {
		filters[name] = c.DefaultQuery(name, filter.All)
	}
	view := filter.Apply(records, c.Query("search"), r.searchable, filters, r.filterFields)

	statusFilter := filters["status"]
	if statusFilter == "" || statusFilter == filter.All {
		visible := make([]PT, 0, len(view))
		for _, rec := range view {
			if r.status(rec) != store.StatusDeleted {
				visible = append(visible, rec)
			}
		}
		view = visible
	}
	return view, nil
}

// list 列表接口：返回筛选后的记录和数量
func (r *resource[T, PT]) list(c *gin.Context) {
	view, err := r.filteredView(c)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询"+r.name+"失败"))
		return
	}
	SuccessWithCount(c, view, len(view))
}

// get 详情接口
func (r *resource[T, PT]) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rec, err := r.store.Get(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err, "查询"+r.name+"失败")
		return
	}
	Success(c, rec)
}

// remove 删除接口，按资源的删除策略执行
func (r *resource[T, PT]) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := r.store.Delete(c.Request.Context(), id, r.deleteMode); err != nil {
		StoreError(c, err, "删除"+r.name+"失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// statistics 统计接口：对当前筛选视图计算总额、均值、类别分布
func (r *resource[T, PT]) statistics(c *gin.Context) {
	view, err := r.filteredView(c)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计"+r.name+"失败"))
		return
	}

	Success(c, gin.H{
		"total_amount":   stats.Total(view, r.amount),
		"total_count":    stats.Count(view),
		"average_amount": stats.Average(view, r.amount),
		"top_category":   stats.TopCategory(view, r.amount, r.category),
		"category_stats": stats.Breakdown(view, r.amount, r.category),
	})
}

// exportCSV 导出接口：将当前筛选视图渲染为 CSV 文件
func (r *resource[T, PT]) exportCSV(c *gin.Context) {
	view, err := r.filteredView(c)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "导出"+r.name+"失败"))
		return
	}

	rows := make([][]string, 0, len(view))
	for _, rec := range view {
		rows = append(rows, r.csvRow(rec))
	}
	data, err := export.CSV(r.csvHeaders, rows)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "导出"+r.name+"失败"))
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", r.csvFilename))
	c.Header("Content-Length", strconv.Itoa(len(utf8BOM)+len(data)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", append([]byte(utf8BOM), data...))
}

// parseID 解析路径中的记录 ID
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}
