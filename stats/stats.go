// Package stats 提供列表页通用的统计计算：求和、均值、按类别汇总、占比
// 所有函数均为纯函数，对空输入返回约定的哨兵值而不是报错
package stats

import (
	"sort"
	"strings"
)

// NoCategory 空输入时 TopCategory 返回的哨兵值
const NoCategory = "N/A"

// CategoryStat 单个类别的汇总结果
type CategoryStat struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Total 金额求和，空输入返回 0
func Total[T any](records []T, amount func(T) float64) float64 {
	var sum float64
	for _, rec := range records {
		sum += amount(rec)
	}
	return sum
}

// Count 记录数
func Count[T any](records []T) int64 {
	return int64(len(records))
}

// Average 平均金额，空输入返回 0，不产生 NaN
func Average[T any](records []T, amount func(T) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	return Total(records, amount) / float64(len(records))
}

// GroupByCategory 按类别汇总金额，只包含输入中出现的类别
func GroupByCategory[T any](records []T, amount func(T) float64, category func(T) string) map[string]float64 {
	groups := make(map[string]float64)
	for _, rec := range records {
		groups[category(rec)] += amount(rec)
	}
	return groups
}

// PercentageOf 子项占总额的百分比，总额为 0 时返回 0
func PercentageOf(subtotal, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return subtotal / total * 100
}

// TopCategory 金额最大的类别，空输入返回 N/A
// 金额相同时取类别名字典序靠前者（不区分大小写），保证结果确定
func TopCategory[T any](records []T, amount func(T) float64, category func(T) string) string {
	breakdown := Breakdown(records, amount, category)
	if len(breakdown) == 0 {
		return NoCategory
	}
	return breakdown[0].Category
}

// Breakdown 按类别汇总并排序：金额降序，相同金额按类别名升序（不区分大小写）
// 每项附带占比，所有占比之和为 100（浮点误差范围内）
func Breakdown[T any](records []T, amount func(T) float64, category func(T) string) []CategoryStat {
	totals := make(map[string]float64)
	counts := make(map[string]int64)
	for _, rec := range records {
		name := category(rec)
		totals[name] += amount(rec)
		counts[name]++
	}

	out := make([]CategoryStat, 0, len(totals))
	for name, total := range totals {
		out = append(out, CategoryStat{Category: name, Total: total, Count: counts[name]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		li, lj := strings.ToLower(out[i].Category), strings.ToLower(out[j].Category)
		if li != lj {
			return li < lj
		}
		return out[i].Category < out[j].Category
	})

	// 占比基于全精度总额计算，只在展示时四舍五入
	grand := Total(records, amount)
	for i := range out {
		out[i].Percentage = PercentageOf(out[i].Total, grand)
	}
	return out
}
