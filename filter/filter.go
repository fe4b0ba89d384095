// Package filter 提供列表页的筛选谓词：自由文本搜索 + 类别等值过滤
// 谓词为纯函数，不修改记录列表
package filter

import "strings"

// All 类别过滤的通配值，表示不过滤该字段
const All = "all"

// Fields 可过滤字段名到取值函数的映射
type Fields[T any] map[string]func(T) string

// Matches 判断记录是否同时满足搜索词和全部类别过滤条件
// 搜索词为空匹配所有记录；搜索在指定文本字段上做不区分大小写的子串匹配，
// 缺失字段按空字符串处理。过滤值为 all 或字段未注册时跳过该条件
func Matches[T any](rec T, search string, searchable func(T) []string, filters map[string]string, fields Fields[T]) bool {
	if search != "" {
		needle := strings.ToLower(search)
		found := false
		for _, text := range searchable(rec) {
			if strings.Contains(strings.ToLower(text), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for name, want := range filters {
		if want == "" || want == All {
			continue
		}
		get, ok := fields[name]
		if !ok {
			continue
		}
		if get(rec) != want {
			return false
		}
	}
	return true
}

// Apply 返回匹配的子集，保持原有顺序，不修改输入
func Apply[T any](records []T, search string, searchable func(T) []string, filters map[string]string, fields Fields[T]) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if Matches(rec, search, searchable, filters, fields) {
			out = append(out, rec)
		}
	}
	return out
}
