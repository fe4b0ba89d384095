package api

import (
	"fmt"
	"time"
)

// defaultString 空值回退到默认值
func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// setString 部分更新：仅在请求携带该字段时覆盖
func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// setFloat 部分更新：仅在请求携带该字段时覆盖
func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// setInt 部分更新：仅在请求携带该字段时覆盖
func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// nextNumber 生成带前缀的单据编号，如 RCP-1705312200000
// 毫秒时间戳在单实例下足够唯一，冲突由唯一索引兜底
func nextNumber(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
}

// parseDate 解析 YYYY-MM-DD 格式日期
func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.Local)
}
