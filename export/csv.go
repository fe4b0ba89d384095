// Package export 将筛选后的记录列表渲染为 CSV 和 Excel
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSV 生成带表头的 CSV 文本
// 使用标准库 csv 写入，含逗号或引号的字段自动加引号转义；
// 相同输入保证字节级一致的输出
func CSV(headers []string, rows [][]string) ([]byte, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("生成 CSV 失败: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("生成 CSV 失败: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("生成 CSV 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// Money 金额的展示格式，保留两位小数
// 中间计算保持全精度，只在此处四舍五入
func Money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
