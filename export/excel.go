package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet Excel 工作表数据：表名 + 表头 + 数据行
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Excel 生成多工作表的 Excel 文件，每个资源一张表
func Excel(sheets []Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	for i, sheet := range sheets {
		if i == 0 {
			f.SetSheetName("Sheet1", sheet.Name)
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, fmt.Errorf("创建工作表失败: %w", err)
			}
		}

		lastCol, _ := excelize.ColumnNumberToName(len(sheet.Headers))
		f.SetColWidth(sheet.Name, "A", lastCol, 18)

		for col, header := range sheet.Headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet.Name, cell, header)
			f.SetCellStyle(sheet.Name, cell, cell, headerStyle)
		}

		for row, values := range sheet.Rows {
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet.Name, cell, value)
				f.SetCellStyle(sheet.Name, cell, cell, dataStyle)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("生成 Excel 失败: %w", err)
	}
	return buf.Bytes(), nil
}
