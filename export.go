package main

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// excelPlaceholder stands in for missing values in spreadsheet cells
const excelPlaceholder = "—"

// RenderExcel renders the same document a layout produces as HTML into a
// spreadsheet: one sheet, header block on top, then each visible section in
// order. Visibility, ordering, per-type formatting, and the missing-value
// policy are identical to RenderHTML.
func RenderExcel(config LayoutConfig, data map[string]interface{}, documentName string) (*excelize.File, error) {
	f := excelize.NewFile()

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create bold style: %w", err)
	}

	row := 1
	setCell(f, 1, row, documentName)
	styleCell(f, 1, row, boldStyle)
	row++
	setCell(f, 1, row, "Ref: "+documentReference(data))
	row += 2

	for _, section := range config.Sections {
		if !section.Visible {
			continue
		}

		setCell(f, 1, row, section.Title)
		styleCell(f, 1, row, boldStyle)
		row++

		if section.Type == SectionTypeTable {
			col := 1
			for _, c := range section.Columns {
				if !c.Visible {
					continue
				}
				setCell(f, col, row, c.Label)
				styleCell(f, col, row, boldStyle)
				col++
			}
			row++
			for _, record := range tableRows(section, data) {
				col = 1
				for _, c := range section.Columns {
					if !c.Visible {
						continue
					}
					setCell(f, col, row, excelValue(c.Type, c.Key, record))
					col++
				}
				row++
			}
		} else {
			for _, field := range section.Fields {
				if !field.Visible {
					continue
				}
				setCell(f, 1, row, field.Label)
				setCell(f, 2, row, excelValue(field.Type, field.Key, data))
				if field.Style != nil && *field.Style == StyleBold {
					styleCell(f, 2, row, boldStyle)
				}
				row++
			}
		}
		row++
	}

	return f, nil
}

// excelValue mirrors renderValue without the HTML escaping
func excelValue(displayType, key string, record map[string]interface{}) string {
	v, ok := record[key]
	if !ok || v == nil {
		return excelPlaceholder
	}
	return formatValue(displayType, v)
}

func setCell(f *excelize.File, col, row int, value interface{}) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	f.SetCellValue(exportSheet, cell, value)
}

func styleCell(f *excelize.File, col, row, styleID int) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	f.SetCellStyle(exportSheet, cell, cell, styleID)
}
