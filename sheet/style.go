package sheet

import "github.com/xuri/excelize/v2"

const FloatDecimalPlaces = 6

var border = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

var alignment = &excelize.Alignment{
	Vertical:   "center",
	Horizontal: "center",
	WrapText:   true,
}

var warnFont = &excelize.Font{
	Color: "#F00000",
}

// styles are the cell styles of a report workbook.
type styles struct {
	header  int
	text    int
	amount  int
	percent int
	warn    int
}

func newStyles(f *excelize.File) (*styles, error) {
	var s styles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: alignment,
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	}); err != nil {
		return nil, err
	}
	if s.text, err = f.NewStyle(&excelize.Style{Border: border, Alignment: alignment}); err != nil {
		return nil, err
	}
	// 3 is "#,##0"
	if s.amount, err = f.NewStyle(&excelize.Style{Border: border, Alignment: alignment, NumFmt: 3}); err != nil {
		return nil, err
	}
	// 10 is "0.00%"
	if s.percent, err = f.NewStyle(&excelize.Style{Border: border, Alignment: alignment, NumFmt: 10}); err != nil {
		return nil, err
	}
	if s.warn, err = f.NewStyle(&excelize.Style{Border: border, Alignment: alignment, Font: warnFont}); err != nil {
		return nil, err
	}
	return &s, nil
}

func addStringCell(f *excelize.File, sheetName string, col, row int, value string, styleId int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellStr(sheetName, cell, value); err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, cell, cell, styleId)
}

func addFloatCell(f *excelize.File, sheetName string, col, row int, value float64, styleId int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellFloat(sheetName, cell, value, FloatDecimalPlaces, 64); err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, cell, cell, styleId)
}

func addFormulaCell(f *excelize.File, sheetName string, col, row int, formula string, styleId int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellFormula(sheetName, cell, formula); err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, cell, cell, styleId)
}

// cellWriter writes a sheet row by row and keeps the first error.
type cellWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *cellWriter) str(col, row int, v string, style int) {
	if w.err == nil {
		w.err = addStringCell(w.f, w.sheet, col, row, v, style)
	}
}

func (w *cellWriter) num(col, row int, v float64, style int) {
	if w.err == nil {
		w.err = addFloatCell(w.f, w.sheet, col, row, v, style)
	}
}

func (w *cellWriter) formula(col, row int, v string, style int) {
	if w.err == nil {
		w.err = addFormulaCell(w.f, w.sheet, col, row, v, style)
	}
}

func (w *cellWriter) header(row int, style int, titles ...string) {
	for i, t := range titles {
		w.str(i+1, row, t, style)
	}
}

func (w *cellWriter) widths(width float64, cols int) {
	if w.err != nil || cols < 1 {
		return
	}
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetColWidth(w.sheet, "A", last, width)
}
