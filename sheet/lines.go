package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"sysafari.com/customs/costsim/engine"
)

// headerScanRows bounds the search for the header row below title blocks.
const headerScanRows = 20

var (
	ErrMissingColumns = errors.New("sheet: required columns missing")
	ErrEmptyWorkbook  = errors.New("sheet: workbook has no sheet")
)

// RowError reports one rejected cell. Row is the 1-based worksheet row.
type RowError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d, %s: %s", e.Sheet, e.Row, e.Column, e.Message)
}

// LineImport is the outcome of reading an invoice workbook. Rejected rows
// are listed in Errors and left out of Lines.
type LineImport struct {
	Sheet     string            `json:"sheet"`
	HeaderRow int               `json:"header_row"`
	Lines     []engine.LineItem `json:"lines"`
	// SourceRows holds the worksheet row of each entry of Lines.
	SourceRows []int      `json:"source_rows"`
	Errors     []RowError `json:"errors,omitempty"`
}

// ImportLines reads line items from the first sheet of an xlsx stream.
func ImportLines(r io.Reader) (*LineImport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("sheet: open workbook: %w", err)
	}
	defer f.Close()
	return ReadLines(f, "")
}

// ReadLines reads line items from sheetName, or the first sheet when empty.
func ReadLines(f *excelize.File, sheetName string) (*LineImport, error) {
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyWorkbook
		}
		sheetName = sheets[0]
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet: read %s: %w", sheetName, err)
	}

	headerIdx, cols := -1, map[column]int(nil)
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		m := mapHeader(rows[i])
		if hasLineColumns(m) {
			headerIdx, cols = i, m
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("%w: need code, quantity and unit price or total in %s", ErrMissingColumns, sheetName)
	}

	out := &LineImport{Sheet: sheetName, HeaderRow: headerIdx + 1}
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		p := rowParser{sheet: sheetName, row: i + 1, cells: row, cols: cols}
		line := p.line()
		if len(p.errs) > 0 {
			out.Errors = append(out.Errors, p.errs...)
			continue
		}
		out.Lines = append(out.Lines, line)
		out.SourceRows = append(out.SourceRows, i+1)
	}
	return out, nil
}

func hasLineColumns(m map[column]int) bool {
	_, code := m[colCode]
	_, qty := m[colQuantity]
	_, price := m[colUnitPrice]
	_, total := m[colTotal]
	return code && qty && (price || total)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

type rowParser struct {
	sheet string
	row   int
	cells []string
	cols  map[column]int
	errs  []RowError
}

func (p *rowParser) cell(c column) (string, bool) {
	i, ok := p.cols[c]
	if !ok {
		return "", false
	}
	if i >= len(p.cells) {
		return "", true
	}
	return strings.TrimSpace(p.cells[i]), true
}

func (p *rowParser) fail(c column, format string, args ...interface{}) {
	p.errs = append(p.errs, RowError{Sheet: p.sheet, Row: p.row, Column: string(c), Message: fmt.Sprintf(format, args...)})
}

// amount parses a non-negative number. Empty optional cells read as absent.
func (p *rowParser) amount(c column, required bool) (decimal.Decimal, bool) {
	raw, present := p.cell(c)
	if !present || raw == "" {
		if required {
			p.fail(c, "value is empty")
		}
		return decimal.Zero, false
	}
	d, err := ParseNumber(raw)
	if err != nil {
		p.fail(c, "%q is not a number", raw)
		return decimal.Zero, false
	}
	if d.IsNegative() {
		p.fail(c, "%s cannot be negative", raw)
		return decimal.Zero, false
	}
	return d, true
}

func (p *rowParser) line() engine.LineItem {
	var line engine.LineItem
	line.Code, _ = p.cell(colCode)
	if line.Code == "" {
		p.fail(colCode, "value is empty")
	}
	line.Description, _ = p.cell(colDescription)

	qty, ok := p.amount(colQuantity, true)
	if ok && !qty.IsInteger() {
		p.fail(colQuantity, "%s is not a whole number", qty)
	}
	line.Quantity = qty.IntPart()

	total, hasTotal := p.amount(colTotal, false)
	if hasTotal {
		line.DeclaredTotal, _ = total.Float64()
	}
	price, hasPrice := p.amount(colUnitPrice, false)
	switch {
	case hasPrice:
		line.UnitPrice, _ = price.Float64()
	case p.errsFor(colUnitPrice) > 0 || p.errsFor(colQuantity) > 0:
	case hasTotal && qty.IsZero():
		p.fail(colTotal, "cannot derive a unit price for a zero quantity")
	case hasTotal:
		line.UnitPrice, _ = total.Div(qty).Float64()
	default:
		p.fail(colUnitPrice, "value is empty")
	}

	if w, ok := p.amount(colWeight, false); ok {
		line.NetWeight, _ = w.Float64()
	}
	return line
}

func (p *rowParser) errsFor(c column) int {
	n := 0
	for _, e := range p.errs {
		if e.Column == string(c) {
			n++
		}
	}
	return n
}
