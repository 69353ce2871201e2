package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"sysafari.com/customs/costsim/engine"
)

// Sheet names of a rate-table workbook, matched case-insensitively.
const (
	SheetTariffs    = "tariffs"
	SheetExemptions = "exemptions"
	SheetPortFees   = "port_fees"
)

// RateImport holds the rows read from a rate-table workbook.
type RateImport struct {
	Tariffs    []engine.TariffEntry
	Exemptions []engine.ExemptionEntry
	PortFees   []engine.PortFeeEntry
	Errors     []RowError
}

// ImportRates reads a rate-table workbook. The tariffs sheet is required;
// exemptions and port_fees are optional.
func ImportRates(r io.Reader) (*RateImport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("sheet: open workbook: %w", err)
	}
	defer f.Close()
	return ReadRates(f)
}

// ImportRatesFile reads a rate-table workbook from disk.
func ImportRatesFile(path string) (*RateImport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("sheet: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRates(f)
}

func ReadRates(f *excelize.File) (*RateImport, error) {
	out := &RateImport{}

	tariffs, err := readTable(f, SheetTariffs, true, []string{"code", "cumulative_with_tax", "cumulative_without_tax"})
	if err != nil {
		return nil, err
	}
	for _, r := range tariffs {
		entry := engine.TariffEntry{Code: r.text("code"), Description: r.text("description")}
		for _, c := range []struct {
			name string
			dst  *float64
		}{
			{"duty_rate", &entry.DutyRate},
			{"statistics_rate", &entry.StatisticsRate},
			{"community_levy_rate", &entry.CommunityLevyRate},
			{"solidarity_levy_rate", &entry.SolidarityLevyRate},
			{"consumption_tax_rate", &entry.ConsumptionTaxRate},
			{"rrr_rate", &entry.RRRRate},
			{"rcp_rate", &entry.RCPRate},
			{"cumulative_with_tax", &entry.CumulativeWithTax},
			{"cumulative_without_tax", &entry.CumulativeWithoutTax},
		} {
			*c.dst = r.number(c.name)
		}
		if r.ok() {
			out.Tariffs = append(out.Tariffs, entry)
		}
		out.Errors = append(out.Errors, r.errs...)
	}

	exemptions, err := readTable(f, SheetExemptions, false, []string{"code"})
	if err != nil {
		return nil, err
	}
	for _, r := range exemptions {
		entry := engine.ExemptionEntry{Code: r.text("code"), Exempt: r.flag("exempt")}
		if r.ok() {
			out.Exemptions = append(out.Exemptions, entry)
		}
		out.Errors = append(out.Errors, r.errs...)
	}

	portFees, err := readTable(f, SheetPortFees, false, []string{"category", "rate"})
	if err != nil {
		return nil, err
	}
	for _, r := range portFees {
		entry := engine.PortFeeEntry{
			Category:      r.text("category"),
			Rate:          r.number("rate"),
			MunicipalRate: r.number("municipal_rate"),
		}
		if r.ok() {
			out.PortFees = append(out.PortFees, entry)
		}
		out.Errors = append(out.Errors, r.errs...)
	}
	return out, nil
}

// tableRow is one data row keyed by snake_case header.
type tableRow struct {
	sheet string
	row   int
	cells map[string]string
	errs  []RowError
}

func (r *tableRow) ok() bool {
	return len(r.errs) == 0
}

func (r *tableRow) text(name string) string {
	return r.cells[name]
}

func (r *tableRow) number(name string) float64 {
	raw := r.cells[name]
	if raw == "" {
		return 0
	}
	d, err := ParseNumber(raw)
	if err != nil {
		r.errs = append(r.errs, RowError{Sheet: r.sheet, Row: r.row, Column: name, Message: fmt.Sprintf("%q is not a number", raw)})
		return 0
	}
	if d.IsNegative() {
		r.errs = append(r.errs, RowError{Sheet: r.sheet, Row: r.row, Column: name, Message: fmt.Sprintf("%s cannot be negative", raw)})
		return 0
	}
	v, _ := d.Float64()
	return v
}

func (r *tableRow) flag(name string) bool {
	switch strings.ToLower(r.cells[name]) {
	case "", "0", "n", "no", "non", "false":
		return false
	case "1", "x", "y", "yes", "oui", "true":
		return true
	default:
		r.errs = append(r.errs, RowError{Sheet: r.sheet, Row: r.row, Column: name, Message: fmt.Sprintf("%q is not a yes/no value", r.cells[name])})
		return false
	}
}

// readTable reads a sheet whose first row holds column names. Rows missing a
// required column value are reported and still returned so the caller
// collects their errors.
func readTable(f *excelize.File, name string, mustExist bool, required []string) ([]*tableRow, error) {
	sheetName := ""
	for _, s := range f.GetSheetList() {
		if strings.EqualFold(s, name) {
			sheetName = s
			break
		}
	}
	if sheetName == "" {
		if mustExist {
			return nil, fmt.Errorf("%w: sheet %s not found", ErrMissingColumns, name)
		}
		return nil, nil
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("sheet: read %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	present := map[string]bool{}
	for i, h := range rows[0] {
		header[i] = strings.ReplaceAll(NormalizeHeader(h), " ", "_")
		present[header[i]] = true
	}
	for _, col := range required {
		if !present[col] {
			return nil, fmt.Errorf("%w: %s needs column %s", ErrMissingColumns, sheetName, col)
		}
	}

	var out []*tableRow
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		r := &tableRow{sheet: sheetName, row: i + 1, cells: map[string]string{}}
		for j, cell := range rows[i] {
			if j < len(header) && header[j] != "" {
				r.cells[header[j]] = strings.TrimSpace(cell)
			}
		}
		for _, col := range required {
			if r.cells[col] == "" {
				r.errs = append(r.errs, RowError{Sheet: sheetName, Row: r.row, Column: col, Message: "value is empty"})
			}
		}
		out = append(out, r)
	}
	return out, nil
}
