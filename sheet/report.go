package sheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"sysafari.com/customs/costsim/engine"
	"sysafari.com/customs/costsim/utils"
)

const (
	TimeLayout   = "20060102150405"
	ReportPrefix = "COST"

	SheetSummary        = "Summary"
	SheetLines          = "Lines"
	SheetForwarding     = "Forwarding"
	SheetReconciliation = "Reconciliation"
)

var (
	ErrReportNotFound    = errors.New("sheet: report not found")
	ErrInvalidReportName = errors.New("sheet: invalid report filename")
)

// Reporter writes cost reports into <TmpDir>/<year>/<month>/.
type Reporter struct {
	TmpDir string
	now    func() time.Time
}

func NewReporter(tmpDir string) *Reporter {
	return &Reporter{TmpDir: tmpDir, now: time.Now}
}

// Generate writes the report of res and returns its file name.
func (r *Reporter) Generate(res *engine.Result, shipment engine.ShipmentContext) (string, error) {
	path, err := r.readyForReportFile(res.Reference)
	if err != nil {
		return "", fmt.Errorf("prepare report file failed: %w", err)
	}
	f, err := Build(res, shipment)
	if err != nil {
		return "", fmt.Errorf("fill report failed: %w", err)
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report %s failed: %w", path, err)
	}
	log.Infof("Cost report written: %s", path)
	return filepath.Base(path), nil
}

// readyForReportFile creates the dated save directory and returns the path
// of a new report file.
func (r *Reporter) readyForReportFile(reference string) (string, error) {
	if r.TmpDir == "" {
		return "", errors.New("report directory is not configured")
	}
	if !utils.IsDir(r.TmpDir) && !utils.CreateDir(r.TmpDir) {
		return "", fmt.Errorf("create tmp directory: %s failed", r.TmpDir)
	}
	now := r.now()
	saveDir := filepath.Join(r.TmpDir, strconv.Itoa(now.Year()), strconv.Itoa(int(now.Month())))
	if !utils.IsDir(saveDir) && !utils.CreateDir(saveDir) {
		return "", fmt.Errorf("create save dir: %s failed", saveDir)
	}
	name := fmt.Sprintf("%s_%s_%s.xlsx", ReportPrefix, fileSafe(reference), now.Format(TimeLayout))
	return filepath.Join(saveDir, name), nil
}

// Path resolves a report file name to its location under TmpDir.
func (r *Reporter) Path(filename string) (string, error) {
	path, err := ReportPath(r.TmpDir, filename)
	if err != nil {
		return "", err
	}
	if !utils.IsExists(path) {
		return "", fmt.Errorf("%w: %s", ErrReportNotFound, filename)
	}
	return path, nil
}

// ReportPath derives the dated directory of filename from its timestamp.
func ReportPath(rootDir, filename string) (string, error) {
	if filename == "" || filepath.Base(filename) != filename || !strings.HasSuffix(filename, ".xlsx") ||
		!strings.HasPrefix(filename, ReportPrefix+"_") {
		return "", fmt.Errorf("%w: %q", ErrInvalidReportName, filename)
	}
	fn := strings.TrimSuffix(filename, ".xlsx")
	timestamp := fn[strings.LastIndex(fn, "_")+1:]
	ftime, err := time.Parse(TimeLayout, timestamp)
	if err != nil {
		return "", fmt.Errorf("%w: %q has no timestamp", ErrInvalidReportName, filename)
	}
	return filepath.Join(rootDir, strconv.Itoa(ftime.Year()), strconv.Itoa(int(ftime.Month())), filename), nil
}

func fileSafe(reference string) string {
	s := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-') {
			return r
		}
		return '-'
	}, strings.TrimSpace(reference))
	if s == "" {
		return "NOREF"
	}
	return s
}

// Build lays the report of res out in a new workbook.
func Build(res *engine.Result, shipment engine.ShipmentContext) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetSheetName(f.GetSheetName(0), SheetSummary)
	for _, name := range []string{SheetLines, SheetForwarding, SheetReconciliation} {
		f.NewSheet(name)
	}

	for _, fill := range []func(*excelize.File, *styles, *engine.Result, engine.ShipmentContext) error{
		fillSummary, fillLines, fillForwarding, fillReconciliation,
	} {
		if err := fill(f, st, res, shipment); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func fillSummary(f *excelize.File, st *styles, res *engine.Result, sh engine.ShipmentContext) error {
	w := &cellWriter{f: f, sheet: SheetSummary}
	row := 1
	for _, kv := range [][2]string{
		{"Reference", res.Reference},
		{"Status", string(res.Status)},
		{"Incoterm", string(sh.Incoterm)},
		{"Currency", sh.Currency},
	} {
		w.str(1, row, kv[0], st.header)
		w.str(2, row, kv[1], st.text)
		row++
	}
	w.str(1, row, "Exchange rate", st.header)
	w.num(2, row, sh.ExchangeRate, st.text)
	row += 2

	b := res.Breakdown
	w.header(row, st.header, "Fee", "Amount")
	row++
	for _, fee := range []struct {
		label  string
		amount float64
	}{
		{"Goods value", b.GoodsValue},
		{"Freight", b.Freight},
		{"Insurance", b.Insurance},
		{"CAF", b.CAF},
		{"Customs duty", b.CustomsDuty},
		{"Financial fees", b.FinancialFees},
		{"Forwarding fee", b.ForwardingFee},
		{"RPI", b.RPI},
		{"RRR", b.RRR},
		{"RCP", b.RCP},
		{"COC", b.COC},
		{"BSC", b.BSC},
		{"Incidental costs", b.IncidentalCosts},
		{"Total", b.Total},
	} {
		w.str(1, row, fee.label, st.text)
		w.num(2, row, fee.amount, st.amount)
		row++
	}

	if len(res.RequiredInputs) > 0 {
		row++
		w.header(row, st.header, "Required input", "Reason")
		row++
		for _, ri := range res.RequiredInputs {
			w.str(1, row, string(ri.Fee), st.warn)
			w.str(2, row, ri.Reason, st.warn)
			row++
		}
	}
	if len(res.Warnings) > 0 {
		row++
		w.str(1, row, "Warnings", st.header)
		row++
		for _, warning := range res.Warnings {
			w.str(1, row, warning, st.warn)
			row++
		}
	}
	w.widths(28, 2)
	return w.err
}

func fillLines(f *excelize.File, st *styles, res *engine.Result, _ engine.ShipmentContext) error {
	w := &cellWriter{f: f, sheet: SheetLines}
	w.header(1, st.header, "#", "Code", "Description", "Total", "Share", "Imputed value", "Duty rate", "Duty", "RRR", "RCP", "Matched")
	row := 2
	for _, l := range res.Lines {
		style := st.text
		matched := "yes"
		if !l.Matched {
			style, matched = st.warn, "no"
		}
		w.num(1, row, float64(l.Index+1), st.text)
		w.str(2, row, l.Code, style)
		w.str(3, row, l.Description, st.text)
		w.num(4, row, l.Total, st.text)
		w.num(5, row, l.Share, st.percent)
		w.num(6, row, l.ImputedValue, st.amount)
		w.num(7, row, l.DutyRate/100, st.percent)
		w.num(8, row, l.Duty, st.amount)
		w.num(9, row, l.RRR, st.amount)
		w.num(10, row, l.RCP, st.amount)
		w.str(11, row, matched, style)
		row++
	}
	if len(res.Lines) > 0 {
		w.str(1, row, "Total", st.header)
		for _, col := range []int{4, 6, 8, 9, 10} {
			name, err := excelize.ColumnNumberToName(col)
			if err != nil {
				return err
			}
			w.formula(col, row, fmt.Sprintf("SUM(%s2:%s%d)", name, name, row-1), st.amount)
		}
	}
	w.widths(16, 11)
	return w.err
}

func fillForwarding(f *excelize.File, st *styles, res *engine.Result, _ engine.ShipmentContext) error {
	w := &cellWriter{f: f, sheet: SheetForwarding}
	q := res.Details.Forwarding
	if q == nil {
		w.str(1, 1, "Forwarding fee entered manually or unavailable", st.warn)
		w.widths(40, 1)
		return w.err
	}
	w.header(1, st.header, "Component", "Amount")
	row := 2
	lines := append([]engine.FeeLine{}, q.Components...)
	lines = append(lines,
		engine.FeeLine{Name: "subtotal", Amount: q.Subtotal},
		engine.FeeLine{Name: "commission", Amount: q.Commission},
		engine.FeeLine{Name: "admin_fees", Amount: q.AdminFees},
		engine.FeeLine{Name: fmt.Sprintf("had_band_%d", q.HADBand), Amount: q.HAD},
		engine.FeeLine{Name: "forwarding_fee", Amount: q.Amount},
	)
	for _, l := range lines {
		w.str(1, row, l.Name, st.text)
		w.num(2, row, l.Amount, st.amount)
		row++
	}
	w.widths(24, 2)
	return w.err
}

func fillReconciliation(f *excelize.File, st *styles, res *engine.Result, _ engine.ShipmentContext) error {
	w := &cellWriter{f: f, sheet: SheetReconciliation}
	w.header(1, st.header, "Quantity", "Declared", "Computed", "Difference", "Percent", "Class")
	row := 2
	for _, d := range res.Reconciliation.Discrepancies {
		style := st.text
		if d.Class != engine.ClassNegligible {
			style = st.warn
		}
		w.str(1, row, string(d.Quantity), st.text)
		w.num(2, row, d.Declared, st.amount)
		w.num(3, row, d.Computed, st.amount)
		w.num(4, row, d.Difference, st.amount)
		w.num(5, row, d.Percent/100, st.percent)
		w.str(6, row, string(d.Class), style)
		row++
	}
	review := "no"
	if res.Reconciliation.RequiresReview {
		review = "yes"
	}
	w.str(1, row+1, "Requires review", st.header)
	w.str(2, row+1, review, st.text)
	w.widths(18, 6)
	return w.err
}
