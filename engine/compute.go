package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Fee names a breakdown category that can be computed or entered manually.
type Fee string

const (
	FeeGoodsValue  Fee = "goods_value"
	FeeFreight     Fee = "freight"
	FeeInsurance   Fee = "insurance"
	FeeCustomsDuty Fee = "customs_duty"
	FeeFinancial   Fee = "financial_fees"
	FeeForwarding  Fee = "forwarding_fee"
	FeeRPI         Fee = "rpi"
	FeeRRR         Fee = "rrr"
	FeeRCP         Fee = "rcp"
	FeeCOC         Fee = "coc"
	FeeBSC         Fee = "bsc"
	FeeIncidental  Fee = "incidental_costs"
)

// Mode selects automatic computation or caller-supplied entry for a fee.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// Options are the per-computation toggles.
type Options struct {
	IncludeConsumptionTax bool     `json:"include_consumption_tax"`
	WarRisk               bool     `json:"war_risk"`
	OrdinaryRiskRate      *float64 `json:"ordinary_risk_rate,omitempty"`
	// Modes defaults every fee to ModeAuto.
	Modes map[Fee]Mode `json:"modes,omitempty"`
	// ManualValues feeds fees in ModeManual, and fees whose automatic rule
	// does not cover the shipment.
	ManualValues   map[Fee]float64 `json:"manual_values,omitempty"`
	DeferUnmatched bool            `json:"defer_unmatched"`
	Thresholds     *Thresholds     `json:"thresholds,omitempty"`
}

func (o Options) mode(f Fee) Mode {
	if m, ok := o.Modes[f]; ok && m == ModeManual {
		return ModeManual
	}
	return ModeAuto
}

// Input is everything a computation reads. Nothing else is consulted.
type Input struct {
	Shipment ShipmentContext
	Lines    []LineItem
	Settings Settings
	Tables   RateTables
	Options  Options
}

// RequiredInput is a fee that has no trustworthy value until the caller supplies one.
type RequiredInput struct {
	Fee    Fee    `json:"fee"`
	Reason string `json:"reason"`
}

// Status tells a fully determined breakdown apart from a partial one.
type Status string

const (
	// StatusComplete: every fee computed or supplied, every code matched.
	StatusComplete Status = "complete"
	// StatusProvisional: unmatched codes remain but the caller deferred them.
	StatusProvisional Status = "provisional"
	// StatusUnresolved: unmatched codes remain and contribute zero duty.
	StatusUnresolved Status = "unresolved"
	// StatusIncomplete: at least one fee awaits a manual value.
	StatusIncomplete Status = "incomplete"
)

// LineResult is the per-line allocation detail.
type LineResult struct {
	Index        int     `json:"index"`
	Code         string  `json:"code"`
	Description  string  `json:"description"`
	Total        float64 `json:"total"`
	Share        float64 `json:"share"`
	ImputedValue float64 `json:"imputed_value"`
	DutyRate     float64 `json:"duty_rate"`
	Duty         float64 `json:"duty"`
	RRR          float64 `json:"rrr"`
	RCP          float64 `json:"rcp"`
	Matched      bool    `json:"matched"`
}

// Details carries the itemised quotes of automatically computed fees.
type Details struct {
	Freight    *FreightQuote    `json:"freight,omitempty"`
	Insurance  *InsuranceQuote  `json:"insurance,omitempty"`
	Financial  *FinancialQuote  `json:"financial,omitempty"`
	Forwarding *ForwardingQuote `json:"forwarding,omitempty"`
	COC        *COCQuote        `json:"coc,omitempty"`
}

// Result is the output of one computation.
type Result struct {
	Reference      string          `json:"reference"`
	Breakdown      CostBreakdown   `json:"breakdown"`
	Lines          []LineResult    `json:"lines"`
	Details        Details         `json:"details"`
	Unmatched      []UnmatchedLine `json:"unmatched,omitempty"`
	RequiredInputs []RequiredInput `json:"required_inputs,omitempty"`
	Warnings       []string        `json:"warnings,omitempty"`
	Reconciliation Reconciliation  `json:"reconciliation"`
	Status         Status          `json:"status"`
}

// Final reports whether the breakdown can be treated as a verified figure.
func (r *Result) Final() bool {
	return r.Status == StatusComplete
}

// Compute runs the whole pipeline: goods value, freight, insurance, CAF, the
// CAF-dependent levies and duty allocation, financial fees, the forwarding
// fee (which needs duty), the total and reconciliation. It fails only on
// invalid input or a missing setting.
func Compute(in Input) (*Result, error) {
	if in.Settings == nil {
		return nil, fmt.Errorf("%w: settings are required", ErrMissingSetting)
	}
	if in.Tables == nil {
		return nil, errors.New("engine: rate tables are required")
	}
	shipment := normalizeShipment(in.Shipment)
	if err := shipment.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateLines(in.Lines); err != nil {
		return nil, err
	}

	c := &computation{in: in, shipment: shipment}
	if err := c.run(); err != nil {
		return nil, err
	}
	return c.result, nil
}

type computation struct {
	in       Input
	shipment ShipmentContext
	lines    []LineItem
	result   *Result
}

func (c *computation) run() error {
	s := c.in.Settings
	sh := c.shipment
	opts := c.in.Options
	c.result = &Result{Reference: sh.Reference}
	res := c.result
	b := &res.Breakdown

	c.lines = ResolveTariffs(c.in.Lines, c.in.Tables)
	res.Unmatched = Unmatched(c.lines)
	lineSum := SumLineTotals(c.lines)

	var err error
	if !sh.Incoterm.Known() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("incoterm %q is not recognised", sh.Incoterm))
	} else if !sh.Incoterm.AutoTransport() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("incoterm %s: automatic freight and insurance are disabled", sh.Incoterm))
	}

	b.GoodsValue, err = c.fee(FeeGoodsValue, func() (float64, error) {
		return GoodsValue(lineSum, sh.Incoterm, sh.ExchangeRate, s)
	})
	if err != nil {
		return err
	}

	b.Freight, err = c.fee(FeeFreight, func() (float64, error) {
		if !sh.Incoterm.AutoTransport() {
			return 0, fmt.Errorf("%w: freight under incoterm %q", ErrNoAutomaticValue, sh.Incoterm)
		}
		q, err := Freight(FreightInput{
			ContainerType:  sh.ContainerType,
			ContainerCount: sh.ContainerCount,
			ExchangeRate:   sh.ExchangeRate,
		}, s)
		if err != nil {
			return 0, err
		}
		res.Details.Freight = &q
		return q.Amount, nil
	})
	if err != nil {
		return err
	}

	b.Insurance, err = c.fee(FeeInsurance, func() (float64, error) {
		if !sh.Incoterm.AutoTransport() {
			return 0, fmt.Errorf("%w: insurance under incoterm %q", ErrNoAutomaticValue, sh.Incoterm)
		}
		q, err := Insurance(InsuranceInput{
			GoodsValue:    b.GoodsValue,
			Freight:       b.Freight,
			TransportMode: sh.TransportMode,
			WarRisk:       opts.WarRisk,
			OrdinaryRate:  opts.OrdinaryRiskRate,
		}, s)
		if err != nil {
			return 0, err
		}
		res.Details.Insurance = &q
		return q.Amount, nil
	})
	if err != nil {
		return err
	}

	b.CAF = CAF(b.GoodsValue, b.Freight, b.Insurance)

	dutyAlloc, dutyTotal := Allocate(b.CAF, c.lines, DutySelector(opts.IncludeConsumptionTax))
	rrrAlloc, rrrTotal := Allocate(b.CAF, c.lines, RRRRate)
	rcpAlloc, rcpTotal := Allocate(b.CAF, c.lines, RCPRate)
	res.Lines = make([]LineResult, len(c.lines))
	for i, line := range c.lines {
		res.Lines[i] = LineResult{
			Index:        i,
			Code:         line.Code,
			Description:  line.Description,
			Total:        line.Total(),
			Share:        dutyAlloc[i].Share,
			ImputedValue: dutyAlloc[i].ImputedValue,
			DutyRate:     dutyAlloc[i].Rate,
			Duty:         dutyAlloc[i].Amount,
			RRR:          rrrAlloc[i].Amount,
			RCP:          rcpAlloc[i].Amount,
			Matched:      dutyAlloc[i].Matched,
		}
	}

	if b.CustomsDuty, err = c.fee(FeeCustomsDuty, constant(dutyTotal)); err != nil {
		return err
	}
	if b.RRR, err = c.fee(FeeRRR, constant(rrrTotal)); err != nil {
		return err
	}
	if b.RCP, err = c.fee(FeeRCP, constant(rcpTotal)); err != nil {
		return err
	}
	if b.RPI, err = c.fee(FeeRPI, func() (float64, error) { return RPI(b.GoodsValue, s) }); err != nil {
		return err
	}
	b.COC, err = c.fee(FeeCOC, func() (float64, error) {
		q, err := COC(b.CAF, c.lines, sh.Route, s, c.in.Tables)
		if err != nil {
			return 0, err
		}
		res.Details.COC = &q
		return q.Amount, nil
	})
	if err != nil {
		return err
	}
	if b.BSC, err = c.fee(FeeBSC, func() (float64, error) { return BSC(sh.ContainerType, sh.ContainerCount, s) }); err != nil {
		return err
	}
	if b.IncidentalCosts, err = c.fee(FeeIncidental, func() (float64, error) { return IncidentalCosts(b.GoodsValue, s) }); err != nil {
		return err
	}

	b.FinancialFees, err = c.fee(FeeFinancial, func() (float64, error) {
		q, err := FinancialFees(sh.DeclaredTotal, sh.ExchangeRate, sh.PaymentMode, s)
		if err != nil {
			return 0, err
		}
		res.Details.Financial = &q
		return q.Amount, nil
	})
	if err != nil {
		return err
	}

	b.ForwardingFee, err = c.fee(FeeForwarding, func() (float64, error) {
		q, err := Forwarding(ForwardingInput{
			TotalWeight:    SumNetWeight(c.lines),
			CustomsDuty:    b.CustomsDuty,
			GoodsValue:     b.GoodsValue,
			Freight:        b.Freight,
			Insurance:      b.Insurance,
			ContainerType:  sh.ContainerType,
			ContainerCount: sh.ContainerCount,
			Zone:           sh.Zone,
			PortCategory:   sh.PortCategory,
		}, s, c.in.Tables)
		if err != nil {
			return 0, err
		}
		res.Details.Forwarding = &q
		return q.Amount, nil
	})
	if err != nil {
		return err
	}

	// Duty is advanced by the forwarding agent and reaches the total through its fee.
	b.Total = b.GoodsValue + b.Freight + b.Insurance + b.FinancialFees + b.ForwardingFee +
		b.StatutoryLevies() + b.IncidentalCosts

	thresholds := DefaultThresholds
	if opts.Thresholds != nil {
		thresholds = *opts.Thresholds
	}
	declaredWeight, err := sh.WeightUnit.ToKilograms(sh.DeclaredWeight)
	if err != nil {
		return err
	}
	res.Reconciliation = Reconcile(ReconcileInput{
		DeclaredTotal:  sh.DeclaredTotal,
		ComputedTotal:  lineSum,
		ExchangeRate:   sh.ExchangeRate,
		DeclaredWeight: declaredWeight,
		ComputedWeight: SumNetWeight(c.lines),
	}, thresholds)

	res.Status = c.status()
	return nil
}

// fee resolves one breakdown category. Manual mode reads the caller's value;
// auto mode runs the rule, falling back to a caller value when the rule does
// not cover the shipment. Either way a missing value is recorded as required
// rather than read as zero.
func (c *computation) fee(f Fee, auto func() (float64, error)) (float64, error) {
	opts := c.in.Options
	if opts.mode(f) == ModeManual {
		v, ok := opts.ManualValues[f]
		if !ok {
			c.require(f, "manual mode without a value")
			return 0, nil
		}
		return v, nil
	}
	v, err := auto()
	if errors.Is(err, ErrNoAutomaticValue) {
		if mv, ok := opts.ManualValues[f]; ok {
			return mv, nil
		}
		c.require(f, err.Error())
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", f, err)
	}
	return v, nil
}

func (c *computation) require(f Fee, reason string) {
	c.result.RequiredInputs = append(c.result.RequiredInputs, RequiredInput{Fee: f, Reason: reason})
}

func (c *computation) status() Status {
	switch {
	case len(c.result.RequiredInputs) > 0:
		return StatusIncomplete
	case len(c.result.Unmatched) > 0 && !c.in.Options.DeferUnmatched:
		return StatusUnresolved
	case len(c.result.Unmatched) > 0:
		return StatusProvisional
	default:
		return StatusComplete
	}
}

func constant(v float64) func() (float64, error) {
	return func() (float64, error) { return v, nil }
}

func normalizeShipment(s ShipmentContext) ShipmentContext {
	s.Incoterm = ParseIncoterm(string(s.Incoterm))
	s.TransportMode = TransportMode(lowerTrim(string(s.TransportMode)))
	s.ContainerType = ContainerType(lowerTrim(string(s.ContainerType)))
	s.Route = Route(lowerTrim(string(s.Route)))
	s.PaymentMode = PaymentMode(lowerTrim(string(s.PaymentMode)))
	s.Zone = Zone(lowerTrim(string(s.Zone)))
	s.WeightUnit = WeightUnit(lowerTrim(string(s.WeightUnit)))
	return s
}

func lowerTrim(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
