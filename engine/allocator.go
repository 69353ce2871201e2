package engine

// RateSelector picks the percentage rate applied to a line's imputed value.
type RateSelector func(TariffEntry) float64

// Rate selectors used by the pipeline.
var (
	CumulativeWithTax    RateSelector = func(t TariffEntry) float64 { return t.CumulativeWithTax }
	CumulativeWithoutTax RateSelector = func(t TariffEntry) float64 { return t.CumulativeWithoutTax }
	RRRRate              RateSelector = func(t TariffEntry) float64 { return t.RRRRate }
	RCPRate              RateSelector = func(t TariffEntry) float64 { return t.RCPRate }
)

// DutySelector returns the cumulative-rate selector for the consumption-tax toggle.
func DutySelector(includeConsumptionTax bool) RateSelector {
	if includeConsumptionTax {
		return CumulativeWithTax
	}
	return CumulativeWithoutTax
}

// Allocation is one line's part of an allocated aggregate.
type Allocation struct {
	Index        int     `json:"index"`
	Share        float64 `json:"share"`
	ImputedValue float64 `json:"imputed_value"`
	Rate         float64 `json:"rate"`
	Amount       float64 `json:"amount"`
	Matched      bool    `json:"matched"`
}

// Allocate spreads aggregate over lines in proportion to their line totals and
// applies each line's selected rate to its imputed value. Lines without a
// tariff snapshot get their share but a zero amount. When line totals sum to
// zero every share and amount is zero. The returned total is the sum of the
// rounded line amounts.
func Allocate(aggregate float64, lines []LineItem, rate RateSelector) ([]Allocation, float64) {
	allocations := make([]Allocation, len(lines))
	sum := SumLineTotals(lines)
	var total float64
	for i, line := range lines {
		a := Allocation{Index: i, Matched: line.Tariff != nil}
		if sum > 0 {
			a.Share = line.Total() / sum
			a.ImputedValue = a.Share * aggregate
		}
		if line.Tariff != nil {
			a.Rate = rate(*line.Tariff)
			a.Amount = Round(a.ImputedValue * percent(a.Rate))
		}
		total += a.Amount
		allocations[i] = a
	}
	return allocations, total
}

// ImputedValues returns each line's share of aggregate without applying a rate.
func ImputedValues(aggregate float64, lines []LineItem) []float64 {
	values := make([]float64, len(lines))
	sum := SumLineTotals(lines)
	if sum <= 0 {
		return values
	}
	for i, line := range lines {
		values[i] = line.Total() / sum * aggregate
	}
	return values
}
