package engine

import "math"

// Class grades a relative discrepancy.
type Class string

const (
	ClassNegligible Class = "negligible"
	ClassModerate   Class = "moderate"
	ClassMaterial   Class = "material"
)

// Quantity names a reconciled figure.
type Quantity string

const (
	QuantityAmountOriginal Quantity = "amount_original"
	QuantityAmountLocal    Quantity = "amount_local"
	QuantityWeight         Quantity = "weight_kg"
)

// Thresholds are the upper bounds, in percent, of the negligible and moderate classes.
type Thresholds struct {
	Negligible float64 `json:"negligible"`
	Moderate   float64 `json:"moderate"`
}

// DefaultThresholds grades ≤1 % negligible, ≤5 % moderate, above material.
var DefaultThresholds = Thresholds{Negligible: 1, Moderate: 5}

const epsilon = 1e-9

// Discrepancy compares a declared figure with the one recomputed from lines.
type Discrepancy struct {
	Quantity   Quantity `json:"quantity"`
	Declared   float64  `json:"declared"`
	Computed   float64  `json:"computed"`
	Difference float64  `json:"difference"`
	Percent    float64  `json:"percent"`
	Class      Class    `json:"class"`
}

// RelativeDifference returns |a−b| / max(|a|,|b|,ε) in percent. Using the
// larger magnitude keeps the result independent of argument order.
func RelativeDifference(a, b float64) float64 {
	denom := math.Max(math.Max(math.Abs(a), math.Abs(b)), epsilon)
	return math.Abs(a-b) / denom * 100
}

// Classify grades a relative difference in percent.
func (t Thresholds) Classify(pct float64) Class {
	switch {
	case pct <= t.Negligible:
		return ClassNegligible
	case pct <= t.Moderate:
		return ClassModerate
	default:
		return ClassMaterial
	}
}

// Compare builds the discrepancy between declared and computed.
func (t Thresholds) Compare(q Quantity, declared, computed float64) Discrepancy {
	pct := RelativeDifference(declared, computed)
	return Discrepancy{
		Quantity:   q,
		Declared:   declared,
		Computed:   computed,
		Difference: math.Abs(declared - computed),
		Percent:    RoundTo(pct, 4),
		Class:      t.Classify(pct),
	}
}

// ReconcileInput holds declared and recomputed totals. Weights are in kilograms.
type ReconcileInput struct {
	DeclaredTotal  float64
	ComputedTotal  float64
	ExchangeRate   float64
	DeclaredWeight float64
	ComputedWeight float64
}

// Reconciliation is an advisory report; it never blocks computation.
type Reconciliation struct {
	Discrepancies  []Discrepancy `json:"discrepancies"`
	RequiresReview bool          `json:"requires_review"`
}

// Reconcile compares declared against recomputed figures. A declared value of
// zero means the figure was not declared and is skipped.
func Reconcile(in ReconcileInput, t Thresholds) Reconciliation {
	var rec Reconciliation
	if in.DeclaredTotal != 0 {
		rec.Discrepancies = append(rec.Discrepancies,
			t.Compare(QuantityAmountOriginal, in.DeclaredTotal, in.ComputedTotal),
			t.Compare(QuantityAmountLocal, Round(in.DeclaredTotal*in.ExchangeRate), Round(in.ComputedTotal*in.ExchangeRate)),
		)
	}
	if in.DeclaredWeight != 0 {
		rec.Discrepancies = append(rec.Discrepancies, t.Compare(QuantityWeight, in.DeclaredWeight, in.ComputedWeight))
	}
	for _, d := range rec.Discrepancies {
		if d.Class != ClassNegligible {
			rec.RequiresReview = true
		}
	}
	return rec
}
