package engine

import (
	"fmt"
	"math"
)

type chargeKind int

const (
	chargeFixed chargeKind = iota
	chargePercent
)

// charge is one bank fee of a payment mode. Percent charges apply to the
// supplier total in local currency.
type charge struct {
	name string
	kind chargeKind
}

var paymentCharges = map[PaymentMode][]charge{
	PaymentTransfer: {
		{name: "file_fee", kind: chargeFixed},
		{name: "swift_fee", kind: chargeFixed},
		{name: "transfer_commission_rate", kind: chargePercent},
		{name: "exchange_commission_rate", kind: chargePercent},
	},
	PaymentDocumentaryCollection: {
		{name: "file_fee", kind: chargeFixed},
		{name: "swift_fee", kind: chargeFixed},
		{name: "courier_fee", kind: chargeFixed},
	},
	PaymentDocumentaryCredit: {
		{name: "opening_fee", kind: chargeFixed},
		{name: "opening_commission_rate", kind: chargePercent},
		{name: "confirmation_rate", kind: chargePercent},
		{name: "negotiation_rate", kind: chargePercent},
		{name: "swift_fee", kind: chargeFixed},
	},
}

// FinancialCharge is one itemised bank charge.
type FinancialCharge struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// FinancialQuote lists the charges of a payment mode.
type FinancialQuote struct {
	SupplierTotal float64           `json:"supplier_total"`
	Charges       []FinancialCharge `json:"charges"`
	Amount        float64           `json:"amount"`
}

// FinancialFees computes bank charges for paying declaredTotal (shipment
// currency) converted at exchangeRate through the given payment mode.
func FinancialFees(declaredTotal, exchangeRate float64, mode PaymentMode, s Settings) (FinancialQuote, error) {
	charges, ok := paymentCharges[mode]
	if !ok {
		return FinancialQuote{}, fmt.Errorf("%w: payment mode %q", ErrNoAutomaticValue, mode)
	}
	q := FinancialQuote{SupplierTotal: declaredTotal * exchangeRate}
	r := &settingsReader{s: s}
	for _, c := range charges {
		v := r.get(FinancialKey(mode, c.name))
		if c.kind == chargePercent {
			v = q.SupplierTotal * percent(v)
		}
		q.Charges = append(q.Charges, FinancialCharge{Name: c.name, Amount: v})
	}
	if mode == PaymentDocumentaryCollection {
		rate := r.get(KeyCollectionCommissionRate)
		minimum := r.get(KeyCollectionCommissionMin)
		q.Charges = append(q.Charges, FinancialCharge{
			Name:   "collection_commission",
			Amount: math.Max(q.SupplierTotal*percent(rate), minimum),
		})
	}
	if r.err != nil {
		return FinancialQuote{}, r.err
	}
	var sum float64
	for _, c := range q.Charges {
		sum += c.Amount
	}
	q.Amount = Round(sum)
	return q, nil
}
