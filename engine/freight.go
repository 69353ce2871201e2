package engine

import "fmt"

// Freight components read per container type. Handling covers terminal and
// documentation costs; carriage covers line haul and surcharges.
var (
	freightHandlingComponents = []string{"thc", "documentation", "seal"}
	freightCarriageComponents = []string{"ocean_freight", "bunker_surcharge", "peak_season_surcharge"}
)

// FreightInput is what the freight calculator reads from a shipment.
type FreightInput struct {
	ContainerType  ContainerType
	ContainerCount int
	ExchangeRate   float64
}

// FreightQuote is the freight figure with its two sub-totals per container,
// both in shipment currency.
type FreightQuote struct {
	Handling float64 `json:"handling"`
	Carriage float64 `json:"carriage"`
	Amount   float64 `json:"amount"`
}

// Freight computes (handling + carriage) × exchange rate × container count.
func Freight(in FreightInput, s Settings) (FreightQuote, error) {
	if !in.ContainerType.Supported() {
		return FreightQuote{}, fmt.Errorf("%w: container type %q", ErrNoAutomaticValue, in.ContainerType)
	}
	r := &settingsReader{s: s}
	var q FreightQuote
	for _, c := range freightHandlingComponents {
		q.Handling += r.get(FreightKey(in.ContainerType, c))
	}
	for _, c := range freightCarriageComponents {
		q.Carriage += r.get(FreightKey(in.ContainerType, c))
	}
	if r.err != nil {
		return FreightQuote{}, r.err
	}
	q.Amount = Round((q.Handling + q.Carriage) * in.ExchangeRate * float64(in.ContainerCount))
	return q, nil
}
