package engine

import "math"

// InsuranceInput is what the insurance calculator reads.
type InsuranceInput struct {
	GoodsValue    float64
	Freight       float64
	TransportMode TransportMode
	WarRisk       bool
	// OrdinaryRate overrides the configured ordinary-risk rate (percent) when set.
	OrdinaryRate *float64
}

// InsuranceQuote itemises the premium.
type InsuranceQuote struct {
	InsuredValue float64 `json:"insured_value"`
	Ordinary     float64 `json:"ordinary"`
	Accessory    float64 `json:"accessory"`
	AirSurcharge float64 `json:"air_surcharge"`
	WarRisk      float64 `json:"war_risk"`
	Amount       float64 `json:"amount"`
}

// Insurance computes the cargo insurance premium. Rates are in percent.
func Insurance(in InsuranceInput, s Settings) (InsuranceQuote, error) {
	r := &settingsReader{s: s}
	multiplier := r.get(KeyInsuranceMultiplier)
	minimum := r.get(KeyInsuranceMinimum)
	accessory := r.get(KeyInsuranceAccessoryFee)
	var rate float64
	if in.OrdinaryRate != nil {
		rate = *in.OrdinaryRate
	} else {
		rate = r.get(KeyInsuranceOrdinaryRate)
	}
	var airRate, warRate float64
	if in.TransportMode == TransportAir {
		airRate = r.get(KeyInsuranceAirSurcharge)
	}
	if in.WarRisk {
		warRate = r.get(KeyInsuranceWarRiskRate)
	}
	if r.err != nil {
		return InsuranceQuote{}, r.err
	}

	q := InsuranceQuote{Accessory: accessory}
	q.InsuredValue = (in.GoodsValue + in.Freight) * multiplier
	q.Ordinary = math.Max(q.InsuredValue*percent(rate), minimum)
	q.AirSurcharge = q.Ordinary * percent(airRate)
	q.WarRisk = q.InsuredValue * percent(warRate)
	q.Amount = Round(q.Ordinary + q.Accessory + q.AirSurcharge + q.WarRisk)
	return q, nil
}
