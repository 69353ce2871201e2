package engine

import (
	"fmt"
	"math"
)

// RPI is a step function of goods value: zero below the low threshold, a flat
// amount up to and including the high threshold, and above it the greater of
// goods value × licensing rate and the configured minimum.
func RPI(goodsValue float64, s Settings) (float64, error) {
	r := &settingsReader{s: s}
	low := r.get(KeyRPIThresholdLow)
	high := r.get(KeyRPIThresholdHigh)
	flat := r.get(KeyRPIFlat)
	rate := r.get(KeyRPILicensingRate)
	minimum := r.get(KeyRPIMinimum)
	if r.err != nil {
		return 0, r.err
	}
	switch {
	case goodsValue < low:
		return 0, nil
	case goodsValue <= high:
		return Round(flat), nil
	default:
		return Round(math.Max(goodsValue*percent(rate), minimum)), nil
	}
}

// CheckRPIContinuity verifies that the licensing band never starts below the
// flat band, i.e. the configured minimum is at least the flat amount.
func CheckRPIContinuity(s Settings) error {
	r := &settingsReader{s: s}
	flat := r.get(KeyRPIFlat)
	minimum := r.get(KeyRPIMinimum)
	if r.err != nil {
		return r.err
	}
	if minimum < flat {
		return fmt.Errorf("settings: %s (%.0f) below %s (%.0f)", KeyRPIMinimum, minimum, KeyRPIFlat, flat)
	}
	return nil
}

// COCQuote reports the certification base and levy.
type COCQuote struct {
	Base   float64 `json:"base"`
	Lines  []int   `json:"lines"`
	Amount float64 `json:"amount"`
}

// COC computes the certificate-of-conformity levy on lines listed, and not
// flagged exempt, in the Exemption Table. The base is the sum of those lines'
// imputed CAF values; below the threshold the levy is zero, otherwise the
// route rate applies and the result is clamped to the route's bounds.
func COC(caf float64, lines []LineItem, route Route, s Settings, exemptions ExemptionRepository) (COCQuote, error) {
	if !route.Supported() {
		return COCQuote{}, fmt.Errorf("%w: route %q", ErrNoAutomaticValue, route)
	}
	imputed := ImputedValues(caf, lines)
	var q COCQuote
	for i, line := range lines {
		entry, ok := exemptions.Exemption(line.Code)
		if !ok || entry.Exempt {
			continue
		}
		q.Base += imputed[i]
		q.Lines = append(q.Lines, i)
	}

	r := &settingsReader{s: s}
	threshold := r.get(KeyCOCThreshold)
	rate := r.get(COCKey("rate", route))
	minimum := r.get(COCKey("minimum", route))
	maximum := r.get(COCKey("maximum", route))
	if r.err != nil {
		return COCQuote{}, r.err
	}
	if q.Base < threshold {
		return q, nil
	}
	q.Amount = Round(math.Min(math.Max(q.Base*percent(rate), minimum), maximum))
	return q, nil
}

// BSC is the cargo tracking note levy: a per-container flat rate.
func BSC(container ContainerType, count int, s Settings) (float64, error) {
	if !container.Supported() {
		return 0, fmt.Errorf("%w: container type %q", ErrNoAutomaticValue, container)
	}
	rate, err := s.Get(BSCKey(container))
	if err != nil {
		return 0, err
	}
	return Round(rate * float64(count)), nil
}

// IncidentalCosts is goods value × rate, floored at the configured minimum.
func IncidentalCosts(goodsValue float64, s Settings) (float64, error) {
	r := &settingsReader{s: s}
	rate := r.get(KeyIncidentalRate)
	minimum := r.get(KeyIncidentalMinimum)
	if r.err != nil {
		return 0, r.err
	}
	return Round(math.Max(goodsValue*percent(rate), minimum)), nil
}
