package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMissingSetting is returned when a computation needs a key the Settings bag lacks.
// Zero is a legitimate value for many keys, so absence is never read as zero.
var ErrMissingSetting = errors.New("settings: required key missing")

// Settings is a bag of named numeric parameters. Keys are dotted and lower case.
type Settings map[string]float64

// Get returns the value of key or ErrMissingSetting.
func (s Settings) Get(key string) (float64, error) {
	v, ok := s[strings.ToLower(key)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingSetting, key)
	}
	return v, nil
}

// Has reports whether key is configured.
func (s Settings) Has(key string) bool {
	_, ok := s[strings.ToLower(key)]
	return ok
}

// Merge returns a new bag holding defaults overlaid by s.
func (s Settings) Merge(defaults Settings) Settings {
	out := make(Settings, len(s)+len(defaults))
	for k, v := range defaults {
		out[strings.ToLower(k)] = v
	}
	for k, v := range s {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Keys returns the configured keys sorted.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// settingsReader reads several keys and keeps the first miss, so calculators
// can read a whole formula and check the error once.
type settingsReader struct {
	s   Settings
	err error
}

func (r *settingsReader) get(key string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.s.Get(key)
	if err != nil {
		r.err = err
		return 0
	}
	return v
}

// Setting keys. Keys indexed by container type, zone, route or band are built
// by the helpers below.
const (
	KeyGoodsFactorEXW = "goods.factor.exw"
	KeyGoodsFactorFCA = "goods.factor.fca"

	KeyInsuranceMultiplier   = "insurance.insured_value_multiplier"
	KeyInsuranceOrdinaryRate = "insurance.ordinary_rate"
	KeyInsuranceMinimum      = "insurance.minimum_premium"
	KeyInsuranceAccessoryFee = "insurance.accessory_fee"
	KeyInsuranceAirSurcharge = "insurance.air_surcharge_rate"
	KeyInsuranceWarRiskRate  = "insurance.war_risk_rate"

	KeyCollectionCommissionRate = "financial.documentary_collection.commission_rate"
	KeyCollectionCommissionMin  = "financial.documentary_collection.commission_minimum"

	KeyForwardingBLExchange     = "forwarding.bl_exchange_fee"
	KeyForwardingDeclaration    = "forwarding.declaration_fee"
	KeyForwardingManifest       = "forwarding.manifest_fee"
	KeyForwardingStorage        = "forwarding.storage_fee"
	KeyForwardingPhytosanitary  = "forwarding.phytosanitary_fee"
	KeyForwardingStampDuty      = "forwarding.stamp_duty"
	KeyForwardingShippersRate   = "forwarding.shippers_council_rate"
	KeyForwardingSingleWindow   = "forwarding.single_window_fee"
	KeyForwardingCommissionRate = "forwarding.commission_rate"
	KeyForwardingAdminFee       = "forwarding.admin_fee"
	KeyForwardingFileFee        = "forwarding.file_fee"

	KeyRPIThresholdLow  = "levies.rpi.threshold_low"
	KeyRPIThresholdHigh = "levies.rpi.threshold_high"
	KeyRPIFlat          = "levies.rpi.flat"
	KeyRPILicensingRate = "levies.rpi.licensing_rate"
	KeyRPIMinimum       = "levies.rpi.minimum"

	KeyCOCThreshold = "levies.coc.threshold"

	KeyIncidentalRate    = "levies.incidental.rate"
	KeyIncidentalMinimum = "levies.incidental.minimum"
)

// HADBands is the number of CAF bands of the forwarding-agent HAD fee.
const HADBands = 5

// FreightKey names one per-container freight component.
func FreightKey(c ContainerType, component string) string {
	return fmt.Sprintf("freight.%s.%s", c, component)
}

// FinancialKey names one charge of a payment mode.
func FinancialKey(m PaymentMode, charge string) string {
	return fmt.Sprintf("financial.%s.%s", m, charge)
}

// ForwardingContainerKey names a per-container forwarding fee.
func ForwardingContainerKey(fee string, c ContainerType) string {
	return fmt.Sprintf("forwarding.%s.%s", fee, c)
}

// ForwardingZoneKey names a zone and container indexed forwarding fee.
func ForwardingZoneKey(fee string, z Zone, c ContainerType) string {
	return fmt.Sprintf("forwarding.%s.%s.%s", fee, z, c)
}

// HADKey names a field (floor, rate, fixed) of HAD band n, counted from 1.
func HADKey(n int, field string) string {
	return fmt.Sprintf("forwarding.had.band%d.%s", n, field)
}

// COCKey names a route-indexed COC parameter (rate, minimum, maximum).
func COCKey(field string, r Route) string {
	return fmt.Sprintf("levies.coc.%s.%s", field, r)
}

// BSCKey names the per-container BSC rate.
func BSCKey(c ContainerType) string {
	return fmt.Sprintf("levies.bsc.%s", c)
}
