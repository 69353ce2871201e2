package engine

import (
	"fmt"
	"strings"
)

// ForwardingInput is what the forwarding-agent (transitaire) calculator reads.
// TotalWeight is in kilograms.
type ForwardingInput struct {
	TotalWeight    float64
	CustomsDuty    float64
	GoodsValue     float64
	Freight        float64
	Insurance      float64
	ContainerType  ContainerType
	ContainerCount int
	Zone           Zone
	PortCategory   string
}

// FeeLine is one named component of a fee.
type FeeLine struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ForwardingQuote itemises the forwarding-agent invoice.
type ForwardingQuote struct {
	Components []FeeLine `json:"components"`
	Subtotal   float64   `json:"subtotal"`
	Commission float64   `json:"commission"`
	AdminFees  float64   `json:"admin_fees"`
	HADBand    int       `json:"had_band"`
	HAD        float64   `json:"had"`
	Amount     float64   `json:"amount"`
}

var (
	forwardingContainerFees = []string{"port_handling", "cleaning", "isps", "container_return", "scanner", "unloading"}
	forwardingZoneFees      = []string{"delivery", "lifting"}
	forwardingFixedFees     = []struct{ name, key string }{
		{"bl_exchange", KeyForwardingBLExchange},
		{"declaration", KeyForwardingDeclaration},
		{"manifest", KeyForwardingManifest},
		{"storage", KeyForwardingStorage},
		{"phytosanitary", KeyForwardingPhytosanitary},
		{"stamp_duty", KeyForwardingStampDuty},
		{"single_window", KeyForwardingSingleWindow},
	}
)

// Forwarding computes the forwarding-agent fee: a subtotal of base components,
// a commission on it, fixed administrative fees and the CAF-banded HAD fee.
func Forwarding(in ForwardingInput, s Settings, ports PortFeeRepository) (ForwardingQuote, error) {
	if !in.ContainerType.Supported() {
		return ForwardingQuote{}, fmt.Errorf("%w: container type %q", ErrNoAutomaticValue, in.ContainerType)
	}
	if !in.Zone.Supported() {
		return ForwardingQuote{}, fmt.Errorf("%w: zone %q", ErrNoAutomaticValue, in.Zone)
	}
	port, ok := ports.PortFee(in.PortCategory)
	if !ok {
		return ForwardingQuote{}, fmt.Errorf("%w: port category %q", ErrNoAutomaticValue, in.PortCategory)
	}

	r := &settingsReader{s: s}
	count := float64(in.ContainerCount)
	tonnes := in.TotalWeight / 1000
	caf := CAF(in.GoodsValue, in.Freight, in.Insurance)

	q := ForwardingQuote{}
	add := func(name string, amount float64) {
		q.Components = append(q.Components, FeeLine{Name: name, Amount: amount})
		q.Subtotal += amount
	}

	add("customs_duty", in.CustomsDuty)
	add("port_levy", tonnes*port.Rate)
	add("municipal_levy", tonnes*port.MunicipalRate)
	for _, fee := range forwardingContainerFees {
		add(fee, r.get(ForwardingContainerKey(fee, in.ContainerType))*count)
	}
	for _, fee := range forwardingZoneFees {
		add(fee, r.get(ForwardingZoneKey(fee, in.Zone, in.ContainerType))*count)
	}
	for _, fee := range forwardingFixedFees {
		add(fee.name, r.get(fee.key))
	}
	add("shippers_council", caf*percent(r.get(KeyForwardingShippersRate)))

	q.Commission = q.Subtotal * percent(r.get(KeyForwardingCommissionRate))
	q.AdminFees = r.get(KeyForwardingAdminFee) + r.get(KeyForwardingFileFee)

	band, err := selectHADBand(caf, s)
	if err != nil {
		return ForwardingQuote{}, err
	}
	if band > 0 {
		q.HADBand = band
		q.HAD = caf*percent(r.get(HADKey(band, "rate"))) + r.get(HADKey(band, "fixed"))
	}
	if r.err != nil {
		return ForwardingQuote{}, r.err
	}

	q.Amount = Round(q.Subtotal + q.Commission + q.AdminFees + q.HAD)
	return q, nil
}

// selectHADBand returns the highest band whose floor is at most caf, or 0 when
// caf is below the first floor. Floors must be ascending.
func selectHADBand(caf float64, s Settings) (int, error) {
	r := &settingsReader{s: s}
	floors := make([]float64, HADBands)
	for i := range floors {
		floors[i] = r.get(HADKey(i+1, "floor"))
	}
	if r.err != nil {
		return 0, r.err
	}
	band := 0
	for i, floor := range floors {
		if i > 0 && floor < floors[i-1] {
			return 0, fmt.Errorf("settings: %s below %s", HADKey(i+1, "floor"), HADKey(i, "floor"))
		}
		if caf >= floor {
			band = i + 1
		}
	}
	return band, nil
}

// ForwardingComponentNames lists the base component names in order.
func ForwardingComponentNames() []string {
	names := []string{"customs_duty", "port_levy", "municipal_levy"}
	names = append(names, forwardingContainerFees...)
	names = append(names, forwardingZoneFees...)
	for _, fee := range forwardingFixedFees {
		names = append(names, fee.name)
	}
	names = append(names, "shippers_council")
	return names
}

func (q ForwardingQuote) String() string {
	parts := make([]string, 0, len(q.Components))
	for _, c := range q.Components {
		parts = append(parts, fmt.Sprintf("%s=%.0f", c.Name, c.Amount))
	}
	return fmt.Sprintf("subtotal=%.0f [%s] commission=%.0f admin=%.0f had(band %d)=%.0f",
		q.Subtotal, strings.Join(parts, " "), q.Commission, q.AdminFees, q.HADBand, q.HAD)
}
