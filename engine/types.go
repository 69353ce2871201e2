package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidLine signals a line item with negative or non-finite numeric fields.
	ErrInvalidLine = errors.New("engine: invalid line item")
	// ErrInvalidShipment signals a shipment context that violates its invariants.
	ErrInvalidShipment = errors.New("engine: invalid shipment")
)

// LineItem is one invoice line. The line total is always Quantity × UnitPrice;
// DeclaredTotal is advisory and only feeds reconciliation.
type LineItem struct {
	Code          string       `json:"code"`
	Description   string       `json:"description"`
	Quantity      int64        `json:"quantity"`
	UnitPrice     float64      `json:"unit_price"`
	DeclaredTotal float64      `json:"declared_total,omitempty"`
	NetWeight     float64      `json:"net_weight"`
	Tariff        *TariffEntry `json:"tariff,omitempty"`
}

// Total returns quantity × unit price in shipment currency.
func (l LineItem) Total() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// Validate rejects negative and non-finite numeric fields.
func (l LineItem) Validate() error {
	if l.Quantity < 0 {
		return fmt.Errorf("%w: code %q quantity cannot be negative", ErrInvalidLine, l.Code)
	}
	if !finite(l.UnitPrice) || l.UnitPrice < 0 {
		return fmt.Errorf("%w: code %q unit price must be a non-negative number", ErrInvalidLine, l.Code)
	}
	if !finite(l.NetWeight) || l.NetWeight < 0 {
		return fmt.Errorf("%w: code %q net weight must be a non-negative number", ErrInvalidLine, l.Code)
	}
	if !finite(l.DeclaredTotal) {
		return fmt.Errorf("%w: code %q declared total is not a number", ErrInvalidLine, l.Code)
	}
	return nil
}

// ValidateLines validates every line, reporting the first offending index.
func ValidateLines(lines []LineItem) error {
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// SumLineTotals sums recomputed line totals in shipment currency.
func SumLineTotals(lines []LineItem) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.Total()
	}
	return sum
}

// SumNetWeight sums line net weights in kilograms.
func SumNetWeight(lines []LineItem) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.NetWeight
	}
	return sum
}

// TariffEntry holds the duty components of one tariff line, all in percent.
type TariffEntry struct {
	Code                 string  `json:"code" db:"code"`
	Description          string  `json:"description" db:"description"`
	DutyRate             float64 `json:"duty_rate" db:"duty_rate"`
	StatisticsRate       float64 `json:"statistics_rate" db:"statistics_rate"`
	CommunityLevyRate    float64 `json:"community_levy_rate" db:"community_levy_rate"`
	SolidarityLevyRate   float64 `json:"solidarity_levy_rate" db:"solidarity_levy_rate"`
	ConsumptionTaxRate   float64 `json:"consumption_tax_rate" db:"consumption_tax_rate"`
	RRRRate              float64 `json:"rrr_rate" db:"rrr_rate"`
	RCPRate              float64 `json:"rcp_rate" db:"rcp_rate"`
	CumulativeWithTax    float64 `json:"cumulative_with_tax" db:"cumulative_with_tax"`
	CumulativeWithoutTax float64 `json:"cumulative_without_tax" db:"cumulative_without_tax"`
}

// Validate checks that both cumulative rates dominate each individual component.
func (t TariffEntry) Validate() error {
	components := []float64{t.DutyRate, t.StatisticsRate, t.CommunityLevyRate, t.SolidarityLevyRate}
	for _, c := range components {
		if c < 0 {
			return fmt.Errorf("tariff %s: negative rate component", t.Code)
		}
		if c > t.CumulativeWithoutTax || c > t.CumulativeWithTax {
			return fmt.Errorf("tariff %s: cumulative rate below component %.4f", t.Code, c)
		}
	}
	if t.ConsumptionTaxRate > t.CumulativeWithTax {
		return fmt.Errorf("tariff %s: cumulative rate below consumption tax", t.Code)
	}
	return nil
}

// ExemptionEntry marks a code that is subject to conformity certification.
// Exempt entries are listed but carry no certification obligation.
type ExemptionEntry struct {
	Code   string `json:"code" db:"code"`
	Exempt bool   `json:"exempt" db:"exempt"`
}

// PortFeeEntry carries per-tonne port and municipal levy rates of a cargo category.
type PortFeeEntry struct {
	Category      string  `json:"category" db:"category"`
	Rate          float64 `json:"rate" db:"rate"`
	MunicipalRate float64 `json:"municipal_rate" db:"municipal_rate"`
}

// Incoterm is a shipping-term code.
type Incoterm string

const (
	IncotermEXW Incoterm = "EXW"
	IncotermFCA Incoterm = "FCA"
	IncotermFAS Incoterm = "FAS"
	IncotermFOB Incoterm = "FOB"
	IncotermCFR Incoterm = "CFR"
	IncotermCIF Incoterm = "CIF"
	IncotermCPT Incoterm = "CPT"
	IncotermCIP Incoterm = "CIP"
	IncotermDAP Incoterm = "DAP"
	IncotermDPU Incoterm = "DPU"
	IncotermDDP Incoterm = "DDP"
)

// TransportMode is the main carriage mode.
type TransportMode string

const (
	TransportSea  TransportMode = "sea"
	TransportAir  TransportMode = "air"
	TransportRoad TransportMode = "road"
)

// ContainerType identifies a container size. Only 20ft and 40ft have fee tables.
type ContainerType string

const (
	Container20 ContainerType = "20ft"
	Container40 ContainerType = "40ft"
)

// Supported reports whether fee tables exist for the container type.
func (c ContainerType) Supported() bool {
	return c == Container20 || c == Container40
}

// Route is the conformity-certification route of the importer.
type Route string

const (
	RouteA Route = "route_a"
	RouteB Route = "route_b"
	RouteC Route = "route_c"
)

// Supported reports whether the route belongs to the closed set.
func (r Route) Supported() bool {
	return r == RouteA || r == RouteB || r == RouteC
}

// PaymentMode is the supplier payment instrument.
type PaymentMode string

const (
	PaymentTransfer              PaymentMode = "transfer"
	PaymentDocumentaryCollection PaymentMode = "documentary_collection"
	PaymentDocumentaryCredit     PaymentMode = "documentary_credit"
)

// Zone is the forwarding-agent delivery zone derived from the importing actor.
type Zone string

const (
	Zone1 Zone = "zone1"
	Zone2 Zone = "zone2"
	Zone3 Zone = "zone3"
)

// Supported reports whether the zone belongs to the closed set.
func (z Zone) Supported() bool {
	return z == Zone1 || z == Zone2 || z == Zone3
}

// WeightUnit is the unit a declared weight is expressed in.
type WeightUnit string

const (
	WeightKilogram WeightUnit = "kg"
	WeightTonne    WeightUnit = "t"
	WeightPound    WeightUnit = "lb"
)

// ToKilograms converts w expressed in unit u. An empty unit means kilograms.
func (u WeightUnit) ToKilograms(w float64) (float64, error) {
	switch WeightUnit(strings.ToLower(string(u))) {
	case "", WeightKilogram:
		return w, nil
	case WeightTonne:
		return w * 1000, nil
	case WeightPound:
		return w * 0.45359237, nil
	default:
		return 0, fmt.Errorf("%w: unknown weight unit %q", ErrInvalidShipment, u)
	}
}

// ShipmentContext carries the shipment-level parameters of a computation.
type ShipmentContext struct {
	Reference      string        `json:"reference"`
	Incoterm       Incoterm      `json:"incoterm"`
	TransportMode  TransportMode `json:"transport_mode"`
	ContainerType  ContainerType `json:"container_type"`
	ContainerCount int           `json:"container_count"`
	Route          Route         `json:"route"`
	PaymentMode    PaymentMode   `json:"payment_mode"`
	PortCategory   string        `json:"port_category"`
	Zone           Zone          `json:"zone"`

	Currency       string     `json:"currency"`
	ExchangeRate   float64    `json:"exchange_rate"`
	DeclaredTotal  float64    `json:"declared_total"`
	DeclaredWeight float64    `json:"declared_weight"`
	WeightUnit     WeightUnit `json:"weight_unit"`
}

// Validate enforces a positive exchange rate and non-negative amounts.
func (s ShipmentContext) Validate() error {
	if !finite(s.ExchangeRate) || s.ExchangeRate <= 0 {
		return fmt.Errorf("%w: exchange rate must be positive", ErrInvalidShipment)
	}
	if s.ContainerCount < 0 {
		return fmt.Errorf("%w: container count cannot be negative", ErrInvalidShipment)
	}
	if !finite(s.DeclaredTotal) || s.DeclaredTotal < 0 {
		return fmt.Errorf("%w: declared total cannot be negative", ErrInvalidShipment)
	}
	if !finite(s.DeclaredWeight) || s.DeclaredWeight < 0 {
		return fmt.Errorf("%w: declared weight cannot be negative", ErrInvalidShipment)
	}
	if _, err := s.WeightUnit.ToKilograms(0); err != nil {
		return err
	}
	return nil
}

// CostBreakdown is the landed-cost result in local currency. It is rebuilt on
// every computation and never patched.
type CostBreakdown struct {
	GoodsValue      float64 `json:"goods_value"`
	Freight         float64 `json:"freight"`
	Insurance       float64 `json:"insurance"`
	CAF             float64 `json:"caf"`
	CustomsDuty     float64 `json:"customs_duty"`
	FinancialFees   float64 `json:"financial_fees"`
	ForwardingFee   float64 `json:"forwarding_fee"`
	RPI             float64 `json:"rpi"`
	RRR             float64 `json:"rrr"`
	RCP             float64 `json:"rcp"`
	COC             float64 `json:"coc"`
	BSC             float64 `json:"bsc"`
	IncidentalCosts float64 `json:"incidental_costs"`
	Total           float64 `json:"total"`
}

// StatutoryLevies sums RPI, RRR, RCP, COC and BSC.
func (b CostBreakdown) StatutoryLevies() float64 {
	return b.RPI + b.RRR + b.RCP + b.COC + b.BSC
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
