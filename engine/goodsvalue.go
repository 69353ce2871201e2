package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAutomaticValue marks an unsupported enumeration value: the engine has no
// rule for it and the caller must supply the figure manually.
var ErrNoAutomaticValue = errors.New("engine: no automatic value")

// incotermRule describes how an incoterm is handled. An empty factorKey means
// a markup factor of 1.
type incotermRule struct {
	factorKey     string
	autoTransport bool
}

var incotermRules = map[Incoterm]incotermRule{
	IncotermEXW: {factorKey: KeyGoodsFactorEXW, autoTransport: true},
	IncotermFCA: {factorKey: KeyGoodsFactorFCA, autoTransport: true},
	IncotermFOB: {autoTransport: true},
	IncotermFAS: {},
	IncotermCFR: {},
	IncotermCIF: {},
	IncotermCPT: {},
	IncotermCIP: {},
	IncotermDAP: {},
	IncotermDPU: {},
	IncotermDDP: {},
}

// ParseIncoterm upper-cases and trims a raw incoterm code.
func ParseIncoterm(raw string) Incoterm {
	return Incoterm(strings.ToUpper(strings.TrimSpace(raw)))
}

// Known reports whether i is an Incoterms 2020 code.
func (i Incoterm) Known() bool {
	_, ok := incotermRules[i]
	return ok
}

// AutoTransport reports whether freight and insurance can be computed
// automatically under i. Only EXW, FCA and FOB leave main carriage to the buyer.
func (i Incoterm) AutoTransport() bool {
	return incotermRules[i].autoTransport
}

// GoodsValue converts the sum of line totals (shipment currency) into the
// FOB-equivalent goods value in whole local-currency units.
func GoodsValue(lineSum float64, incoterm Incoterm, exchangeRate float64, s Settings) (float64, error) {
	rule, ok := incotermRules[incoterm]
	if !ok {
		return 0, fmt.Errorf("%w: incoterm %q", ErrNoAutomaticValue, incoterm)
	}
	factor := 1.0
	if rule.factorKey != "" {
		v, err := s.Get(rule.factorKey)
		if err != nil {
			return 0, err
		}
		factor = v
	}
	return Round(lineSum * factor * exchangeRate), nil
}

// CAF is the aggregate customs value: goods value + freight + insurance.
func CAF(goodsValue, freight, insurance float64) float64 {
	return goodsValue + freight + insurance
}
