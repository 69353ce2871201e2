package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_ProportionalShares(t *testing.T) {
	lines := withTariffs(testLines())

	allocations, total := Allocate(1200000, lines, CumulativeWithoutTax)
	require.Len(t, allocations, 2)

	assert.InDelta(t, 0.3, allocations[0].Share, 1e-12)
	assert.InDelta(t, 0.7, allocations[1].Share, 1e-12)
	assert.InDelta(t, 360000, allocations[0].ImputedValue, 1e-6)
	assert.InDelta(t, 840000, allocations[1].ImputedValue, 1e-6)

	assert.Equal(t, 20.0, allocations[0].Rate)
	assert.Equal(t, 10.0, allocations[1].Rate)
	assert.Equal(t, 72000.0, allocations[0].Amount)
	assert.Equal(t, 84000.0, allocations[1].Amount)
	assert.Equal(t, 156000.0, total)
}

func TestAllocate_RateSelectors(t *testing.T) {
	lines := withTariffs(testLines())

	_, withTax := Allocate(1200000, lines, DutySelector(true))
	_, rrr := Allocate(1200000, lines, RRRRate)
	_, rcp := Allocate(1200000, lines, RCPRate)

	// 360,000 × 38 % + 840,000 × 28 %
	assert.Equal(t, 136800.0+235200.0, withTax)
	// 360,000 × 0.5 % + 840,000 × 0.2 %
	assert.Equal(t, 1800.0+1680.0, rrr)
	// 360,000 × 0.3 % + 840,000 × 0.1 %
	assert.Equal(t, 1080.0+840.0, rcp)
}

func TestAllocate_ZeroLineTotals(t *testing.T) {
	lines := withTariffs([]LineItem{
		{Code: "84713000", Quantity: 0, UnitPrice: 1500},
		{Code: "94036000", Quantity: 5, UnitPrice: 0},
	})

	allocations, total := Allocate(1200000, lines, CumulativeWithTax)
	assert.Equal(t, 0.0, total)
	for _, a := range allocations {
		assert.Equal(t, 0.0, a.Share)
		assert.Equal(t, 0.0, a.ImputedValue)
		assert.Equal(t, 0.0, a.Amount)
		assert.True(t, a.Matched)
	}
}

func TestAllocate_EmptyLines(t *testing.T) {
	allocations, total := Allocate(1200000, nil, CumulativeWithTax)
	assert.Empty(t, allocations)
	assert.Equal(t, 0.0, total)
}

func TestAllocate_SharesSumToOne(t *testing.T) {
	cases := [][]LineItem{
		{{Quantity: 1, UnitPrice: 0.01}, {Quantity: 99999, UnitPrice: 12345.67}},
		{{Quantity: 3, UnitPrice: 1}, {Quantity: 3, UnitPrice: 1}, {Quantity: 3, UnitPrice: 1}},
		{{Quantity: 17, UnitPrice: 19.99}, {Quantity: 0, UnitPrice: 5}, {Quantity: 2, UnitPrice: 7.5}, {Quantity: 1000, UnitPrice: 0.333}},
	}
	for _, lines := range cases {
		allocations, _ := Allocate(987654.321, lines, CumulativeWithTax)
		var shares, imputed float64
		for _, a := range allocations {
			shares += a.Share
			imputed += a.ImputedValue
		}
		assert.InDelta(t, 1.0, shares, 1e-9)
		assert.InDelta(t, 987654.321, imputed, 1e-6)
	}
}

func TestAllocate_UnmatchedLineContributesZero(t *testing.T) {
	lines := withTariffs([]LineItem{
		{Code: "8471.30.00", Quantity: 3, UnitPrice: 100000},
		{Code: "0000.00.00", Quantity: 7, UnitPrice: 100000},
	})

	allocations, total := Allocate(1200000, lines, CumulativeWithoutTax)
	assert.False(t, allocations[1].Matched)
	assert.InDelta(t, 840000, allocations[1].ImputedValue, 1e-6)
	assert.Equal(t, 0.0, allocations[1].Amount)
	assert.Equal(t, 72000.0, total)
}

func TestImputedValues(t *testing.T) {
	values := ImputedValues(1200000, testLines())
	assert.InDeltaSlice(t, []float64{360000, 840000}, values, 1e-6)

	assert.Equal(t, []float64{0}, ImputedValues(1200000, []LineItem{{Quantity: 0, UnitPrice: 10}}))
}
