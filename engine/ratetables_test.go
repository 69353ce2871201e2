package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "84713000", NormalizeCode("8471.30.00"))
	assert.Equal(t, "84713000", NormalizeCode(" 8471 30-00 "))
	assert.Equal(t, "EX12", NormalizeCode("ex/12"))
	assert.Equal(t, "", NormalizeCode(" .-/ "))
}

func TestTables_Lookup(t *testing.T) {
	tables := testTables()

	entry, ok := tables.Tariff("8471-30-00")
	require.True(t, ok)
	assert.Equal(t, "84713000", entry.Code)
	assert.Equal(t, 38.0, entry.CumulativeWithTax)

	_, ok = tables.Tariff("0101.21.00")
	assert.False(t, ok)

	ex, ok := tables.Exemption("8517 12 00")
	require.True(t, ok)
	assert.True(t, ex.Exempt)

	pf, ok := tables.PortFee(" GENERAL ")
	require.True(t, ok)
	assert.Equal(t, 2000.0, pf.Rate)

	tariffs, exemptions, portFees := tables.Len()
	assert.Equal(t, 3, tariffs)
	assert.Equal(t, 2, exemptions)
	assert.Equal(t, 2, portFees)
}

func TestTables_Search(t *testing.T) {
	tables := testTables()

	byPrefix := tables.SearchTariffs("85", 0)
	require.Len(t, byPrefix, 1)
	assert.Equal(t, "85171200", byPrefix[0].Code)

	byText := tables.SearchTariffs("FURNITURE", 0)
	require.Len(t, byText, 1)
	assert.Equal(t, "94036000", byText[0].Code)

	ordered := tables.SearchTariffs("e", 0)
	require.Len(t, ordered, 3)
	assert.Equal(t, "84713000", ordered[0].Code)

	assert.Len(t, tables.SearchTariffs("e", 2), 2)
	assert.Empty(t, tables.SearchTariffs("   ", 10))
}

func TestTariffEntry_Validate(t *testing.T) {
	for _, entry := range []TariffEntry{
		{Code: "1", DutyRate: 5, CumulativeWithoutTax: 7, CumulativeWithTax: 25, ConsumptionTaxRate: 18},
	} {
		assert.NoError(t, entry.Validate())
	}
	assert.Error(t, TariffEntry{Code: "2", DutyRate: 30, CumulativeWithoutTax: 20, CumulativeWithTax: 38}.Validate())
	assert.Error(t, TariffEntry{Code: "3", DutyRate: -1}.Validate())
}

func TestSettings(t *testing.T) {
	s := Settings{"a.b": 1}
	v, err := s.Get("A.B")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = s.Get("a.c")
	assert.ErrorIs(t, err, ErrMissingSetting)
	assert.Contains(t, err.Error(), "a.c")

	merged := s.Merge(Settings{"a.b": 9, "a.c": 0})
	assert.Equal(t, 1.0, merged["a.b"])
	assert.True(t, merged.Has("a.c"))
	assert.Equal(t, []string{"a.b", "a.c"}, merged.Keys())
	assert.False(t, s.Has("a.c"))
}
