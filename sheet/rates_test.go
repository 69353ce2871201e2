package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sysafari.com/customs/costsim/engine"
)

func TestImportRates(t *testing.T) {
	buf := workbook(t,
		testSheet{name: "Tariffs", rows: [][]string{
			{"Code", "Description", "Duty rate", "RRR rate", "RCP rate", "Cumulative with tax", "Cumulative without tax"},
			{"8471.30.00", "Portable computers", "10", "0,5", "0,3", "38", "20"},
			{"9403.60.00", "Wooden furniture", "5", "", "", "28", "10"},
			{"8517.12.00", "Phones", "five", "", "", "25", ""},
		}},
		testSheet{name: "exemptions", rows: [][]string{
			{"code", "exempt"},
			{"8471.30.00", "non"},
			{"8517.12.00", "oui"},
			{"9403.60.00", "maybe"},
		}},
		testSheet{name: "PORT_FEES", rows: [][]string{
			{"category", "rate", "municipal rate"},
			{"general", "2 000", "500"},
			{"hydrocarbons", "-1"},
		}},
	)

	imp, err := ImportRates(buf)
	require.NoError(t, err)

	require.Len(t, imp.Tariffs, 2)
	assert.Equal(t, engine.TariffEntry{
		Code:                 "8471.30.00",
		Description:          "Portable computers",
		DutyRate:             10,
		RRRRate:              0.5,
		RCPRate:              0.3,
		CumulativeWithTax:    38,
		CumulativeWithoutTax: 20,
	}, imp.Tariffs[0])

	assert.Equal(t, []engine.ExemptionEntry{
		{Code: "8471.30.00", Exempt: false},
		{Code: "8517.12.00", Exempt: true},
	}, imp.Exemptions)

	assert.Equal(t, []engine.PortFeeEntry{{Category: "general", Rate: 2000, MunicipalRate: 500}}, imp.PortFees)

	// phones: empty cumulative and non-numeric duty; 9403 exemption flag; hydrocarbons rate
	require.Len(t, imp.Errors, 4)
	assert.Equal(t, RowError{Sheet: "Tariffs", Row: 4, Column: "cumulative_without_tax", Message: "value is empty"}, imp.Errors[0])
	assert.Equal(t, "duty_rate", imp.Errors[1].Column)
	assert.Equal(t, "exempt", imp.Errors[2].Column)
	assert.Equal(t, "PORT_FEES", imp.Errors[3].Sheet)
}

func TestImportRatesRequiresTariffs(t *testing.T) {
	buf := workbook(t, testSheet{name: "exemptions", rows: [][]string{{"code"}, {"8471"}}})
	_, err := ImportRates(buf)
	assert.ErrorIs(t, err, ErrMissingColumns)

	buf = workbook(t, testSheet{name: "tariffs", rows: [][]string{{"code", "cumulative_with_tax"}}})
	_, err = ImportRates(buf)
	assert.ErrorIs(t, err, ErrMissingColumns)
}
