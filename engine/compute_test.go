package engine

import (
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
)

// =============================================================================
// Compute Pipeline Test Suite
// =============================================================================

type ComputeSuite struct {
	suite.Suite
	input Input
}

func TestComputeSuite(t *testing.T) {
	suite.Run(t, new(ComputeSuite))
}

func (s *ComputeSuite) SetupTest() {
	s.input = Input{
		Shipment: ShipmentContext{
			Reference:      "SIM-2024-001",
			Incoterm:       "fob",
			TransportMode:  "Sea",
			ContainerType:  "20FT",
			ContainerCount: 1,
			Route:          RouteA,
			PaymentMode:    PaymentTransfer,
			PortCategory:   "general",
			Zone:           Zone1,
			Currency:       "EUR",
			ExchangeRate:   100,
			DeclaredTotal:  10000,
			DeclaredWeight: 10,
			WeightUnit:     WeightTonne,
		},
		Lines: []LineItem{
			{Code: "8471.30.00", Description: "Laptops", Quantity: 3, UnitPrice: 1000, NetWeight: 4000},
			{Code: "9403.60.00", Description: "Desks", Quantity: 7, UnitPrice: 1000, NetWeight: 6000},
		},
		Settings: testSettings(),
		Tables:   testTables(),
	}
}

func (s *ComputeSuite) compute() *Result {
	res, err := Compute(s.input)
	s.Require().NoError(err)
	return res
}

// =============================================================================
// Full pipeline
// =============================================================================

func (s *ComputeSuite) TestFullPipeline() {
	res := s.compute()
	b := res.Breakdown

	s.Equal(StatusComplete, res.Status)
	s.True(res.Final())
	s.Empty(res.RequiredInputs)
	s.Empty(res.Unmatched)
	s.Empty(res.Warnings)

	s.Equal(1000000.0, b.GoodsValue)
	s.Equal(180000.0, b.Freight)
	s.Equal(7500.0, b.Insurance)
	s.Equal(1187500.0, b.CAF)
	s.Equal(154375.0, b.CustomsDuty)
	s.Equal(25000.0, b.RPI)
	s.Equal(0.0, b.COC)
	s.Equal(50000.0, b.BSC)
	s.Equal(10000.0, b.IncidentalCosts)
	s.Equal(22500.0, b.FinancialFees)
	s.Greater(b.ForwardingFee, b.CustomsDuty)

	want := b.GoodsValue + b.Freight + b.Insurance + b.FinancialFees + b.ForwardingFee +
		b.RPI + b.RRR + b.RCP + b.COC + b.BSC + b.IncidentalCosts
	s.InDelta(want, b.Total, 1e-6)

	s.Require().Len(res.Lines, 2)
	s.Equal(71250.0, res.Lines[0].Duty)
	s.Equal(83125.0, res.Lines[1].Duty)
	s.InDelta(1.0, res.Lines[0].Share+res.Lines[1].Share, 1e-12)

	s.NotNil(res.Details.Freight)
	s.NotNil(res.Details.Insurance)
	s.NotNil(res.Details.Financial)
	s.NotNil(res.Details.Forwarding)
	s.NotNil(res.Details.COC)
	s.Equal(b.CustomsDuty, res.Details.Forwarding.Components[0].Amount)

	s.False(res.Reconciliation.RequiresReview)
	s.Len(res.Reconciliation.Discrepancies, 3)
}

func (s *ComputeSuite) TestDeterministic() {
	first, err := json.Marshal(s.compute())
	s.Require().NoError(err)
	second, err := json.Marshal(s.compute())
	s.Require().NoError(err)
	s.Equal(string(first), string(second))
}

func (s *ComputeSuite) TestInputNotMutated() {
	s.compute()
	for _, line := range s.input.Lines {
		s.Nil(line.Tariff)
	}
	s.Equal(Incoterm("fob"), s.input.Shipment.Incoterm)
}

func (s *ComputeSuite) TestConsumptionTaxToggle() {
	s.input.Options.IncludeConsumptionTax = true
	res := s.compute()
	// 356,250 × 38 % + 831,250 × 28 %
	s.Equal(135375.0+232750.0, res.Breakdown.CustomsDuty)
	s.Equal(38.0, res.Lines[0].DutyRate)
}

// =============================================================================
// Configuration and input errors
// =============================================================================

func (s *ComputeSuite) TestMissingSettingFailsFast() {
	delete(s.input.Settings, KeyRPIFlat)
	_, err := Compute(s.input)
	s.ErrorIs(err, ErrMissingSetting)
	s.Contains(err.Error(), "rpi")
}

func (s *ComputeSuite) TestManualFeeSkipsItsSettings() {
	delete(s.input.Settings, KeyRPIFlat)
	s.input.Options.Modes = map[Fee]Mode{FeeRPI: ModeManual}
	s.input.Options.ManualValues = map[Fee]float64{FeeRPI: 12345}
	res := s.compute()
	s.Equal(12345.0, res.Breakdown.RPI)
	s.Equal(StatusComplete, res.Status)
}

func (s *ComputeSuite) TestInvalidInput() {
	s.Run("negative quantity", func() {
		s.SetupTest()
		s.input.Lines[1].Quantity = -1
		_, err := Compute(s.input)
		s.ErrorIs(err, ErrInvalidLine)
		s.Contains(err.Error(), "line 2")
	})

	s.Run("zero exchange rate", func() {
		s.SetupTest()
		s.input.Shipment.ExchangeRate = 0
		_, err := Compute(s.input)
		s.ErrorIs(err, ErrInvalidShipment)
	})

	s.Run("unknown weight unit", func() {
		s.SetupTest()
		s.input.Shipment.WeightUnit = "stone"
		_, err := Compute(s.input)
		s.ErrorIs(err, ErrInvalidShipment)
	})

	s.Run("nil settings", func() {
		s.SetupTest()
		s.input.Settings = nil
		_, err := Compute(s.input)
		s.ErrorIs(err, ErrMissingSetting)
	})
}

// =============================================================================
// Manual inputs and unsupported enumerations
// =============================================================================

func (s *ComputeSuite) TestManualModeWithoutValueIsFlagged() {
	s.input.Options.Modes = map[Fee]Mode{FeeFreight: ModeManual}
	res := s.compute()

	s.Equal(StatusIncomplete, res.Status)
	s.False(res.Final())
	s.Equal([]RequiredInput{{Fee: FeeFreight, Reason: "manual mode without a value"}}, res.RequiredInputs)
	s.Equal(0.0, res.Breakdown.Freight)
	s.Nil(res.Details.Freight)
}

func (s *ComputeSuite) TestManualValueFlowsDownstream() {
	s.input.Options.Modes = map[Fee]Mode{FeeFreight: ModeManual}
	s.input.Options.ManualValues = map[Fee]float64{FeeFreight: 250000}
	res := s.compute()

	s.Equal(StatusComplete, res.Status)
	s.Equal(250000.0, res.Breakdown.Freight)
	s.Equal(res.Breakdown.GoodsValue+250000+res.Breakdown.Insurance, res.Breakdown.CAF)
}

func (s *ComputeSuite) TestNonMultimodalIncotermDisablesTransport() {
	s.input.Shipment.Incoterm = IncotermCIF
	res := s.compute()

	s.Equal(StatusIncomplete, res.Status)
	s.Equal(1000000.0, res.Breakdown.GoodsValue)
	s.Require().Len(res.RequiredInputs, 2)
	s.Equal(FeeFreight, res.RequiredInputs[0].Fee)
	s.Equal(FeeInsurance, res.RequiredInputs[1].Fee)
	s.Len(res.Warnings, 1)

	s.input.Options.ManualValues = map[Fee]float64{FeeFreight: 180000, FeeInsurance: 7500}
	res = s.compute()
	s.Equal(StatusComplete, res.Status)
	s.Equal(1187500.0, res.Breakdown.CAF)
}

func (s *ComputeSuite) TestUnknownIncoterm() {
	s.input.Shipment.Incoterm = "ABC"
	res := s.compute()
	fees := requiredFees(res)
	s.Equal([]Fee{FeeGoodsValue, FeeFreight, FeeInsurance}, fees)
	s.Contains(res.Warnings[0], "not recognised")
}

func (s *ComputeSuite) TestUnsupportedContainerType() {
	s.input.Shipment.ContainerType = "45hc"
	res := s.compute()
	s.Equal([]Fee{FeeFreight, FeeBSC, FeeForwarding}, requiredFees(res))
	s.Nil(res.Details.Forwarding)
}

func (s *ComputeSuite) TestUnknownPaymentMode() {
	s.input.Shipment.PaymentMode = "cash"
	res := s.compute()
	s.Equal([]Fee{FeeFinancial}, requiredFees(res))
}

// =============================================================================
// Missing codes
// =============================================================================

func (s *ComputeSuite) TestUnmatchedCodes() {
	s.input.Lines[1].Code = "0000.00.00"
	res := s.compute()

	s.Equal(StatusUnresolved, res.Status)
	s.Equal([]UnmatchedLine{{Index: 1, Code: "0000.00.00", Description: "Desks"}}, res.Unmatched)
	s.Equal(71250.0, res.Breakdown.CustomsDuty)
	s.False(res.Lines[1].Matched)

	s.input.Options.DeferUnmatched = true
	res = s.compute()
	s.Equal(StatusProvisional, res.Status)
	s.False(res.Final())
}

// =============================================================================
// Reconciliation
// =============================================================================

func (s *ComputeSuite) TestDeclaredTotalMismatchIsAdvisory() {
	s.input.Shipment.DeclaredTotal = 10600
	res := s.compute()

	s.Equal(StatusComplete, res.Status)
	s.True(res.Reconciliation.RequiresReview)
	s.Equal(ClassMaterial, res.Reconciliation.Discrepancies[0].Class)
	s.Equal(ClassMaterial, res.Reconciliation.Discrepancies[1].Class)
	s.Equal(ClassNegligible, res.Reconciliation.Discrepancies[2].Class)
	// goods value still comes from the lines
	s.Equal(1000000.0, res.Breakdown.GoodsValue)
}

// =============================================================================
// Engine wrapper
// =============================================================================

func (s *ComputeSuite) TestEngine() {
	_, err := New(nil, testSettings(), nil)
	s.Error(err)
	_, err = New(testTables(), nil, nil)
	s.Error(err)

	logger, hook := test.NewNullLogger()
	e, err := New(s.input.Tables, s.input.Settings, log.NewEntry(logger))
	s.Require().NoError(err)

	res, err := e.Compute(s.input.Shipment, s.input.Lines, Options{})
	s.Require().NoError(err)
	s.Equal(StatusComplete, res.Status)
	s.Equal("Landed cost computed", hook.LastEntry().Message)
	s.Equal("SIM-2024-001", hook.LastEntry().Data["reference"])

	s.input.Shipment.DeclaredTotal = 10600
	_, err = e.Compute(s.input.Shipment, s.input.Lines, Options{})
	s.Require().NoError(err)
	s.Equal(log.WarnLevel, hook.LastEntry().Level)

	_, err = e.Compute(ShipmentContext{}, s.input.Lines, Options{})
	s.Error(err)
	s.Equal(log.ErrorLevel, hook.LastEntry().Level)

	s.Len(e.Resolver().Search("8471", 0), 1)
}

func requiredFees(res *Result) []Fee {
	fees := make([]Fee, 0, len(res.RequiredInputs))
	for _, r := range res.RequiredInputs {
		fees = append(fees, r.Fee)
	}
	return fees
}
