package engine

// testSettings returns a complete settings bag with round numbers.
func testSettings() Settings {
	s := Settings{
		KeyGoodsFactorEXW: 1.1,
		KeyGoodsFactorFCA: 1.05,

		KeyInsuranceMultiplier:   1.2,
		KeyInsuranceOrdinaryRate: 0.15,
		KeyInsuranceMinimum:      5000,
		KeyInsuranceAccessoryFee: 2500,
		KeyInsuranceAirSurcharge: 10,
		KeyInsuranceWarRiskRate:  0.05,

		"financial.transfer.file_fee":                          10000,
		"financial.transfer.swift_fee":                         5000,
		"financial.transfer.transfer_commission_rate":          0.5,
		"financial.transfer.exchange_commission_rate":          0.25,
		"financial.documentary_collection.file_fee":            15000,
		"financial.documentary_collection.swift_fee":           5000,
		"financial.documentary_collection.courier_fee":         20000,
		KeyCollectionCommissionRate:                            0.25,
		KeyCollectionCommissionMin:                             30000,
		"financial.documentary_credit.opening_fee":             25000,
		"financial.documentary_credit.opening_commission_rate": 0.5,
		"financial.documentary_credit.confirmation_rate":       0.3,
		"financial.documentary_credit.negotiation_rate":        0.2,
		"financial.documentary_credit.swift_fee":               5000,

		KeyForwardingBLExchange:     25000,
		KeyForwardingDeclaration:    10000,
		KeyForwardingManifest:       5000,
		KeyForwardingStorage:        0,
		KeyForwardingPhytosanitary:  7500,
		KeyForwardingStampDuty:      2000,
		KeyForwardingShippersRate:   0.2,
		KeyForwardingSingleWindow:   15000,
		KeyForwardingCommissionRate: 5,
		KeyForwardingAdminFee:       15000,
		KeyForwardingFileFee:        10000,

		KeyRPIThresholdLow:  1000000,
		KeyRPIThresholdHigh: 5000000,
		KeyRPIFlat:          25000,
		KeyRPILicensingRate: 1,
		KeyRPIMinimum:       50000,

		KeyCOCThreshold: 1000000,

		KeyIncidentalRate:    1,
		KeyIncidentalMinimum: 10000,
	}

	freight := map[ContainerType][]float64{
		Container20: {150, 50, 10, 1200, 300, 90},
		Container40: {250, 50, 10, 2000, 500, 190},
	}
	components := append(append([]string{}, freightHandlingComponents...), freightCarriageComponents...)
	for ct, values := range freight {
		for i, c := range components {
			s[FreightKey(ct, c)] = values[i]
		}
	}

	perContainer := map[string]float64{
		"port_handling":    60000,
		"cleaning":         5000,
		"isps":             3000,
		"container_return": 20000,
		"scanner":          30000,
		"unloading":        15000,
	}
	for fee, v := range perContainer {
		s[ForwardingContainerKey(fee, Container20)] = v
		s[ForwardingContainerKey(fee, Container40)] = 2 * v
	}
	zoneFees := map[Zone][2]float64{
		Zone1: {100000, 20000},
		Zone2: {150000, 25000},
		Zone3: {250000, 30000},
	}
	for z, v := range zoneFees {
		s[ForwardingZoneKey("delivery", z, Container20)] = v[0]
		s[ForwardingZoneKey("lifting", z, Container20)] = v[1]
		s[ForwardingZoneKey("delivery", z, Container40)] = 2 * v[0]
		s[ForwardingZoneKey("lifting", z, Container40)] = 2 * v[1]
	}

	floors := []float64{0, 1000000, 5000000, 20000000, 50000000}
	rates := []float64{0.5, 0.4, 0.3, 0.2, 0.1}
	fixed := []float64{10000, 15000, 25000, 50000, 100000}
	for i := range floors {
		s[HADKey(i+1, "floor")] = floors[i]
		s[HADKey(i+1, "rate")] = rates[i]
		s[HADKey(i+1, "fixed")] = fixed[i]
	}

	for i, r := range []Route{RouteA, RouteB, RouteC} {
		s[COCKey("rate", r)] = 0.5 - float64(i)*0.1
		s[COCKey("minimum", r)] = 100000
		s[COCKey("maximum", r)] = 2000000
	}

	s[BSCKey(Container20)] = 50000
	s[BSCKey(Container40)] = 80000
	return s
}

func testTables() *Tables {
	return NewTables(
		[]TariffEntry{
			{
				Code: "8471.30.00", Description: "Portable automatic data processing machines",
				DutyRate: 10, StatisticsRate: 1, CommunityLevyRate: 0.5, SolidarityLevyRate: 0.8,
				ConsumptionTaxRate: 18, RRRRate: 0.5, RCPRate: 0.3,
				CumulativeWithoutTax: 20, CumulativeWithTax: 38,
			},
			{
				Code: "9403.60.00", Description: "Wooden furniture",
				DutyRate: 5, StatisticsRate: 1, ConsumptionTaxRate: 18, RRRRate: 0.2, RCPRate: 0.1,
				CumulativeWithoutTax: 10, CumulativeWithTax: 28,
			},
			{
				Code: "8517.12.00", Description: "Telephones for cellular networks",
				DutyRate: 5, ConsumptionTaxRate: 18, CumulativeWithoutTax: 7.5, CumulativeWithTax: 25.5,
			},
		},
		[]ExemptionEntry{
			{Code: "8471.30.00", Exempt: false},
			{Code: "8517.12.00", Exempt: true},
		},
		[]PortFeeEntry{
			{Category: "General", Rate: 2000, MunicipalRate: 500},
			{Category: "hydrocarbons", Rate: 3500, MunicipalRate: 750},
		},
	)
}

// testLines are two matched lines worth 300,000 and 700,000 in shipment currency.
func testLines() []LineItem {
	return []LineItem{
		{Code: "8471 30 00", Description: "Laptops", Quantity: 3, UnitPrice: 100000, NetWeight: 4000},
		{Code: "9403.60.00", Description: "Desks", Quantity: 7, UnitPrice: 100000, NetWeight: 6000},
	}
}

func withTariffs(lines []LineItem) []LineItem {
	return ResolveTariffs(lines, testTables())
}

func ptr[T any](v T) *T {
	return &v
}
