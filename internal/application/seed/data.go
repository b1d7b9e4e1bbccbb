package seed

import (
	"time"

	"semdex-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Dataset is the complete fixed reference data of the portal.
type Dataset struct {
	Users       []domain.User
	Holding     *domain.ShareHolding
	Allocations []domain.SaleAllocation
	Dividends   []domain.DividendHistory
	Sale        *domain.CourtApprovedSale
	Remaining   *domain.RemainingShares
	Brokers     []domain.ApprovalsBroker
	Settings    []domain.SystemSetting
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func str(s string) *string { return &s }

// Users returns the two hardcoded portal identities.
func Users() []domain.User {
	return []domain.User{
		{
			ID:          1,
			Email:       "pbernardproxy@gmail.com",
			Phone:       "+230 54557219",
			FullName:    "Patrick Ian Bernard",
			SharesOwned: 5600000,
			LoginMethod: "hardcoded",
			IsActive:    true,
		},
		{
			ID:          2,
			Email:       "audrey.l.brutus@gmail.com",
			Phone:       "+230 54951814",
			FullName:    "Marie Audrey Laura Brutus",
			SharesOwned: 5600000,
			LoginMethod: "hardcoded",
			IsActive:    true,
		},
	}
}

// Reference builds a fresh copy of the dataset. Portfolio value and dividend
// entitlements are derived from the holding rather than typed in.
func Reference() Dataset {
	holding := &domain.ShareHolding{
		TotalShares: 11200000,
		SharePrice:  domain.MustAmount("460.00"),
		Company:     "MCB Group Ltd",
		Ticker:      "MCBMU",
		Currency:    "MUR",
	}
	holding.PortfolioValue = domain.AmountOf(decimal.NewFromInt(holding.TotalShares).Mul(holding.SharePrice.Decimal))

	dividend := func(year int, perShare string, paid time.Time, second bool) domain.DividendHistory {
		dps := domain.MustAmount(perShare)
		entitlement := domain.AmountOf(decimal.NewFromInt(holding.TotalShares).Mul(dps.Decimal))
		return domain.DividendHistory{
			Year:             year,
			DividendPerShare: dps,
			TotalEntitlement: &entitlement,
			PaymentDate:      &paid,
			Status:           "paid",
			IsSecondDividend: second,
		}
	}

	return Dataset{
		Users:   Users(),
		Holding: holding,
		Allocations: []domain.SaleAllocation{
			{
				EntityName:           "Swan Securities Ltd",
				SharesAllocated:      60000,
				AllocationPercentage: domain.MustAmount("30.00"),
				ContactEmail:         str("info@swansecurities.mu"),
				ContactPhone:         str("+230 403 7000"),
				Status:               "finalized",
			},
			{
				EntityName:           "DTOS Capital Markets Ltd",
				SharesAllocated:      40000,
				AllocationPercentage: domain.MustAmount("20.00"),
				ContactEmail:         str("info@dtos.mu"),
				ContactPhone:         str("+230 202 9000"),
				Status:               "finalized",
			},
			{
				EntityName:           "DMH Stockbroking Ltd",
				SharesAllocated:      100000,
				AllocationPercentage: domain.MustAmount("50.00"),
				ContactEmail:         str("info@dmh.mu"),
				ContactPhone:         str("+230 207 6400"),
				Status:               "finalized",
			},
		},
		Dividends: []domain.DividendHistory{
			dividend(2020, "9.00", day(2020, time.December, 15), false),
			dividend(2021, "10.50", day(2021, time.December, 15), false),
			dividend(2022, "11.00", day(2022, time.December, 15), false),
			dividend(2023, "12.00", day(2023, time.December, 15), false),
			dividend(2024, "13.00", day(2024, time.June, 15), false),
			dividend(2024, "10.50", day(2024, time.December, 15), true),
		},
		Sale: &domain.CourtApprovedSale{
			SharesSold:            200000,
			SettlementAmount:      domain.MustAmount("117200300.21"),
			SettlementPurpose:     "Settlement of court-approved sale",
			SaleFinalized:         day(2025, time.December, 7),
			PaymentWindow:         day(2025, time.December, 31),
			BankClearanceDeadline: day(2026, time.January, 10),
			CourtOrderReference:   str("SCJ-2025-00789"),
			Status:                "finalized",
		},
		Remaining: &domain.RemainingShares{
			TotalShares:      11000000,
			Status:           "court_custody",
			LockInPeriod:     3,
			LockInExpiryDate: dayPtr(2028, time.December, 7),
			DividendPayable:  "yes",
			CustodianDetails: str("Supreme Court of Mauritius - Custody Division"),
		},
		Brokers: []domain.ApprovalsBroker{
			{
				BrokerName:     "Swan Securities Ltd",
				LicenseNumber:  str("FSC-SEM-001"),
				ContactPerson:  str("Raj Kumar"),
				Email:          str("raj.kumar@swansecurities.mu"),
				Phone:          str("+230 403 7000"),
				Address:        str("10 Intendance Street, Port Louis, Mauritius"),
				ApprovalStatus: "approved",
				ApprovedDate:   dayPtr(2025, time.November, 15),
			},
			{
				BrokerName:     "DTOS Capital Markets Ltd",
				LicenseNumber:  str("FSC-SEM-002"),
				ContactPerson:  str("Sophie Chen"),
				Email:          str("sophie.chen@dtos.mu"),
				Phone:          str("+230 202 9000"),
				Address:        str("5 President John Kennedy Street, Port Louis, Mauritius"),
				ApprovalStatus: "approved",
				ApprovedDate:   dayPtr(2025, time.November, 15),
			},
			{
				BrokerName:     "DMH Stockbroking Ltd",
				LicenseNumber:  str("FSC-SEM-003"),
				ContactPerson:  str("Marc Harel"),
				Email:          str("marc.harel@dmh.mu"),
				Phone:          str("+230 207 6400"),
				Address:        str("1 CyberCity, Ebene, Mauritius"),
				ApprovalStatus: "approved",
				ApprovedDate:   dayPtr(2025, time.November, 15),
			},
		},
		Settings: []domain.SystemSetting{
			{SettingKey: "APP_NAME", SettingValue: "SEMDEX", DataType: domain.SettingString, Description: str("Application name")},
			{SettingKey: "APP_VERSION", SettingValue: "1.0.0", DataType: domain.SettingString, Description: str("Current application version")},
			{SettingKey: "OFFLINE_MODE", SettingValue: "true", DataType: domain.SettingBoolean, Description: str("Enable offline functionality")},
			{SettingKey: "SHARE_PRICE_REFERENCE", SettingValue: "460.00", DataType: domain.SettingDecimal, Description: str("MCB Group Ltd reference share price")},
			{SettingKey: "CURRENCY", SettingValue: "MUR", DataType: domain.SettingString, Description: str("Primary currency")},
		},
	}
}
