package dashboard

import (
	"semdex-backend/internal/domain"
)

// TransactionRow is a transaction with the owning user's name and email. Both are null
// when the row is unattributed or the user no longer exists.
type TransactionRow struct {
	domain.Transaction
	UserFullName *string `gorm:"column:user_full_name" json:"userFullName"`
	UserEmail    *string `gorm:"column:user_email" json:"userEmail"`
}

// Overview is the dashboard landing summary.
type Overview struct {
	TotalShares        int64            `json:"totalShares"`
	SharePrice         domain.Amount    `json:"sharePrice"`
	PortfolioValue     domain.Amount    `json:"portfolioValue"`
	Company            string           `json:"company"`
	Ticker             string           `json:"ticker"`
	Currency           string           `json:"currency"`
	SharesSold         int64            `json:"sharesSold"`
	SharesRemaining    int64            `json:"sharesRemaining"`
	RecentTransactions []TransactionRow `json:"recentTransactions"`
}

type ShareholderShare struct {
	UserID     uint   `json:"userId"`
	Name       string `json:"name"`
	Shares     int64  `json:"shares"`
	Percentage string `json:"percentage"`
}

type Shareholding struct {
	Combined  *domain.ShareHolding `json:"combined"`
	Breakdown []ShareholderShare   `json:"breakdown"`
}

// ValueLine is a share count valued at the holding's share price.
type ValueLine struct {
	Shares  int64  `json:"shares"`
	Value   string `json:"value"`
	Display string `json:"display"`
}

type Comparison struct {
	Sold     ValueLine `json:"sold"`
	Retained ValueLine `json:"retained"`
}

type SaleBreakdown struct {
	Sale                *domain.CourtApprovedSale `json:"sale"`
	Allocations         []domain.SaleAllocation   `json:"allocations"`
	Comparison          Comparison                `json:"comparison"`
	AllocatedShares     int64                     `json:"allocatedShares"`
	AllocationsBalanced bool                      `json:"allocationsBalanced"`
}

// ProjectedDividend is a historic dividend applied to the shares still held.
type ProjectedDividend struct {
	domain.DividendHistory
	ProjectedEntitlement domain.Amount `json:"projectedEntitlement"`
}

type Dividends struct {
	History         []domain.DividendHistory `json:"history"`
	Projected       []ProjectedDividend      `json:"projected"`
	RemainingShares int64                    `json:"remainingShares"`
}

// Setting is a system setting with its value decoded per data type.
type Setting struct {
	domain.SystemSetting
	Typed interface{} `json:"typedValue"`
}
