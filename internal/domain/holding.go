package domain

import "time"

// ShareHolding is the combined holding of both users (singleton).
type ShareHolding struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"id"`
	TotalShares    int64     `gorm:"column:total_shares;not null" json:"totalShares"`
	SharePrice     Amount    `gorm:"column:share_price;type:decimal(10,2);not null" json:"sharePrice"`
	PortfolioValue Amount    `gorm:"column:portfolio_value;type:decimal(15,2);not null" json:"portfolioValue"`
	Company        string    `gorm:"column:company;type:varchar(255);not null" json:"company"`
	Ticker         string    `gorm:"column:ticker;type:varchar(10);not null" json:"ticker"`
	Currency       string    `gorm:"column:currency;type:varchar(3);default:'MUR'" json:"currency"`
	LastUpdated    time.Time `gorm:"column:last_updated;autoCreateTime" json:"lastUpdated"`
}

func (ShareHolding) TableName() string {
	return "share_holding"
}

// RemainingShares is what is left after the court-approved sale, held in custody (singleton).
type RemainingShares struct {
	ID               uint       `gorm:"column:id;primaryKey" json:"id"`
	TotalShares      int64      `gorm:"column:total_shares;not null" json:"totalShares"`
	Status           string     `gorm:"column:status;type:varchar(50);default:'court_custody'" json:"status"`
	LockInPeriod     int        `gorm:"column:lock_in_period;not null" json:"lockInPeriod"`
	LockInExpiryDate *time.Time `gorm:"column:lock_in_expiry_date" json:"lockInExpiryDate"`
	DividendPayable  string     `gorm:"column:dividend_payable;type:varchar(3);default:'yes'" json:"dividendPayable"`
	CustodianDetails *string    `gorm:"column:custodian_details;type:text" json:"custodianDetails"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

func (RemainingShares) TableName() string {
	return "remaining_shares"
}
