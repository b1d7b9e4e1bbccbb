package domain

import "time"

// DividendHistory is one distribution event. A year may carry a second dividend.
type DividendHistory struct {
	ID               uint       `gorm:"column:id;primaryKey" json:"id"`
	Year             int        `gorm:"column:year;not null;index" json:"year"`
	DividendPerShare Amount     `gorm:"column:dividend_per_share;type:decimal(10,2);not null" json:"dividendPerShare"`
	TotalEntitlement *Amount    `gorm:"column:total_entitlement;type:decimal(15,2)" json:"totalEntitlement"`
	PaymentDate      *time.Time `gorm:"column:payment_date" json:"paymentDate"`
	Status           string     `gorm:"column:status;type:varchar(50);default:'paid'" json:"status"`
	IsSecondDividend bool       `gorm:"column:is_second_dividend;default:false" json:"isSecondDividend"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"createdAt"`
}

func (DividendHistory) TableName() string {
	return "dividend_history"
}
