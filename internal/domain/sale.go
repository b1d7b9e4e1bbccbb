package domain

import "time"

// CourtApprovedSale describes the legal sale event (singleton).
// SaleFinalized <= PaymentWindow <= BankClearanceDeadline.
type CourtApprovedSale struct {
	ID                    uint      `gorm:"column:id;primaryKey" json:"id"`
	SharesSold            int64     `gorm:"column:shares_sold;not null" json:"sharesSold"`
	SettlementAmount      Amount    `gorm:"column:settlement_amount;type:decimal(15,2);not null" json:"settlementAmount"`
	SettlementPurpose     string    `gorm:"column:settlement_purpose;type:text;not null" json:"settlementPurpose"`
	SaleFinalized         time.Time `gorm:"column:sale_finalized;not null" json:"saleFinalized"`
	PaymentWindow         time.Time `gorm:"column:payment_window;not null" json:"paymentWindow"`
	BankClearanceDeadline time.Time `gorm:"column:bank_clearance_deadline;not null" json:"bankClearanceDeadline"`
	CourtOrderReference   *string   `gorm:"column:court_order_reference;type:varchar(100)" json:"courtOrderReference"`
	Status                string    `gorm:"column:status;type:varchar(50);default:'finalized'" json:"status"`
	CreatedAt             time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (CourtApprovedSale) TableName() string {
	return "court_approved_sale"
}

// SaleAllocation is the share count routed to one broker. The allocations of a sale
// are expected to add up to CourtApprovedSale.SharesSold; the schema does not enforce it.
type SaleAllocation struct {
	ID                   uint      `gorm:"column:id;primaryKey" json:"id"`
	EntityName           string    `gorm:"column:entity_name;type:varchar(255);not null" json:"entityName"`
	SharesAllocated      int64     `gorm:"column:shares_allocated;not null" json:"sharesAllocated"`
	AllocationPercentage Amount    `gorm:"column:allocation_percentage;type:decimal(5,2);not null" json:"allocationPercentage"`
	ContactEmail         *string   `gorm:"column:contact_email;type:varchar(255)" json:"contactEmail"`
	ContactPhone         *string   `gorm:"column:contact_phone;type:varchar(20)" json:"contactPhone"`
	Status               string    `gorm:"column:status;type:varchar(50);default:'finalized'" json:"status"`
	CreatedAt            time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (SaleAllocation) TableName() string {
	return "sale_allocation"
}
