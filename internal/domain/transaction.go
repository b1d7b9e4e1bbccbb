package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transaction is an append-only, user-attributed activity row. UserID is a plain reference
// to users.id without a foreign key so rows outlive the user they point at.
type Transaction struct {
	ID              uint           `gorm:"column:id;primaryKey" json:"id"`
	UserID          *uint          `gorm:"column:user_id;index" json:"userId"`
	TransactionType string         `gorm:"column:transaction_type;type:varchar(100);not null" json:"transactionType"`
	Description     string         `gorm:"column:description;type:text;not null" json:"description"`
	Amount          *Amount        `gorm:"column:amount;type:decimal(15,2)" json:"amount"`
	SharesAffected  *int64         `gorm:"column:shares_affected" json:"sharesAffected"`
	IPAddress       *string        `gorm:"column:ip_address;type:varchar(45)" json:"ipAddress"`
	DeviceInfo      datatypes.JSON `gorm:"column:device_info;type:text" json:"deviceInfo"`
	Timestamp       time.Time      `gorm:"column:timestamp;index" json:"timestamp"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate stamps the row when the caller did not.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	return nil
}

// AuditLog records system activity per user. Append-only, same reference rule as Transaction.
type AuditLog struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID    *uint     `gorm:"column:user_id;index" json:"userId"`
	Action    string    `gorm:"column:action;type:varchar(100);not null" json:"action"`
	Module    string    `gorm:"column:module;type:varchar(100);not null" json:"module"`
	Details   *string   `gorm:"column:details;type:text" json:"details"`
	IPAddress *string   `gorm:"column:ip_address;type:varchar(45)" json:"ipAddress"`
	UserAgent *string   `gorm:"column:user_agent;type:text" json:"userAgent"`
	Timestamp time.Time `gorm:"column:timestamp;index" json:"timestamp"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}
