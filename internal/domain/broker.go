package domain

import "time"

// ApprovalsBroker is a licensed broker that took part in the sale allocation.
type ApprovalsBroker struct {
	ID             uint       `gorm:"column:id;primaryKey" json:"id"`
	BrokerName     string     `gorm:"column:broker_name;type:varchar(255);not null" json:"brokerName"`
	LicenseNumber  *string    `gorm:"column:license_number;type:varchar(100)" json:"licenseNumber"`
	ContactPerson  *string    `gorm:"column:contact_person;type:varchar(255)" json:"contactPerson"`
	Email          *string    `gorm:"column:email;type:varchar(255)" json:"email"`
	Phone          *string    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Address        *string    `gorm:"column:address;type:text" json:"address"`
	ApprovalStatus string     `gorm:"column:approval_status;type:varchar(50);default:'approved'" json:"approvalStatus"`
	ApprovedDate   *time.Time `gorm:"column:approved_date" json:"approvedDate"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"createdAt"`
}

func (ApprovalsBroker) TableName() string {
	return "approvals_brokers"
}
