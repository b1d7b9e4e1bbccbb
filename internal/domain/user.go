package domain

import "time"

// User is one of the two portal identities. Rows are created by the seeder only.
type User struct {
	ID          uint       `gorm:"column:id;primaryKey" json:"id"`
	Email       string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone       string     `gorm:"column:phone;type:varchar(20);not null;uniqueIndex" json:"phone"`
	FullName    string     `gorm:"column:full_name;type:varchar(255);not null" json:"fullName"`
	SharesOwned int64      `gorm:"column:shares_owned;not null" json:"sharesOwned"`
	LoginMethod string     `gorm:"column:login_method;type:varchar(50);default:'hardcoded'" json:"loginMethod"`
	LastLogin   *time.Time `gorm:"column:last_login" json:"lastLogin"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"createdAt"`
	IsActive    bool       `gorm:"column:is_active;default:true" json:"isActive"`
}

func (User) TableName() string {
	return "users"
}
