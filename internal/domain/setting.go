package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Setting data types declared in system_settings.data_type.
const (
	SettingString  = "string"
	SettingBoolean = "boolean"
	SettingDecimal = "decimal"
	SettingInteger = "integer"
)

// SystemSetting is a key-unique configuration row.
type SystemSetting struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	SettingKey   string    `gorm:"column:setting_key;type:varchar(100);not null;uniqueIndex" json:"settingKey"`
	SettingValue string    `gorm:"column:setting_value;type:text;not null" json:"settingValue"`
	DataType     string    `gorm:"column:data_type;type:varchar(50);default:'string'" json:"dataType"`
	Description  *string   `gorm:"column:description;type:text" json:"description"`
	IsEditable   bool      `gorm:"column:is_editable;default:false" json:"isEditable"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updatedAt"`
	UpdatedBy    *uint     `gorm:"column:updated_by;index" json:"updatedBy"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}

// TypedValue decodes SettingValue according to DataType. Values that do not parse
// are returned as the raw string.
func (s SystemSetting) TypedValue() interface{} {
	raw := strings.TrimSpace(s.SettingValue)
	switch s.DataType {
	case SettingBoolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case SettingDecimal:
		if d, err := decimal.NewFromString(raw); err == nil {
			return d.StringFixed(2)
		}
	case SettingInteger:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	}
	return s.SettingValue
}
