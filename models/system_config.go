package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// JSONValue stores an opaque JSON document as-is, so a value written by
// updateSystemConfig round-trips byte-identically through getSystemConfig.
type JSONValue []byte

// Value implements driver.Valuer.
func (v JSONValue) Value() (driver.Value, error) {
	if len(v) == 0 {
		return "null", nil
	}
	return string(v), nil
}

// Scan implements sql.Scanner.
func (v *JSONValue) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		*v = nil
	case []byte:
		*v = append((*v)[:0], s...)
	case string:
		*v = JSONValue(s)
	default:
		return fmt.Errorf("unsupported type %T for JSONValue", src)
	}
	return nil
}

// MarshalJSON returns the stored document unchanged.
func (v JSONValue) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

// UnmarshalJSON keeps the raw bytes.
func (v *JSONValue) UnmarshalJSON(b []byte) error {
	*v = append((*v)[:0], b...)
	return nil
}

// SystemConfig is a key-value row. Keys are unique; writes are
// last-write-wins upserts with no versioning.
type SystemConfig struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"column:config_key;size:64;uniqueIndex;not null" json:"key"`
	Value       JSONValue `gorm:"column:config_value;type:json" json:"value"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName keeps the original collection name.
func (SystemConfig) TableName() string { return "system_config" }

// Well-known config keys.
const (
	ConfigKeyCheckinTime = "checkin_time"
	ConfigKeyCheckinArea = "checkin_area"
	ConfigKeyAutoCall    = "auto_call_config"
)
