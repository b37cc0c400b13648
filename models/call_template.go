package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a JSON array of strings in a single column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	var b []byte
	switch s := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		b = s
	case string:
		b = []byte(s)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
	return json.Unmarshal(b, l)
}

// CallTemplate is static reference data for outbound calls.
type CallTemplate struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TemplateID string     `gorm:"column:template_id;size:64;uniqueIndex" json:"templateId"`
	Name       string     `gorm:"size:64" json:"name"`
	Content    string     `gorm:"size:512" json:"content"`
	Params     StringList `gorm:"type:json" json:"params"`
	IsActive   bool       `gorm:"index" json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// TableName keeps the original collection name.
func (CallTemplate) TableName() string { return "call_templates" }
