package models

import "time"

// Call status values written by the telephony integration.
const (
	CallPending   = "pending"
	CallCompleted = "completed"
	CallFailed    = "failed"
)

// Call result values.
const (
	CallResultConfirmed = "confirmed"
	CallResultNoAnswer  = "no_answer"
	CallResultBusy      = "busy"
	CallResultFailed    = "failed"
)

// CallRecord is an outbound-call log entry. Rows are written by the
// external telephony integration; this service only reads them.
type CallRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CallID    string    `gorm:"column:call_id;size:64;uniqueIndex" json:"callId"`
	DriverID  uint      `gorm:"index" json:"driverId"`
	Phone     string    `gorm:"size:20;index" json:"phone"`
	CallTime  time.Time `gorm:"index" json:"callTime"`
	Status    string    `gorm:"size:16;index" json:"status"`
	Result    string    `gorm:"size:16" json:"result"`
	Duration  int       `json:"duration"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName keeps the original collection name.
func (CallRecord) TableName() string { return "call_records" }
