package models

import "time"

// OperationLog is an audit entry recorded by the logOperation action.
type OperationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LogID     string    `gorm:"column:log_id;size:36;uniqueIndex" json:"logId"`
	UserID    uint      `gorm:"index" json:"userId"`
	UserName  string    `gorm:"size:64" json:"userName"`
	UserRole  string    `gorm:"size:16" json:"userRole"`
	Operation string    `gorm:"size:64;index" json:"operation"`
	Details   JSONValue `gorm:"type:json" json:"details"`
	IP        string    `gorm:"size:45" json:"ip"`
	Page      string    `gorm:"size:64" json:"page"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName keeps the snake_case convention of the other collections.
func (OperationLog) TableName() string { return "operation_logs" }
