package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values stored on a driver record. Admins may do everything a
// driver may do; the reverse does not hold.
const (
	RoleDriver = "driver"
	RoleAdmin  = "admin"
)

// Status values. An inactive driver is soft-deleted: the record stays,
// but every guarded action rejects it.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Driver represents a fleet driver or an administrator. The record is
// created at registration with role fixed to driver; promoting to admin
// happens out-of-band. EmployeeID and Phone carry unique indexes — the
// database, not the handlers, is the final guarantor of uniqueness.
type Driver struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	OpenID        string     `gorm:"column:openid;size:64;index" json:"-"`
	Name          string     `gorm:"size:64;not null" json:"name"`
	EmployeeID    string     `gorm:"column:employee_id;size:20;uniqueIndex;not null" json:"employeeId"`
	Phone         string     `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Role          string     `gorm:"size:16;not null;default:driver" json:"role"`
	Status        string     `gorm:"size:16;index;not null;default:active" json:"status"`
	AvatarURL     string     `gorm:"size:512" json:"avatarUrl"`
	NickName      string     `gorm:"size:64" json:"nickName"`
	LastLoginTime *time.Time `json:"lastLoginTime"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"-"`
}

// TableName keeps the original collection name.
func (Driver) TableName() string { return "drivers" }

// IsActive reports whether the account may be used at all.
func (d *Driver) IsActive() bool { return d.Status == StatusActive }

// IsAdmin reports whether the account carries the admin role.
func (d *Driver) IsAdmin() bool { return d.Role == RoleAdmin }

// BeforeCreate hook ensures timestamps are set even when not provided.
func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (d *Driver) BeforeUpdate(tx *gorm.DB) error {
	d.UpdatedAt = time.Now()
	return nil
}
