package models

import "time"

// Checkin status values.
const (
	CheckinNormal = "normal"
	CheckinLate   = "late"
	CheckinMissed = "missed"
)

// DateLayout is the calendar-day key used for the one-checkin-per-day rule.
const DateLayout = "2006-01-02"

// Location is the coordinate captured at check-in time.
type Location struct {
	Latitude  float64 `gorm:"column:latitude" json:"latitude"`
	Longitude float64 `gorm:"column:longitude" json:"longitude"`
	Address   string  `gorm:"column:address;size:255" json:"address"`
}

// Checkin is one driver's attendance record for one calendar day.
// The composite unique index on (driver_id, date) is what actually
// enforces at-most-one-per-day: the handler's prior read is only a
// courtesy check and can race with a concurrent insert.
type Checkin struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DriverID    uint      `gorm:"not null;uniqueIndex:uniq_checkins_driver_date,priority:1" json:"driverId"`
	DriverName  string    `gorm:"size:64" json:"driverName"`
	EmployeeID  string    `gorm:"column:employee_id;size:20;index" json:"employeeId"`
	CheckinTime time.Time `gorm:"index;not null" json:"checkinTime"`
	Location    Location  `gorm:"embedded" json:"location"`
	Status      string    `gorm:"size:16;index;not null" json:"status"`
	Date        string    `gorm:"size:10;not null;uniqueIndex:uniq_checkins_driver_date,priority:2" json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName keeps the original collection name.
func (Checkin) TableName() string { return "checkins" }
