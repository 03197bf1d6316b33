package models

import (
	"time"
)

// Wire formats for dates and timestamps. Dates carry no time component;
// timestamps are rendered in UTC.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// ProjectOptions is the set of valid project values, in display order.
var ProjectOptions = []string{
	"Firma A",
	"Firma B",
	"Firma C",
	"Internal",
	"Resmî Tatil",
	"İzin",
}

// Hours bounds for a single timesheet entry (inclusive).
const (
	MinHours = 1.0
	MaxHours = 8.0
)

// Timesheet model - one entry of hours worked on a project on a given day
type Timesheet struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Date        time.Time `gorm:"not null" json:"-"`
	Project     string    `gorm:"not null" json:"project"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Description string    `gorm:"not null" json:"description"`
	CreatedAt   time.Time `json:"-"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

// ValidProject reports whether project is one of the allowed options.
// Comparison is exact and case-sensitive.
func ValidProject(project string) bool {
	for _, p := range ProjectOptions {
		if p == project {
			return true
		}
	}
	return false
}
