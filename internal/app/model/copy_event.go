package model

import "time"

// Sentinel values stored in place of absent data, distinct from empty.
const (
	GuestEmail   = "Guest"
	NoUserGroup  = "N/A"
	UnknownOS    = "Unknown"
	UnknownAgent = "Unknown"
)

// CopyEvent is one recorded click of a copy button. Rows are immutable once
// stored; the table supports only insert and bulk delete.
type CopyEvent struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	Time            time.Time `gorm:"index;not null" json:"time"`
	TargetID        string    `gorm:"size:255;index;not null" json:"target_id"`
	PageURL         string    `gorm:"type:text;not null" json:"page_url"`
	UserEmail       string    `gorm:"size:255;not null" json:"user_email"`
	UserIPHash      string    `gorm:"size:64;not null" json:"user_ip_hash"`
	UserAgent       string    `gorm:"type:text;not null" json:"user_agent"`
	UserGroup       string    `gorm:"size:255;not null;default:N/A" json:"user_group"`
	OperatingSystem string    `gorm:"size:100;index;not null;default:Unknown" json:"operating_system"`
}

func (CopyEvent) TableName() string {
	return "copy_events"
}

const (
	CopyStreamName     = "COPYCLICKS"
	CopyStreamSubject  = "copyclicks.events"
	CopyConsumerName   = "copy-logger"
	CopyStreamMaxBytes = 1024 * 1024 * 100 // 100MB
)
