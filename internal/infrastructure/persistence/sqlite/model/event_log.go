package model

import "time"

// EventLog is the append-only audit trail. TransactionID is nullable:
// some entries describe non-transaction activity.
type EventLog struct {
	EventID       int64     `gorm:"column:event_id;primaryKey;autoIncrement"`
	TransactionID *int64    `gorm:"column:transaction_id;index"`
	Event         string    `gorm:"column:event;type:text;not null"`
	Category      string    `gorm:"column:category;type:text;not null;default:''"`
	OldValue      string    `gorm:"column:old_value;type:text;not null;default:''"`
	NewValue      string    `gorm:"column:new_value;type:text;not null;default:''"`
	LoggedAt      time.Time `gorm:"column:logged_at;not null;index"`
	TriggeredBy   int       `gorm:"column:triggered_by;not null;default:0"`
}

func (EventLog) TableName() string {
	return "event_logs"
}
