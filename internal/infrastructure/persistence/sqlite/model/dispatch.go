package model

import "time"

// Dispatch marks a (project, lot) pair as shipped. Presence of a row is
// the dispatch signal; UpdatedAt may be unset.
type Dispatch struct {
	DispatchID int64      `gorm:"column:dispatch_id;primaryKey;autoIncrement"`
	ProjectID  int        `gorm:"column:project_id;not null;index"`
	LotNo      string     `gorm:"column:lot_no;type:text;not null"`
	UpdatedAt  *time.Time `gorm:"column:updated_at"`
}

func (Dispatch) TableName() string {
	return "dispatches"
}
