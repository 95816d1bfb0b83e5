package model

// Report is a saved report record, the only entity this service writes.
type Report struct {
	ReportID    int64  `gorm:"column:report_id;primaryKey;autoIncrement"`
	Title       string `gorm:"column:title;type:text;not null"`
	Description string `gorm:"column:description;type:text;not null;default:''"`
	CreatedBy   string `gorm:"column:created_by;type:text;not null;default:''"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
}

func (Report) TableName() string {
	return "reports"
}
