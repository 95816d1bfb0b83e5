package model

// QuantitySheet is one catch: a unit of production work belonging to
// exactly one project and lot.
type QuantitySheet struct {
	QuantitySheetID int    `gorm:"column:quantity_sheet_id;primaryKey;autoIncrement"`
	ProjectID       int    `gorm:"column:project_id;not null;index"`
	LotNo           string `gorm:"column:lot_no;type:text;not null;default:'';index"`
	CatchNo         string `gorm:"column:catch_no;type:text;not null;index"`
	Course          string `gorm:"column:course;type:text;not null;default:''"`
	Subject         string `gorm:"column:subject;type:text;not null;default:''"`
	Paper           string `gorm:"column:paper;type:text;not null;default:''"`
	ExamDate        string `gorm:"column:exam_date;type:text;not null;default:''"`
	ExamTime        string `gorm:"column:exam_time;type:text;not null;default:''"`
	InnerEnvelope   string `gorm:"column:inner_envelope;type:text;not null;default:''"`
	OuterEnvelope   string `gorm:"column:outer_envelope;type:text;not null;default:''"`
	Quantity        int    `gorm:"column:quantity;not null;default:0"`
	Pages           int    `gorm:"column:pages;not null;default:0"`
	Status          int    `gorm:"column:status;not null;default:0"`
	ProcessIDs      []int  `gorm:"column:process_ids;type:text;serializer:json"`
}

func (QuantitySheet) TableName() string {
	return "quantity_sheets"
}
