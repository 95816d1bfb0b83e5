package model

// ProcessTransaction records one execution attempt of a process against a
// catch. LotNo is denormalized from the quantity sheet so volume reports
// can group without the extra join.
type ProcessTransaction struct {
	TransactionID   int64  `gorm:"column:transaction_id;primaryKey;autoIncrement"`
	QuantitySheetID int    `gorm:"column:quantity_sheet_id;not null;index"`
	ProjectID       int    `gorm:"column:project_id;not null;index"`
	LotNo           string `gorm:"column:lot_no;type:text;not null;default:''"`
	ProcessID       int    `gorm:"column:process_id;not null"`
	ZoneID          int    `gorm:"column:zone_id;not null;default:0"`
	MachineID       int    `gorm:"column:machine_id;not null;default:0"`
	TeamIDs         []int  `gorm:"column:team_ids;type:text;serializer:json"`
	Status          int    `gorm:"column:status;not null;default:0"`
}

func (ProcessTransaction) TableName() string {
	return "process_transactions"
}
