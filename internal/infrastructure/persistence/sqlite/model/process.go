package model

type Process struct {
	ProcessID int    `gorm:"column:process_id;primaryKey;autoIncrement"`
	Name      string `gorm:"column:name;type:text;not null"`
}

func (Process) TableName() string {
	return "processes"
}
