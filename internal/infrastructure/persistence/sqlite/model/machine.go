package model

type Machine struct {
	MachineID int    `gorm:"column:machine_id;primaryKey;autoIncrement"`
	Name      string `gorm:"column:name;type:text;not null"`
}

func (Machine) TableName() string {
	return "machines"
}
