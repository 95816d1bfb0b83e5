package model

type Group struct {
	GroupID int    `gorm:"column:group_id;primaryKey;autoIncrement"`
	Name    string `gorm:"column:name;type:text;not null"`
	Status  bool   `gorm:"column:status;not null;default:1"`
}

func (Group) TableName() string {
	return "groups"
}
