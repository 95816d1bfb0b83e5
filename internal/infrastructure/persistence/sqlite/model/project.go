package model

type Project struct {
	ProjectID int    `gorm:"column:project_id;primaryKey;autoIncrement"`
	Name      string `gorm:"column:name;type:text;not null"`
	GroupID   int    `gorm:"column:group_id;not null;index"`
	TypeID    int    `gorm:"column:type_id;not null;default:0"`
}

func (Project) TableName() string {
	return "projects"
}
