package model

type Team struct {
	TeamID  int    `gorm:"column:team_id;primaryKey;autoIncrement"`
	Name    string `gorm:"column:name;type:text;not null"`
	UserIDs []int  `gorm:"column:user_ids;type:text;serializer:json"`
}

func (Team) TableName() string {
	return "teams"
}
