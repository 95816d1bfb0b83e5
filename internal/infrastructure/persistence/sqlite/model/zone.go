package model

type Zone struct {
	ZoneID      int    `gorm:"column:zone_id;primaryKey;autoIncrement"`
	ZoneNo      string `gorm:"column:zone_no;type:text;not null"`
	Description string `gorm:"column:description;type:text;not null;default:''"`
}

func (Zone) TableName() string {
	return "zones"
}
