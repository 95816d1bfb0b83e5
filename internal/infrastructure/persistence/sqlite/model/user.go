package model

type User struct {
	UserID    int    `gorm:"column:user_id;primaryKey;autoIncrement"`
	UserName  string `gorm:"column:user_name;type:text;not null"`
	FirstName string `gorm:"column:first_name;type:text;not null;default:''"`
	LastName  string `gorm:"column:last_name;type:text;not null;default:''"`
}

func (User) TableName() string {
	return "users"
}
