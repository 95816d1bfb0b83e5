package model

// ProjectProcess defines one step of a project's ordered workflow.
type ProjectProcess struct {
	ID        int64 `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID int   `gorm:"column:project_id;not null;index"`
	ProcessID int   `gorm:"column:process_id;not null"`
	Sequence  int   `gorm:"column:sequence;not null"`
}

func (ProjectProcess) TableName() string {
	return "project_processes"
}
