package fixture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gorm.io/gorm"

	"presstrack/internal/errs"
	"presstrack/internal/infrastructure/persistence/sqlite/model"
	"presstrack/internal/ports"
)

// Fixture is the TOML shape consumed by the seed command: reference
// registries plus an optional sample workload.
type Fixture struct {
	Groups           []GroupRow          `toml:"groups"`
	Projects         []ProjectRow        `toml:"projects"`
	Processes        []ProcessRow        `toml:"processes"`
	ProjectProcesses []ProjectProcessRow `toml:"project_processes"`
	Zones            []ZoneRow           `toml:"zones"`
	Teams            []TeamRow           `toml:"teams"`
	Users            []UserRow           `toml:"users"`
	Machines         []MachineRow        `toml:"machines"`
	Catches          []CatchRow          `toml:"catches"`
	Transactions     []TransactionRow    `toml:"transactions"`
	Events           []EventRow          `toml:"events"`
	Dispatches       []DispatchRow       `toml:"dispatches"`
}

type GroupRow struct {
	ID     int    `toml:"id"`
	Name   string `toml:"name"`
	Status bool   `toml:"status"`
}

type ProjectRow struct {
	ID      int    `toml:"id"`
	Name    string `toml:"name"`
	GroupID int    `toml:"group_id"`
	TypeID  int    `toml:"type_id"`
}

type ProcessRow struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
}

type ProjectProcessRow struct {
	ProjectID int `toml:"project_id"`
	ProcessID int `toml:"process_id"`
	Sequence  int `toml:"sequence"`
}

type ZoneRow struct {
	ID          int    `toml:"id"`
	ZoneNo      string `toml:"zone_no"`
	Description string `toml:"description"`
}

type TeamRow struct {
	ID      int    `toml:"id"`
	Name    string `toml:"name"`
	UserIDs []int  `toml:"user_ids"`
}

type UserRow struct {
	ID        int    `toml:"id"`
	UserName  string `toml:"user_name"`
	FirstName string `toml:"first_name"`
	LastName  string `toml:"last_name"`
}

type MachineRow struct {
	ID   int    `toml:"id"`
	Name string `toml:"name"`
}

type CatchRow struct {
	ID         int    `toml:"id"`
	ProjectID  int    `toml:"project_id"`
	LotNo      string `toml:"lot_no"`
	CatchNo    string `toml:"catch_no"`
	Course     string `toml:"course"`
	Subject    string `toml:"subject"`
	Paper      string `toml:"paper"`
	ExamDate   string `toml:"exam_date"`
	ExamTime   string `toml:"exam_time"`
	Quantity   int    `toml:"quantity"`
	Pages      int    `toml:"pages"`
	Status     int    `toml:"status"`
	ProcessIDs []int  `toml:"process_ids"`
}

type TransactionRow struct {
	ID        int64  `toml:"id"`
	CatchID   int    `toml:"catch_id"`
	ProjectID int    `toml:"project_id"`
	LotNo     string `toml:"lot_no"`
	ProcessID int    `toml:"process_id"`
	ZoneID    int    `toml:"zone_id"`
	MachineID int    `toml:"machine_id"`
	TeamIDs   []int  `toml:"team_ids"`
	Status    int    `toml:"status"`
}

type EventRow struct {
	TransactionID *int64    `toml:"transaction_id"`
	Event         string    `toml:"event"`
	Category      string    `toml:"category"`
	OldValue      string    `toml:"old_value"`
	NewValue      string    `toml:"new_value"`
	LoggedAt      time.Time `toml:"logged_at"`
	TriggeredBy   int       `toml:"triggered_by"`
}

type DispatchRow struct {
	ProjectID int        `toml:"project_id"`
	LotNo     string     `toml:"lot_no"`
	UpdatedAt *time.Time `toml:"updated_at"`
}

// Load reads and decodes a fixture file.
func Load(path string) (Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, errs.Wrapf(err, "read fixture %q", path)
	}

	var f Fixture
	if err := toml.Unmarshal(raw, &f); err != nil {
		return Fixture{}, errs.Wrapf(err, "decode fixture %q", path)
	}
	return f, nil
}

// Apply inserts the fixture rows. When the context carries a unit-of-work
// transaction the insert joins it, so a failing fixture leaves nothing
// behind.
func Apply(ctx context.Context, db *gorm.DB, f Fixture) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if db == nil {
		return errors.New("db is required")
	}

	conn := db.WithContext(ctx)
	if tx := ports.TxFromContext(ctx); tx != nil {
		gormTx, ok := tx.(*gorm.DB)
		if !ok || gormTx == nil {
			return fmt.Errorf("invalid tx in context: %T", tx)
		}
		conn = gormTx.WithContext(ctx)
	}

	for _, row := range f.Groups {
		if err := conn.Create(&model.Group{GroupID: row.ID, Name: row.Name, Status: row.Status}).Error; err != nil {
			return errs.Wrapf(err, "insert group %d", row.ID)
		}
	}
	for _, row := range f.Projects {
		if err := conn.Create(&model.Project{
			ProjectID: row.ID,
			Name:      row.Name,
			GroupID:   row.GroupID,
			TypeID:    row.TypeID,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert project %d", row.ID)
		}
	}
	for _, row := range f.Processes {
		if err := conn.Create(&model.Process{ProcessID: row.ID, Name: row.Name}).Error; err != nil {
			return errs.Wrapf(err, "insert process %d", row.ID)
		}
	}
	for _, row := range f.ProjectProcesses {
		if err := conn.Create(&model.ProjectProcess{
			ProjectID: row.ProjectID,
			ProcessID: row.ProcessID,
			Sequence:  row.Sequence,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert project process %d/%d", row.ProjectID, row.ProcessID)
		}
	}
	for _, row := range f.Zones {
		if err := conn.Create(&model.Zone{ZoneID: row.ID, ZoneNo: row.ZoneNo, Description: row.Description}).Error; err != nil {
			return errs.Wrapf(err, "insert zone %d", row.ID)
		}
	}
	for _, row := range f.Users {
		if err := conn.Create(&model.User{
			UserID:    row.ID,
			UserName:  row.UserName,
			FirstName: row.FirstName,
			LastName:  row.LastName,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert user %d", row.ID)
		}
	}
	for _, row := range f.Teams {
		if err := conn.Create(&model.Team{TeamID: row.ID, Name: row.Name, UserIDs: row.UserIDs}).Error; err != nil {
			return errs.Wrapf(err, "insert team %d", row.ID)
		}
	}
	for _, row := range f.Machines {
		if err := conn.Create(&model.Machine{MachineID: row.ID, Name: row.Name}).Error; err != nil {
			return errs.Wrapf(err, "insert machine %d", row.ID)
		}
	}
	for _, row := range f.Catches {
		if err := conn.Create(&model.QuantitySheet{
			QuantitySheetID: row.ID,
			ProjectID:       row.ProjectID,
			LotNo:           row.LotNo,
			CatchNo:         row.CatchNo,
			Course:          row.Course,
			Subject:         row.Subject,
			Paper:           row.Paper,
			ExamDate:        row.ExamDate,
			ExamTime:        row.ExamTime,
			Quantity:        row.Quantity,
			Pages:           row.Pages,
			Status:          row.Status,
			ProcessIDs:      row.ProcessIDs,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert catch %d", row.ID)
		}
	}
	for _, row := range f.Transactions {
		if err := conn.Create(&model.ProcessTransaction{
			TransactionID:   row.ID,
			QuantitySheetID: row.CatchID,
			ProjectID:       row.ProjectID,
			LotNo:           row.LotNo,
			ProcessID:       row.ProcessID,
			ZoneID:          row.ZoneID,
			MachineID:       row.MachineID,
			TeamIDs:         row.TeamIDs,
			Status:          row.Status,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert transaction %d", row.ID)
		}
	}
	for _, row := range f.Events {
		if err := conn.Create(&model.EventLog{
			TransactionID: row.TransactionID,
			Event:         row.Event,
			Category:      row.Category,
			OldValue:      row.OldValue,
			NewValue:      row.NewValue,
			LoggedAt:      row.LoggedAt,
			TriggeredBy:   row.TriggeredBy,
		}).Error; err != nil {
			return errs.Wrap(err, "insert event log entry")
		}
	}
	for _, row := range f.Dispatches {
		if err := conn.Create(&model.Dispatch{
			ProjectID: row.ProjectID,
			LotNo:     row.LotNo,
			UpdatedAt: row.UpdatedAt,
		}).Error; err != nil {
			return errs.Wrapf(err, "insert dispatch %d/%s", row.ProjectID, row.LotNo)
		}
	}

	return nil
}
