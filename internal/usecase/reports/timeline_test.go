package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"presstrack/internal/infrastructure/persistence/sqlite/model"
)

func TestProcessTimelineUnknownCatch(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.ProcessTimeline(context.Background(), "missing")
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("ProcessTimeline() error = %v, want ErrNoData", err)
	}
}

func TestProcessTimelineOrdersBySequenceAndSkipsIdleProcesses(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	mustCreate(t, db,
		&model.Project{ProjectID: 10, Name: "Spring", GroupID: 1, TypeID: 1},
		&model.QuantitySheet{QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", CatchNo: "C-1", Status: 1},
		// Sequence deliberately reversed from process-id order.
		&model.ProjectProcess{ProjectID: 10, ProcessID: 7, Sequence: 1},
		&model.ProjectProcess{ProjectID: 10, ProcessID: 3, Sequence: 2},
		&model.ProjectProcess{ProjectID: 10, ProcessID: 12, Sequence: 3},
		&model.Zone{ZoneID: 1, ZoneNo: "Z-01", Description: "North wing"},
		&model.Machine{MachineID: 1, Name: "Heidelberg XL"},
		&model.User{UserID: 1, UserName: "asharma", FirstName: "Anita", LastName: "Sharma"},
		&model.User{UserID: 2, UserName: "rverma", FirstName: "Rohit", LastName: "Verma"},
		&model.ProcessTransaction{TransactionID: 1, QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", ProcessID: 7, ZoneID: 1, MachineID: 1, TeamIDs: []int{2, 1}, Status: 2},
		&model.ProcessTransaction{TransactionID: 2, QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", ProcessID: 3, ZoneID: 9, MachineID: 9, Status: 1},
		&model.EventLog{EventID: 1, TransactionID: int64Ptr(1), Event: "Stage assigned", LoggedAt: base.Add(-time.Hour), TriggeredBy: 2},
		&model.EventLog{EventID: 2, TransactionID: int64Ptr(1), Event: "Status updated", NewValue: "1", LoggedAt: base, TriggeredBy: 1},
		&model.EventLog{EventID: 3, TransactionID: int64Ptr(1), Event: "Status updated", NewValue: "2", LoggedAt: base.Add(time.Hour), TriggeredBy: 1},
	)

	entries, err := svc.ProcessTimeline(ctx, "C-1")
	if err != nil {
		t.Fatalf("ProcessTimeline() error = %v", err)
	}
	// Process 12 has no transactions and is skipped.
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].ProcessID != 7 || entries[1].ProcessID != 3 {
		t.Fatalf("entry order = [%d %d], want [7 3]", entries[0].ProcessID, entries[1].ProcessID)
	}

	txn := entries[0].Transactions[0]
	if txn.ZoneName == nil || *txn.ZoneName != "Z-01" {
		t.Fatalf("ZoneName = %v, want Z-01", txn.ZoneName)
	}
	if txn.MachineName == nil || *txn.MachineName != "Heidelberg XL" {
		t.Fatalf("MachineName = %v", txn.MachineName)
	}
	// Registry order, not the transaction's id order.
	if len(txn.TeamMembers) != 2 || txn.TeamMembers[0].FullName != "Anita Sharma" || txn.TeamMembers[1].FullName != "Rohit Verma" {
		t.Fatalf("TeamMembers = %+v", txn.TeamMembers)
	}
	// First event of any kind, not the first status update.
	if txn.Supervisor == nil || *txn.Supervisor != "Rohit Verma" {
		t.Fatalf("Supervisor = %v, want Rohit Verma", txn.Supervisor)
	}
	if txn.StartTime == nil || !txn.StartTime.Equal(base) {
		t.Fatalf("StartTime = %v, want %v", txn.StartTime, base)
	}
	if txn.EndTime == nil || !txn.EndTime.Equal(base.Add(time.Hour)) {
		t.Fatalf("EndTime = %v, want %v", txn.EndTime, base.Add(time.Hour))
	}

	// Unresolvable references and an empty event log degrade to null.
	idle := entries[1].Transactions[0]
	if idle.ZoneName != nil || idle.MachineName != nil || idle.Supervisor != nil {
		t.Fatalf("expected null resolution, got %+v", idle)
	}
	if idle.StartTime != nil || idle.EndTime != nil {
		t.Fatalf("expected null times, got %+v", idle)
	}
	if len(idle.TeamMembers) != 0 {
		t.Fatalf("TeamMembers = %+v, want empty", idle.TeamMembers)
	}
}
