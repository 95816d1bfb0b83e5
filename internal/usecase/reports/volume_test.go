package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"presstrack/internal/infrastructure/persistence/sqlite/model"
)

func TestDailyProductionSingleDay(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	mustCreate(t, db,
		&model.Group{GroupID: 1, Name: "North Region", Status: true},
		&model.Project{ProjectID: 10, Name: "Spring Session", GroupID: 1, TypeID: 1},
		&model.QuantitySheet{QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", CatchNo: "C-1", ExamDate: "15-03-2026", Quantity: 500, Status: 1},
		&model.QuantitySheet{QuantitySheetID: 101, ProjectID: 10, LotNo: "L1", CatchNo: "C-2", ExamDate: "18-03-2026", Quantity: 450, Status: 1},
		&model.ProcessTransaction{TransactionID: 1, QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", ProcessID: 3, Status: 2},
		&model.ProcessTransaction{TransactionID: 2, QuantitySheetID: 101, ProjectID: 10, LotNo: "L1", ProcessID: 3, Status: 2},
		&model.EventLog{EventID: 1, TransactionID: int64Ptr(1), Event: "Status updated", NewValue: "2", LoggedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		&model.EventLog{EventID: 2, TransactionID: int64Ptr(2), Event: "Status updated", NewValue: "2", LoggedAt: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)},
		// Outside the window; must not count.
		&model.EventLog{EventID: 3, TransactionID: int64Ptr(1), Event: "Status updated", NewValue: "2", LoggedAt: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)},
	)

	rows, err := svc.DailyProduction(ctx, DateWindowInput{Date: "10-03-2026"})
	if err != nil {
		t.Fatalf("DailyProduction() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("DailyProduction() rows = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.GroupName != "North Region" || row.ProjectID != 10 || row.LotNo != "L1" {
		t.Fatalf("unexpected row identity: %+v", row)
	}
	if row.CountOfCatches != 2 || row.TotalQuantity != 950 {
		t.Fatalf("unexpected totals: %+v", row)
	}
	// To carries the minimum exam date, From the maximum.
	if row.To == nil || *row.To != "15-03-2026" {
		t.Fatalf("To = %v, want 15-03-2026", row.To)
	}
	if row.From == nil || *row.From != "18-03-2026" {
		t.Fatalf("From = %v, want 18-03-2026", row.From)
	}
}

func TestDailyProductionUnknownGroupName(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	mustCreate(t, db,
		&model.Project{ProjectID: 10, Name: "Orphan", GroupID: 99, TypeID: 1},
		&model.QuantitySheet{QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", CatchNo: "C-1", ExamDate: "bad date", Quantity: 100, Status: 1},
		&model.ProcessTransaction{TransactionID: 1, QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", ProcessID: 3, Status: 2},
		&model.EventLog{EventID: 1, TransactionID: int64Ptr(1), Event: "Status updated", NewValue: "2", LoggedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
	)

	rows, err := svc.DailyProduction(ctx, DateWindowInput{})
	if err != nil {
		t.Fatalf("DailyProduction() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].GroupName != "Unknown" {
		t.Fatalf("GroupName = %q, want Unknown", rows[0].GroupName)
	}
	// No parseable exam date: both bounds stay null.
	if rows[0].To != nil || rows[0].From != nil {
		t.Fatalf("expected null date bounds, got To=%v From=%v", rows[0].To, rows[0].From)
	}
}

func TestDailyProductionInvalidDate(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.DailyProduction(context.Background(), DateWindowInput{Date: "2026-03-10"})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("DailyProduction() error = %v, want ValidationError", err)
	}
	if validation.Message != "Invalid date format. Use dd-MM-yyyy." {
		t.Fatalf("unexpected message: %q", validation.Message)
	}
}

func TestDailyProductionSummaryMatchesDetail(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	mustCreate(t, db,
		&model.Group{GroupID: 1, Name: "North", Status: true},
		&model.Group{GroupID: 2, Name: "South", Status: true},
		&model.Project{ProjectID: 10, Name: "A", GroupID: 1, TypeID: 1},
		&model.Project{ProjectID: 11, Name: "B", GroupID: 2, TypeID: 1},
		&model.QuantitySheet{QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", CatchNo: "C-1", Quantity: 100, Status: 1},
		&model.QuantitySheet{QuantitySheetID: 101, ProjectID: 11, LotNo: "L2", CatchNo: "C-2", Quantity: 200, Status: 1},
		&model.ProcessTransaction{TransactionID: 1, QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", ProcessID: 3, Status: 2},
		&model.ProcessTransaction{TransactionID: 2, QuantitySheetID: 101, ProjectID: 11, LotNo: "L2", ProcessID: 3, Status: 2},
		&model.EventLog{EventID: 1, TransactionID: int64Ptr(1), Event: "Status updated", NewValue: "2", LoggedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		&model.EventLog{EventID: 2, TransactionID: int64Ptr(2), Event: "Status updated", NewValue: "2", LoggedAt: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)},
	)

	detail, err := svc.DailyProduction(ctx, DateWindowInput{Date: "10-03-2026"})
	if err != nil {
		t.Fatalf("DailyProduction() error = %v", err)
	}
	summary, err := svc.DailyProductionSummary(ctx, DateWindowInput{Date: "10-03-2026"})
	if err != nil {
		t.Fatalf("DailyProductionSummary() error = %v", err)
	}

	if summary.TotalLots != len(detail) {
		t.Fatalf("TotalLots = %d, want %d", summary.TotalLots, len(detail))
	}
	wantCatches, wantQuantity := 0, 0
	for _, row := range detail {
		wantCatches += row.CountOfCatches
		wantQuantity += row.TotalQuantity
	}
	if summary.TotalCountOfCatches != wantCatches || summary.TotalQuantity != wantQuantity {
		t.Fatalf("summary totals %+v do not match detail (%d catches, %d quantity)", summary, wantCatches, wantQuantity)
	}
	if summary.TotalGroups != 2 || summary.TotalProjects != 2 {
		t.Fatalf("summary distincts: %+v", summary)
	}
}

func TestDailyProductionSummaryServedFromCache(t *testing.T) {
	svc, cache, db := setupServiceWithDB(t)
	ctx := context.Background()

	mustCreate(t, db,
		&model.Project{ProjectID: 10, Name: "A", GroupID: 1, TypeID: 1},
		&model.QuantitySheet{QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", CatchNo: "C-1", Quantity: 100, Status: 1},
		&model.ProcessTransaction{TransactionID: 1, QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", ProcessID: 3, Status: 2},
		&model.EventLog{EventID: 1, TransactionID: int64Ptr(1), Event: "Status updated", NewValue: "2", LoggedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
	)

	first, err := svc.DailyProductionSummary(ctx, DateWindowInput{Date: "10-03-2026"})
	if err != nil {
		t.Fatalf("DailyProductionSummary() error = %v", err)
	}
	if len(cache.data) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(cache.data))
	}

	// A new completion after caching is invisible until the TTL lapses.
	mustCreate(t, db,
		&model.QuantitySheet{QuantitySheetID: 101, ProjectID: 10, LotNo: "L9", CatchNo: "C-9", Quantity: 50, Status: 1},
		&model.ProcessTransaction{TransactionID: 2, QuantitySheetID: 101, ProjectID: 10, LotNo: "L9", ProcessID: 3, Status: 2},
		&model.EventLog{EventID: 2, TransactionID: int64Ptr(2), Event: "Status updated", NewValue: "2", LoggedAt: time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)},
	)

	second, err := svc.DailyProductionSummary(ctx, DateWindowInput{Date: "10-03-2026"})
	if err != nil {
		t.Fatalf("DailyProductionSummary() error = %v", err)
	}
	if second != first {
		t.Fatalf("cached summary changed: %+v vs %+v", second, first)
	}
}
