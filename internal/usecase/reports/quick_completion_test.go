package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"presstrack/internal/infrastructure/persistence/sqlite/model"
)

func TestQuickCompletionRequiresWindow(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.QuickCompletion(context.Background(), QuickCompletionInput{})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("QuickCompletion() error = %v, want ValidationError", err)
	}
	if validation.Message != "Please provide either 'date' or both 'startDate' and 'endDate'." {
		t.Fatalf("unexpected message: %q", validation.Message)
	}
}

func TestQuickCompletionPairsBothDirections(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	mustCreate(t, db,
		&model.Group{GroupID: 1, Name: "North", Status: true},
		&model.Project{ProjectID: 10, Name: "A", GroupID: 1, TypeID: 1},
		&model.QuantitySheet{QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", CatchNo: "C-1", Quantity: 100, Status: 1},
		&model.ProcessTransaction{TransactionID: 1, QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", ProcessID: 3, Status: 2},
		&model.EventLog{EventID: 1, TransactionID: int64Ptr(1), Event: "Status updated", NewValue: "1", LoggedAt: base},
		&model.EventLog{EventID: 2, TransactionID: int64Ptr(1), Event: "Status updated", NewValue: "2", LoggedAt: base.Add(2 * time.Minute)},
		// Beyond the 5 minute gap from both others; pairs with neither.
		&model.EventLog{EventID: 3, TransactionID: int64Ptr(1), Event: "Status updated", NewValue: "2", LoggedAt: base.Add(30 * time.Minute)},
	)

	result, err := svc.QuickCompletion(ctx, QuickCompletionInput{
		DateWindowInput: DateWindowInput{Date: "10-03-2026"},
	})
	if err != nil {
		t.Fatalf("QuickCompletion() error = %v", err)
	}

	if result.TotalItems != 2 {
		t.Fatalf("TotalItems = %d, want 2 (both orientations)", result.TotalItems)
	}
	a, b := result.Items[0], result.Items[1]
	if a.EventIDA == a.EventIDB {
		t.Fatalf("self pair emitted: %+v", a)
	}
	if a.EventIDA != b.EventIDB || a.EventIDB != b.EventIDA {
		t.Fatalf("items are not mirrored: %+v / %+v", a, b)
	}
	if a.TimeDifferenceMinutes != 2 {
		t.Fatalf("TimeDifferenceMinutes = %d, want 2", a.TimeDifferenceMinutes)
	}
	if a.ProjectID == nil || *a.ProjectID != 10 || a.GroupID == nil || *a.GroupID != 1 {
		t.Fatalf("joined context missing: %+v", a)
	}
	if a.CatchNo == nil || *a.CatchNo != "C-1" || a.Quantity == nil || *a.Quantity != 100 {
		t.Fatalf("catch context missing: %+v", a)
	}
}

func TestQuickCompletionNilTransactionIDsShareBucket(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	mustCreate(t, db,
		&model.EventLog{EventID: 1, Event: "Status updated", LoggedAt: base},
		&model.EventLog{EventID: 2, Event: "Status updated", LoggedAt: base.Add(time.Minute)},
	)

	result, err := svc.QuickCompletion(ctx, QuickCompletionInput{
		DateWindowInput: DateWindowInput{Date: "10-03-2026"},
	})
	if err != nil {
		t.Fatalf("QuickCompletion() error = %v", err)
	}
	if result.TotalItems != 2 {
		t.Fatalf("TotalItems = %d, want 2", result.TotalItems)
	}
	for _, item := range result.Items {
		if item.TransactionID != nil {
			t.Fatalf("TransactionID = %v, want nil", item.TransactionID)
		}
		if item.ProjectID != nil || item.CatchNo != nil {
			t.Fatalf("unexpected joined context on untagged event: %+v", item)
		}
	}
}

func TestQuickCompletionPagination(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	// Three events within the gap produce six ordered pairs.
	mustCreate(t, db,
		&model.EventLog{EventID: 1, Event: "Status updated", LoggedAt: base},
		&model.EventLog{EventID: 2, Event: "Status updated", LoggedAt: base.Add(time.Minute)},
		&model.EventLog{EventID: 3, Event: "Status updated", LoggedAt: base.Add(2 * time.Minute)},
	)

	result, err := svc.QuickCompletion(ctx, QuickCompletionInput{
		DateWindowInput: DateWindowInput{StartDate: "10-03-2026", EndDate: "11-03-2026"},
		Page:            2,
		PageSize:        4,
	})
	if err != nil {
		t.Fatalf("QuickCompletion() error = %v", err)
	}
	if result.TotalItems != 6 || result.TotalPages != 2 {
		t.Fatalf("TotalItems = %d, TotalPages = %d, want 6, 2", result.TotalItems, result.TotalPages)
	}
	if len(result.Items) != 2 {
		t.Fatalf("page 2 items = %d, want 2", len(result.Items))
	}
	if result.StartDate != "10-03-2026" || result.EndDate != "11-03-2026" {
		t.Fatalf("echoed window = %q..%q", result.StartDate, result.EndDate)
	}
}
