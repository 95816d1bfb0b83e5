package reports

import (
	"context"
	"errors"
	"testing"

	"presstrack/internal/infrastructure/persistence/sqlite/model"
)

func TestSearchEmptyQuery(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Search(context.Background(), SearchInput{Query: "   "})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Search() error = %v, want ValidationError", err)
	}
	if validation.Message != "Search query cannot be empty." {
		t.Fatalf("unexpected message: %q", validation.Message)
	}
}

func TestSearchMatchedColumnPriority(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	mustCreate(t, db,
		&model.QuantitySheet{QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", CatchNo: "PH-1", Subject: "History"},
		&model.QuantitySheet{QuantitySheetID: 101, ProjectID: 10, LotNo: "L1", CatchNo: "C-2", Subject: "PHysics"},
		&model.QuantitySheet{QuantitySheetID: 102, ProjectID: 10, LotNo: "L2", CatchNo: "C-3", Course: "PHD Prep"},
		&model.QuantitySheet{QuantitySheetID: 103, ProjectID: 10, LotNo: "L2", CatchNo: "C-4", Paper: "PHonetics"},
	)

	result, err := svc.Search(ctx, SearchInput{Query: "PH"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.TotalRecords != 4 || len(result.Results) != 4 {
		t.Fatalf("TotalRecords = %d, Results = %d", result.TotalRecords, len(result.Results))
	}

	wantColumns := []string{"CatchNo", "Subject", "Course", "Paper"}
	for i, hit := range result.Results {
		if hit.MatchedColumn != wantColumns[i] {
			t.Fatalf("Results[%d].MatchedColumn = %q, want %q", i, hit.MatchedColumn, wantColumns[i])
		}
	}
	if result.Results[3].MatchedValue != "PHonetics" {
		t.Fatalf("MatchedValue = %q", result.Results[3].MatchedValue)
	}
}

func TestSearchPaginationAndFilters(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	mustCreate(t, db,
		&model.Project{ProjectID: 10, Name: "A", GroupID: 1},
		&model.Project{ProjectID: 11, Name: "B", GroupID: 2},
		&model.QuantitySheet{QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", CatchNo: "X-1"},
		&model.QuantitySheet{QuantitySheetID: 101, ProjectID: 10, LotNo: "L1", CatchNo: "X-2"},
		&model.QuantitySheet{QuantitySheetID: 102, ProjectID: 11, LotNo: "L1", CatchNo: "X-3"},
	)

	groupID := 1
	result, err := svc.Search(ctx, SearchInput{Query: "X-", GroupID: &groupID, PageSize: 1, Page: 2})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.TotalRecords != 2 {
		t.Fatalf("TotalRecords = %d, want 2 (group filter)", result.TotalRecords)
	}
	if len(result.Results) != 1 || result.Results[0].CatchNo != "X-2" {
		t.Fatalf("page 2 = %+v", result.Results)
	}

	projectID := 11
	result, err = svc.Search(ctx, SearchInput{Query: "X-", ProjectID: &projectID})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.TotalRecords != 1 || result.Results[0].ProjectID != 11 {
		t.Fatalf("project filter result = %+v", result)
	}
}

func TestSearchEscapesLikeMetacharacters(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	mustCreate(t, db,
		&model.QuantitySheet{QuantitySheetID: 100, ProjectID: 10, LotNo: "L1", CatchNo: "A_1"},
		&model.QuantitySheet{QuantitySheetID: 101, ProjectID: 10, LotNo: "L1", CatchNo: "AX1"},
	)

	result, err := svc.Search(ctx, SearchInput{Query: "A_"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	// "_" must match literally, not as a single-character wildcard.
	if result.TotalRecords != 1 || result.Results[0].CatchNo != "A_1" {
		t.Fatalf("result = %+v", result)
	}
}
