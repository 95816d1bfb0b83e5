package production

import (
	"testing"
	"time"
)

func TestParseReportDate(t *testing.T) {
	got, err := ParseReportDate("15-03-2026")
	if err != nil {
		t.Fatalf("ParseReportDate() error = %v", err)
	}
	want := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseReportDate() = %v, want %v", got, want)
	}

	if _, err := ParseReportDate("2026-03-15"); err == nil {
		t.Fatalf("ParseReportDate() accepted ISO layout")
	}
}

func TestParseExamDateLayouts(t *testing.T) {
	for _, value := range []string{"15-03-2026", "2026-03-15", "15/03/2026"} {
		if _, ok := ParseExamDate(value); !ok {
			t.Fatalf("ParseExamDate(%q) not parsed", value)
		}
	}
	if _, ok := ParseExamDate("soon"); ok {
		t.Fatalf("ParseExamDate(\"soon\") parsed")
	}
	if _, ok := ParseExamDate(""); ok {
		t.Fatalf("ParseExamDate(\"\") parsed")
	}
}

func TestExamDateRangeExcludesUnparseable(t *testing.T) {
	minDate, maxDate, ok := ExamDateRange([]string{"18-03-2026", "garbage", "15-03-2026"})
	if !ok {
		t.Fatalf("ExamDateRange() ok = false")
	}
	if minDate != "15-03-2026" || maxDate != "18-03-2026" {
		t.Fatalf("ExamDateRange() = %q, %q", minDate, maxDate)
	}

	if _, _, ok := ExamDateRange([]string{"garbage"}); ok {
		t.Fatalf("ExamDateRange() ok = true for all-unparseable input")
	}
}

func TestExamDateSpanSubstitutesZeroTime(t *testing.T) {
	from, to := ExamDateSpan([]string{"15-03-2026", "garbage"})
	if !from.IsZero() {
		t.Fatalf("ExamDateSpan() from = %v, want zero time", from)
	}
	want := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !to.Equal(want) {
		t.Fatalf("ExamDateSpan() to = %v, want %v", to, want)
	}
}

func TestLotKey(t *testing.T) {
	if got := LotKey(10, "L1"); got != "10|L1" {
		t.Fatalf("LotKey() = %q", got)
	}
}
