package production

import (
	"fmt"
	"time"
)

// ReportDateLayout is the fixed wire format for report date parameters.
const ReportDateLayout = "02-01-2006"

// DispatchDateLayout formats dispatch timestamps in catch summaries.
const DispatchDateLayout = "2006-01-02"

// ParseReportDate parses a dd-MM-yyyy request parameter. Anything else is
// a validation failure for the caller to report.
func ParseReportDate(value string) (time.Time, error) {
	t, err := time.Parse(ReportDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected dd-MM-yyyy", value)
	}
	return t, nil
}

// Exam dates are free text entered upstream; accept the formats seen in
// production data, most specific first.
var examDateLayouts = []string{
	ReportDateLayout,
	"2006-01-02",
	"02/01/2006",
	time.RFC3339,
}

// ParseExamDate leniently parses a free-text exam date. The second return
// is false when no accepted layout matches.
func ParseExamDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range examDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExamDateRange computes the min/max of the parseable exam dates, formatted
// as dd-MM-yyyy. Unparseable dates are excluded; if none parse, ok is
// false. This is the volume-aggregator policy.
func ExamDateRange(values []string) (minDate string, maxDate string, ok bool) {
	var minT, maxT time.Time
	for _, v := range values {
		t, parsed := ParseExamDate(v)
		if !parsed {
			continue
		}
		if !ok || t.Before(minT) {
			minT = t
		}
		if !ok || t.After(maxT) {
			maxT = t
		}
		ok = true
	}
	if !ok {
		return "", "", false
	}
	return minT.Format(ReportDateLayout), maxT.Format(ReportDateLayout), true
}

// ExamDateSpan computes min/max exam dates substituting the zero time for
// unparseable values instead of excluding them. This is the backlog
// detector's policy; the divergence from ExamDateRange is deliberate and
// preserved (changing it would silently alter report output).
func ExamDateSpan(values []string) (from time.Time, to time.Time) {
	first := true
	for _, v := range values {
		t, parsed := ParseExamDate(v)
		if !parsed {
			t = time.Time{}
		}
		if first || t.Before(from) {
			from = t
		}
		if first || t.After(to) {
			to = t
		}
		first = false
	}
	return from, to
}

// LotKey builds the composite dispatch key for a (project, lot) pair.
func LotKey(projectID int, lotNo string) string {
	return fmt.Sprintf("%d|%s", projectID, lotNo)
}
