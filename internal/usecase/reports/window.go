package reports

import (
	"time"

	"presstrack/internal/domain/production"
)

// DateWindowInput carries the raw date parameters shared by the volume and
// quick-completion reports. All values are dd-MM-yyyy strings; empty means
// absent.
type DateWindowInput struct {
	Date      string
	StartDate string
	EndDate   string
}

// parseAll validates every supplied parameter, even ones that precedence
// later ignores, so a malformed value never passes silently.
func (in DateWindowInput) parseAll() (date, start, end *time.Time, err error) {
	if in.Date != "" {
		d, parseErr := production.ParseReportDate(in.Date)
		if parseErr != nil {
			return nil, nil, nil, validationf("Invalid date format. Use dd-MM-yyyy.")
		}
		date = &d
	}
	if in.StartDate != "" {
		d, parseErr := production.ParseReportDate(in.StartDate)
		if parseErr != nil {
			return nil, nil, nil, validationf("Invalid startDate format. Use dd-MM-yyyy.")
		}
		start = &d
	}
	if in.EndDate != "" {
		d, parseErr := production.ParseReportDate(in.EndDate)
		if parseErr != nil {
			return nil, nil, nil, validationf("Invalid endDate format. Use dd-MM-yyyy.")
		}
		end = &d
	}
	return date, start, end, nil
}

// resolveOptionalWindow builds the half-open [from, to) event window for
// the volume reports. A single date expands to that day; a start/end pair
// is inclusive of the end day; date wins when both forms are supplied.
// Absence of all parameters is not an error: the window stays unbounded
// and the whole history is aggregated.
func (in DateWindowInput) resolveOptionalWindow() (from, to *time.Time, err error) {
	date, start, end, err := in.parseAll()
	if err != nil {
		return nil, nil, err
	}

	switch {
	case date != nil:
		f := *date
		t := date.AddDate(0, 0, 1)
		return &f, &t, nil
	case start != nil && end != nil:
		f := *start
		t := end.AddDate(0, 0, 1)
		return &f, &t, nil
	default:
		return nil, nil, nil
	}
}

// resolveRequiredWindow is the quick-completion variant: either date or
// both startDate and endDate must be present.
func (in DateWindowInput) resolveRequiredWindow() (from, to time.Time, err error) {
	date, start, end, err := in.parseAll()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	switch {
	case date != nil:
		return *date, date.AddDate(0, 0, 1), nil
	case start != nil && end != nil:
		return *start, end.AddDate(0, 0, 1), nil
	default:
		return time.Time{}, time.Time{},
			validationf("Please provide either 'date' or both 'startDate' and 'endDate'.")
	}
}
