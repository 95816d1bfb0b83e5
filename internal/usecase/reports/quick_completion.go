package reports

import (
	"context"
	"sort"
	"time"

	"presstrack/internal/domain/production"
	"presstrack/internal/errs"
	"presstrack/internal/ports"
)

// QuickCompletionInput carries the query parameters of the quick-completion
// audit. The date window is mandatory here, unlike the volume reports.
type QuickCompletionInput struct {
	DateWindowInput
	Page     int
	PageSize int
}

// QuickCompletionItem is one suspicious pair of status events on the same
// transaction. Both orientations of a pair are reported, so consumers see
// each pairing twice with A and B swapped.
type QuickCompletionItem struct {
	EventIDA              int64      `json:"EventID_A"`
	EventIDB              int64      `json:"EventID_B"`
	EventA                string     `json:"Event_A"`
	EventB                string     `json:"Event_B"`
	TransactionID         *int64     `json:"TransactionId"`
	ProjectID             *int       `json:"ProjectId"`
	GroupID               *int       `json:"GroupId"`
	QuantitySheetID       *int       `json:"QuantitySheetId"`
	CatchNo               *string    `json:"CatchNo"`
	Quantity              *int       `json:"Quantity"`
	LoggedAtA             time.Time  `json:"LoggedAT_A"`
	LoggedAtB             time.Time  `json:"LoggedAT_B"`
	TriggeredByA          int        `json:"TriggeredBy_A"`
	TriggeredByB          int        `json:"TriggeredBy_B"`
	TimeDifferenceMinutes int        `json:"TimeDifferenceMinutes"`
}

type QuickCompletionResult struct {
	StartDate  string                `json:"StartDate"`
	EndDate    string                `json:"EndDate"`
	Page       int                   `json:"Page"`
	PageSize   int                   `json:"PageSize"`
	TotalItems int                   `json:"TotalItems"`
	TotalPages int                   `json:"TotalPages"`
	Items      []QuickCompletionItem `json:"Items"`
}

// quickEvent is a status event joined with whatever production context its
// transaction id resolves to. Events with no transaction, or whose
// transaction points at missing rows, stay in the set with nil context.
type quickEvent struct {
	event   ports.EventLogEntry
	txn     *ports.Transaction
	c       *ports.Catch
	project *ports.Project
}

// QuickCompletion flags pairs of status updates on the same transaction
// logged closer together than the configured gap, the signature of an
// operator bulk-clicking through stages.
func (s *Service) QuickCompletion(ctx context.Context, in QuickCompletionInput) (QuickCompletionResult, error) {
	from, to, err := in.resolveRequiredWindow()
	if err != nil {
		return QuickCompletionResult{}, err
	}

	page := in.Page
	if page <= 0 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	events, err := s.repo.ListEvents(ctx, ports.EventFilter{
		Event: statusUpdatedEvent,
		From:  &from,
		To:    &to,
	})
	if err != nil {
		return QuickCompletionResult{}, errs.Wrap(err, "list status events")
	}

	joined, err := s.joinQuickEvents(ctx, events)
	if err != nil {
		return QuickCompletionResult{}, err
	}

	// Bucket by transaction id. Events without one share a single bucket:
	// two untagged events still pair with each other.
	buckets := make(map[int64][]quickEvent)
	const untagged = int64(-1)
	bucketOrder := make([]int64, 0)
	for _, qe := range joined {
		key := untagged
		if qe.event.TransactionID != nil {
			key = *qe.event.TransactionID
		}
		if _, ok := buckets[key]; !ok {
			bucketOrder = append(bucketOrder, key)
		}
		buckets[key] = append(buckets[key], qe)
	}

	items := make([]QuickCompletionItem, 0)
	for _, key := range bucketOrder {
		bucket := buckets[key]
		for _, a := range bucket {
			for _, b := range bucket {
				if a.event.EventID == b.event.EventID {
					continue
				}
				diff := a.event.LoggedAt.Sub(b.event.LoggedAt)
				if diff < 0 {
					diff = -diff
				}
				if diff >= s.cfg.QuickCompletionGap {
					continue
				}
				items = append(items, buildQuickItem(a, b, diff))
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.TransactionID == nil && b.TransactionID != nil:
			return true
		case a.TransactionID != nil && b.TransactionID == nil:
			return false
		case a.TransactionID != nil && b.TransactionID != nil && *a.TransactionID != *b.TransactionID:
			return *a.TransactionID < *b.TransactionID
		default:
			return a.LoggedAtA.Before(b.LoggedAtA)
		}
	})

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return QuickCompletionResult{
		StartDate:  from.Format(production.ReportDateLayout),
		EndDate:    to.AddDate(0, 0, -1).Format(production.ReportDateLayout),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		Items:      items[start:end],
	}, nil
}

func buildQuickItem(a, b quickEvent, diff time.Duration) QuickCompletionItem {
	item := QuickCompletionItem{
		EventIDA:              a.event.EventID,
		EventIDB:              b.event.EventID,
		EventA:                a.event.Event,
		EventB:                b.event.Event,
		TransactionID:         a.event.TransactionID,
		LoggedAtA:             a.event.LoggedAt,
		LoggedAtB:             b.event.LoggedAt,
		TriggeredByA:          a.event.TriggeredBy,
		TriggeredByB:          b.event.TriggeredBy,
		TimeDifferenceMinutes: int(diff.Minutes()),
	}
	if a.txn != nil {
		item.ProjectID = &a.txn.ProjectID
	}
	if a.c != nil {
		item.QuantitySheetID = &a.c.CatchID
		item.CatchNo = &a.c.CatchNo
		item.Quantity = &a.c.Quantity
	}
	if a.project != nil {
		item.GroupID = &a.project.GroupID
	}
	return item
}

// joinQuickEvents resolves each event's transaction, catch and project.
// Missing links leave nil fields rather than dropping the event.
func (s *Service) joinQuickEvents(ctx context.Context, events []ports.EventLogEntry) ([]quickEvent, error) {
	txnIDs := distinctTransactionIDs(events)
	txns, err := s.repo.ListTransactionsByIDs(ctx, txnIDs)
	if err != nil {
		return nil, errs.Wrap(err, "list transactions")
	}

	txnByID := make(map[int64]ports.Transaction, len(txns))
	catchIDs := make([]int, 0, len(txns))
	seenCatch := make(map[int]struct{})
	projectIDs := make([]int, 0, len(txns))
	seenProject := make(map[int]struct{})
	for _, t := range txns {
		txnByID[t.TransactionID] = t
		if _, ok := seenCatch[t.CatchID]; !ok {
			seenCatch[t.CatchID] = struct{}{}
			catchIDs = append(catchIDs, t.CatchID)
		}
		if _, ok := seenProject[t.ProjectID]; !ok {
			seenProject[t.ProjectID] = struct{}{}
			projectIDs = append(projectIDs, t.ProjectID)
		}
	}

	catches, err := s.repo.ListCatchesByIDs(ctx, catchIDs)
	if err != nil {
		return nil, errs.Wrap(err, "list catches")
	}
	projects, err := s.repo.ListProjectsByIDs(ctx, projectIDs)
	if err != nil {
		return nil, errs.Wrap(err, "list projects")
	}

	catchByID := make(map[int]ports.Catch, len(catches))
	for _, c := range catches {
		catchByID[c.CatchID] = c
	}
	projectByID := make(map[int]ports.Project, len(projects))
	for _, p := range projects {
		projectByID[p.ProjectID] = p
	}

	joined := make([]quickEvent, 0, len(events))
	for _, e := range events {
		qe := quickEvent{event: e}
		if e.TransactionID != nil {
			if t, ok := txnByID[*e.TransactionID]; ok {
				txn := t
				qe.txn = &txn
				if c, ok := catchByID[t.CatchID]; ok {
					cc := c
					qe.c = &cc
				}
				if p, ok := projectByID[t.ProjectID]; ok {
					pp := p
					qe.project = &pp
				}
			}
		}
		joined = append(joined, qe)
	}
	return joined, nil
}
