package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"presstrack/internal/bootstrap/logging"
	"presstrack/internal/domain/production"
	"presstrack/internal/errs"
	"presstrack/internal/ports"
)

// DailyProductionRow is one (group, project, type, lot) aggregate.
//
// To carries the minimum exam date and From the maximum. The swap is part
// of the wire contract consumed downstream; do not "fix" it.
type DailyProductionRow struct {
	GroupName      string  `json:"GroupName"`
	ProjectID      int     `json:"ProjectId"`
	TypeID         int     `json:"TypeId"`
	LotNo          string  `json:"LotNo"`
	To             *string `json:"To"`
	From           *string `json:"From"`
	CountOfCatches int     `json:"CountOfCatches"`
	TotalQuantity  int     `json:"TotalQuantity"`
}

type DailyProductionSummary struct {
	TotalGroups         int `json:"TotalGroups"`
	TotalLots           int `json:"TotalLots"`
	TotalCountOfCatches int `json:"TotalCountOfCatches"`
	TotalProjects       int `json:"TotalProjects"`
	TotalQuantity       int `json:"TotalQuantity"`
}

type volumeKey struct {
	ProjectID int
	TypeID    int
	GroupID   int
	LotNo     string
}

type volumeGroup struct {
	key       volumeKey
	examDates []string
	count     int
	quantity  int
}

// DailyProduction aggregates completed work per (group, project, type,
// lot) within the requested window.
func (s *Service) DailyProduction(ctx context.Context, in DateWindowInput) ([]DailyProductionRow, error) {
	from, to, err := in.resolveOptionalWindow()
	if err != nil {
		return nil, err
	}

	groups, groupNames, err := s.volumeGroups(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]DailyProductionRow, 0, len(groups))
	for _, g := range groups {
		row := DailyProductionRow{
			GroupName:      "Unknown",
			ProjectID:      g.key.ProjectID,
			TypeID:         g.key.TypeID,
			LotNo:          g.key.LotNo,
			CountOfCatches: g.count,
			TotalQuantity:  g.quantity,
		}
		if name, ok := groupNames[g.key.GroupID]; ok {
			row.GroupName = name
		}
		if minDate, maxDate, ok := production.ExamDateRange(g.examDates); ok {
			row.To = &minDate
			row.From = &maxDate
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DailyProductionSummary reduces the same grouping to scalar totals. The
// result is memoized per window because dashboards poll it.
func (s *Service) DailyProductionSummary(ctx context.Context, in DateWindowInput) (DailyProductionSummary, error) {
	from, to, err := in.resolveOptionalWindow()
	if err != nil {
		return DailyProductionSummary{}, err
	}

	cacheKey := summaryCacheKey(from, to)
	if s.cache != nil {
		if cached, found, cacheErr := s.cache.Get(ctx, cacheKey); cacheErr == nil && found {
			var summary DailyProductionSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return summary, nil
			}
		} else if cacheErr != nil {
			logging.Warn(ctx, "summary cache read failed", slog.Any("err", errs.Loggable(cacheErr)))
		}
	}

	groups, _, err := s.volumeGroups(ctx, from, to)
	if err != nil {
		return DailyProductionSummary{}, err
	}

	summary := DailyProductionSummary{TotalLots: len(groups)}
	distinctGroups := make(map[int]struct{})
	distinctProjects := make(map[int]struct{})
	for _, g := range groups {
		distinctGroups[g.key.GroupID] = struct{}{}
		distinctProjects[g.key.ProjectID] = struct{}{}
		summary.TotalCountOfCatches += g.count
		summary.TotalQuantity += g.quantity
	}
	summary.TotalGroups = len(distinctGroups)
	summary.TotalProjects = len(distinctProjects)

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(summary); marshalErr == nil {
			if cacheErr := s.cache.Set(ctx, cacheKey, string(payload), s.cfg.SummaryCacheTTL); cacheErr != nil {
				logging.Warn(ctx, "summary cache write failed", slog.Any("err", errs.Loggable(cacheErr)))
			}
		}
	}

	return summary, nil
}

// volumeGroups runs the shared base join: completion events in the window
// to transactions to catches and projects, grouped by (project, type,
// group, lot). Group order follows first occurrence in transaction-id
// order. Transactions whose project or catch is missing drop out (inner
// join semantics).
func (s *Service) volumeGroups(ctx context.Context, from, to *time.Time) ([]volumeGroup, map[int]string, error) {
	events, err := s.repo.ListEvents(ctx, ports.EventFilter{
		Event:    statusUpdatedEvent,
		NewValue: completedStatusValue,
		From:     from,
		To:       to,
	})
	if err != nil {
		return nil, nil, errs.Wrap(err, "list completion events")
	}

	txnIDs := distinctTransactionIDs(events)
	txns, err := s.repo.ListTransactionsByIDs(ctx, txnIDs)
	if err != nil {
		return nil, nil, errs.Wrap(err, "list transactions")
	}

	catchIDs := make([]int, 0, len(txns))
	seenCatch := make(map[int]struct{})
	projectIDs := make([]int, 0, len(txns))
	seenProject := make(map[int]struct{})
	for _, t := range txns {
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
		return nil, nil, errs.Wrap(err, "list catches")
	}
	projects, err := s.repo.ListProjectsByIDs(ctx, projectIDs)
	if err != nil {
		return nil, nil, errs.Wrap(err, "list projects")
	}

	catchByID := make(map[int]ports.Catch, len(catches))
	for _, c := range catches {
		catchByID[c.CatchID] = c
	}
	projectByID := make(map[int]ports.Project, len(projects))
	groupIDs := make([]int, 0, len(projects))
	seenGroup := make(map[int]struct{})
	for _, p := range projects {
		projectByID[p.ProjectID] = p
		if _, ok := seenGroup[p.GroupID]; !ok {
			seenGroup[p.GroupID] = struct{}{}
			groupIDs = append(groupIDs, p.GroupID)
		}
	}

	groupRows, err := s.repo.ListGroupsByIDs(ctx, groupIDs)
	if err != nil {
		return nil, nil, errs.Wrap(err, "list groups")
	}
	groupNames := make(map[int]string, len(groupRows))
	for _, g := range groupRows {
		groupNames[g.GroupID] = g.Name
	}

	order := make([]volumeKey, 0, len(txns))
	grouped := make(map[volumeKey]*volumeGroup, len(txns))
	for _, t := range txns {
		project, ok := projectByID[t.ProjectID]
		if !ok {
			continue
		}
		c, ok := catchByID[t.CatchID]
		if !ok {
			continue
		}

		key := volumeKey{
			ProjectID: t.ProjectID,
			TypeID:    project.TypeID,
			GroupID:   project.GroupID,
			LotNo:     t.LotNo,
		}
		g, ok := grouped[key]
		if !ok {
			g = &volumeGroup{key: key}
			grouped[key] = g
			order = append(order, key)
		}
		g.count++
		g.quantity += c.Quantity
		g.examDates = append(g.examDates, c.ExamDate)
	}

	groups := make([]volumeGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *grouped[key])
	}
	return groups, groupNames, nil
}

const (
	statusUpdatedEvent   = "Status updated"
	completedStatusValue = "2"
)

func distinctTransactionIDs(events []ports.EventLogEntry) []int64 {
	ids := make([]int64, 0, len(events))
	seen := make(map[int64]struct{}, len(events))
	for _, e := range events {
		if e.TransactionID == nil {
			continue
		}
		if _, ok := seen[*e.TransactionID]; ok {
			continue
		}
		seen[*e.TransactionID] = struct{}{}
		ids = append(ids, *e.TransactionID)
	}
	return ids
}

func summaryCacheKey(from, to *time.Time) string {
	format := func(t *time.Time) string {
		if t == nil {
			return "open"
		}
		return t.Format(production.ReportDateLayout)
	}
	return fmt.Sprintf("reports:daily-summary:%s..%s", format(from), format(to))
}
