package reports

import (
	"context"
	"errors"
	"time"

	"presstrack/internal/errs"
	"presstrack/internal/ports"
)

// TimelineEntry groups a catch's transactions under one workflow process,
// entries ordered by the project's configured process sequence.
type TimelineEntry struct {
	ProcessID    int                   `json:"ProcessId"`
	Transactions []TimelineTransaction `json:"Transactions"`
}

// TimelineTransaction is one process execution with timing and attribution.
// ZoneName carries the zone number; every resolved field degrades to null
// when its foreign key does not resolve.
type TimelineTransaction struct {
	TransactionID int64        `json:"TransactionId"`
	ZoneName      *string      `json:"ZoneName"`
	TeamMembers   []TeamMember `json:"TeamMembers"`
	Supervisor    *string      `json:"Supervisor"`
	MachineName   *string      `json:"MachineName"`
	StartTime     *time.Time   `json:"StartTime"`
	EndTime       *time.Time   `json:"EndTime"`
}

type TeamMember struct {
	FullName string `json:"FullName"`
}

// ProcessTimeline reconstructs the per-process execution history of a
// catch. Only processes with at least one transaction appear. Start and
// end times come from the first and last "Status updated" log entries of
// each transaction; the supervisor is whoever triggered the transaction's
// first event of any kind.
func (s *Service) ProcessTimeline(ctx context.Context, catchNo string) ([]TimelineEntry, error) {
	c, err := s.repo.FirstCatchByCatchNo(ctx, catchNo)
	if errors.Is(err, ports.ErrCatchNotFound) {
		return nil, noDataf("No data found for the given CatchNo.")
	}
	if err != nil {
		return nil, errs.Wrap(err, "resolve catch")
	}

	sequence, err := s.repo.ListProjectProcesses(ctx, c.ProjectID)
	if err != nil {
		return nil, errs.Wrap(err, "list project processes")
	}
	txns, err := s.repo.ListTransactionsByCatch(ctx, c.CatchID)
	if err != nil {
		return nil, errs.Wrap(err, "list transactions")
	}

	txnIDs := make([]int64, 0, len(txns))
	for _, t := range txns {
		txnIDs = append(txnIDs, t.TransactionID)
	}

	var statusEvents, allEvents []ports.EventLogEntry
	if len(txnIDs) > 0 {
		statusEvents, err = s.repo.ListEvents(ctx, ports.EventFilter{
			Event:          statusUpdatedEvent,
			TransactionIDs: txnIDs,
		})
		if err != nil {
			return nil, errs.Wrap(err, "list status events")
		}
		allEvents, err = s.repo.ListEvents(ctx, ports.EventFilter{TransactionIDs: txnIDs})
		if err != nil {
			return nil, errs.Wrap(err, "list events")
		}
	}

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list users")
	}
	zones, err := s.repo.ListZones(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list zones")
	}
	machines, err := s.repo.ListMachines(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list machines")
	}

	zoneByID := make(map[int]ports.Zone, len(zones))
	for _, z := range zones {
		zoneByID[z.ZoneID] = z
	}
	machineByID := make(map[int]ports.Machine, len(machines))
	for _, m := range machines {
		machineByID[m.MachineID] = m
	}
	userByID := make(map[int]ports.User, len(users))
	for _, u := range users {
		userByID[u.UserID] = u
	}

	// First event of any kind per transaction, in event-id order.
	firstTrigger := make(map[int64]int)
	for _, e := range allEvents {
		if e.TransactionID == nil {
			continue
		}
		if _, ok := firstTrigger[*e.TransactionID]; !ok {
			firstTrigger[*e.TransactionID] = e.TriggeredBy
		}
	}

	statusByTxn := make(map[int64][]ports.EventLogEntry)
	for _, e := range statusEvents {
		if e.TransactionID == nil {
			continue
		}
		statusByTxn[*e.TransactionID] = append(statusByTxn[*e.TransactionID], e)
	}

	entries := make([]TimelineEntry, 0, len(sequence))
	for _, pp := range sequence {
		var rows []TimelineTransaction
		for _, t := range txns {
			if t.ProcessID != pp.ProcessID {
				continue
			}
			rows = append(rows, s.buildTimelineTransaction(t, users, userByID, zoneByID, machineByID, firstTrigger, statusByTxn))
		}
		if len(rows) == 0 {
			continue
		}
		entries = append(entries, TimelineEntry{ProcessID: pp.ProcessID, Transactions: rows})
	}
	return entries, nil
}

func (s *Service) buildTimelineTransaction(
	t ports.Transaction,
	users []ports.User,
	userByID map[int]ports.User,
	zoneByID map[int]ports.Zone,
	machineByID map[int]ports.Machine,
	firstTrigger map[int64]int,
	statusByTxn map[int64][]ports.EventLogEntry,
) TimelineTransaction {
	row := TimelineTransaction{
		TransactionID: t.TransactionID,
		TeamMembers:   make([]TeamMember, 0),
	}

	if z, ok := zoneByID[t.ZoneID]; ok {
		zoneNo := z.ZoneNo
		row.ZoneName = &zoneNo
	}
	if m, ok := machineByID[t.MachineID]; ok {
		name := m.Name
		row.MachineName = &name
	}

	// Membership is tested against the transaction's id set, but output
	// order follows the user registry.
	memberIDs := make(map[int]struct{}, len(t.TeamIDs))
	for _, id := range t.TeamIDs {
		memberIDs[id] = struct{}{}
	}
	for _, u := range users {
		if _, ok := memberIDs[u.UserID]; ok {
			row.TeamMembers = append(row.TeamMembers, TeamMember{FullName: u.FirstName + " " + u.LastName})
		}
	}

	if triggeredBy, ok := firstTrigger[t.TransactionID]; ok {
		if u, found := userByID[triggeredBy]; found {
			full := u.FirstName + " " + u.LastName
			row.Supervisor = &full
		}
	}

	for _, e := range statusByTxn[t.TransactionID] {
		logged := e.LoggedAt
		if row.StartTime == nil || logged.Before(*row.StartTime) {
			start := logged
			row.StartTime = &start
		}
		if row.EndTime == nil || logged.After(*row.EndTime) {
			end := logged
			row.EndTime = &end
		}
	}

	return row
}
