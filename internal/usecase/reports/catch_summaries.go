package reports

import (
	"context"

	"presstrack/internal/domain/production"
	"presstrack/internal/errs"
	"presstrack/internal/ports"
)

// CatchSummary is the full per-catch view: identity fields, derived
// lifecycle status, dispatch state, and the production context collected
// from the catch's transactions.
type CatchSummary struct {
	CatchNo            string            `json:"CatchNo"`
	Paper              string            `json:"Paper"`
	ExamDate           string            `json:"ExamDate"`
	ExamTime           string            `json:"ExamTime"`
	Course             string            `json:"Course"`
	Subject            string            `json:"Subject"`
	InnerEnvelope      string            `json:"InnerEnvelope"`
	OuterEnvelope      string            `json:"OuterEnvelope"`
	LotNo              string            `json:"LotNo"`
	Quantity           int               `json:"Quantity"`
	Pages              int               `json:"Pages"`
	Status             int               `json:"Status"`
	ProcessNames       []string          `json:"ProcessNames"`
	CatchStatus        production.Status `json:"CatchStatus"`
	TerminalProcess    bool              `json:"TerminalProcess"`
	CurrentProcessName *string           `json:"CurrentProcessName"`
	DispatchDate       string            `json:"DispatchDate"`
	TransactionData    TransactionData   `json:"TransactionData"`
}

// TransactionData aggregates the zones, teams and machines a catch's
// transactions touched. Unresolvable references are skipped.
type TransactionData struct {
	ZoneDescriptions []string     `json:"ZoneDescriptions"`
	TeamDetails      []TeamDetail `json:"TeamDetails"`
	MachineNames     []string     `json:"MachineNames"`
}

type TeamDetail struct {
	TeamName  string   `json:"TeamName"`
	UserNames []string `json:"UserNames"`
}

// catchContext holds the registry snapshot the summary builder resolves
// against, fetched once per request.
type catchContext struct {
	processes     []ports.Process
	processByID   map[int]ports.Process
	zoneByID      map[int]ports.Zone
	teamByID      map[int]ports.Team
	userByID      map[int]ports.User
	machineByID   map[int]ports.Machine
	txnsByCatch   map[int][]ports.Transaction
	dispatchByLot map[string]ports.Dispatch
}

// CatchSummariesByLot reports every catch of a (project, lot).
func (s *Service) CatchSummariesByLot(ctx context.Context, projectID int, lotNo string) ([]CatchSummary, error) {
	catches, err := s.repo.ListCatchesByLot(ctx, projectID, lotNo)
	if err != nil {
		return nil, errs.Wrap(err, "list catches")
	}
	if len(catches) == 0 {
		return nil, noDataf("No data found for the given ProjectId and LotNo.")
	}

	dispatches, err := s.repo.ListDispatchesForLot(ctx, projectID, lotNo)
	if err != nil {
		return nil, errs.Wrap(err, "list dispatches")
	}

	return s.buildCatchSummaries(ctx, projectID, catches, dispatches)
}

// CatchSummariesByCatchNo reports the catches of a project matching one
// catch number. Multiple rows can share a catch number across lots.
func (s *Service) CatchSummariesByCatchNo(ctx context.Context, projectID int, catchNo string) ([]CatchSummary, error) {
	catches, err := s.repo.ListCatchesByCatchNo(ctx, projectID, catchNo)
	if err != nil {
		return nil, errs.Wrap(err, "list catches")
	}
	if len(catches) == 0 {
		return nil, noDataf("No data found for the given CatchNo.")
	}

	lots := make([]string, 0, len(catches))
	seen := make(map[string]struct{}, len(catches))
	for _, c := range catches {
		if _, ok := seen[c.LotNo]; ok {
			continue
		}
		seen[c.LotNo] = struct{}{}
		lots = append(lots, c.LotNo)
	}
	dispatches, err := s.repo.ListDispatchesByLots(ctx, lots)
	if err != nil {
		return nil, errs.Wrap(err, "list dispatches")
	}

	return s.buildCatchSummaries(ctx, projectID, catches, dispatches)
}

func (s *Service) buildCatchSummaries(ctx context.Context, projectID int, catches []ports.Catch, dispatches []ports.Dispatch) ([]CatchSummary, error) {
	cc, err := s.loadCatchContext(ctx, projectID, dispatches)
	if err != nil {
		return nil, err
	}

	summaries := make([]CatchSummary, 0, len(catches))
	for _, c := range catches {
		summaries = append(summaries, s.buildCatchSummary(c, cc))
	}
	return summaries, nil
}

func (s *Service) loadCatchContext(ctx context.Context, projectID int, dispatches []ports.Dispatch) (catchContext, error) {
	var cc catchContext

	processes, err := s.repo.ListProcesses(ctx)
	if err != nil {
		return cc, errs.Wrap(err, "list processes")
	}
	txns, err := s.repo.ListTransactionsByProject(ctx, projectID)
	if err != nil {
		return cc, errs.Wrap(err, "list transactions")
	}
	zones, err := s.repo.ListZones(ctx)
	if err != nil {
		return cc, errs.Wrap(err, "list zones")
	}
	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		return cc, errs.Wrap(err, "list teams")
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return cc, errs.Wrap(err, "list users")
	}
	machines, err := s.repo.ListMachines(ctx)
	if err != nil {
		return cc, errs.Wrap(err, "list machines")
	}

	cc.processes = processes
	cc.processByID = make(map[int]ports.Process, len(processes))
	for _, p := range processes {
		cc.processByID[p.ProcessID] = p
	}
	cc.zoneByID = make(map[int]ports.Zone, len(zones))
	for _, z := range zones {
		cc.zoneByID[z.ZoneID] = z
	}
	cc.teamByID = make(map[int]ports.Team, len(teams))
	for _, t := range teams {
		cc.teamByID[t.TeamID] = t
	}
	cc.userByID = make(map[int]ports.User, len(users))
	for _, u := range users {
		cc.userByID[u.UserID] = u
	}
	cc.machineByID = make(map[int]ports.Machine, len(machines))
	for _, m := range machines {
		cc.machineByID[m.MachineID] = m
	}
	cc.txnsByCatch = make(map[int][]ports.Transaction)
	for _, t := range txns {
		cc.txnsByCatch[t.CatchID] = append(cc.txnsByCatch[t.CatchID], t)
	}
	cc.dispatchByLot = make(map[string]ports.Dispatch, len(dispatches))
	for _, d := range dispatches {
		if _, ok := cc.dispatchByLot[d.LotNo]; !ok {
			cc.dispatchByLot[d.LotNo] = d
		}
	}
	return cc, nil
}

func (s *Service) buildCatchSummary(c ports.Catch, cc catchContext) CatchSummary {
	related := cc.txnsByCatch[c.CatchID]
	executions := make([]production.ProcessExecution, 0, len(related))
	for _, t := range related {
		executions = append(executions, production.ProcessExecution{
			TransactionID: t.TransactionID,
			ProcessID:     t.ProcessID,
			Status:        t.Status,
		})
	}

	summary := CatchSummary{
		CatchNo:         c.CatchNo,
		Paper:           c.Paper,
		ExamDate:        c.ExamDate,
		ExamTime:        c.ExamTime,
		Course:          c.Course,
		Subject:         c.Subject,
		InnerEnvelope:   c.InnerEnvelope,
		OuterEnvelope:   c.OuterEnvelope,
		LotNo:           c.LotNo,
		Quantity:        c.Quantity,
		Pages:           c.Pages,
		Status:          c.Status,
		CatchStatus:     production.DeriveStatus(executions, s.cfg.TerminalProcessID),
		TerminalProcess: production.SeenProcess(executions, s.cfg.TerminalProcessID),
		DispatchDate:    "Not Available",
	}

	// A nil process-id set stays null; an empty one reports an empty list.
	if c.ProcessIDs != nil {
		names := make([]string, 0, len(c.ProcessIDs))
		for _, p := range cc.processes {
			for _, id := range c.ProcessIDs {
				if p.ProcessID == id {
					names = append(names, p.Name)
					break
				}
			}
		}
		summary.ProcessNames = names
	}

	if processID, ok := production.CurrentProcessID(executions); ok {
		if p, found := cc.processByID[processID]; found {
			name := p.Name
			summary.CurrentProcessName = &name
		}
	}

	if d, ok := cc.dispatchByLot[c.LotNo]; ok && d.UpdatedAt != nil {
		summary.DispatchDate = d.UpdatedAt.Format(production.DispatchDateLayout)
	}

	summary.TransactionData = buildTransactionData(related, cc)
	return summary
}

func buildTransactionData(related []ports.Transaction, cc catchContext) TransactionData {
	data := TransactionData{
		ZoneDescriptions: make([]string, 0),
		TeamDetails:      make([]TeamDetail, 0),
		MachineNames:     make([]string, 0),
	}

	seenZone := make(map[int]struct{})
	for _, t := range related {
		if _, ok := seenZone[t.ZoneID]; ok {
			continue
		}
		seenZone[t.ZoneID] = struct{}{}
		if z, ok := cc.zoneByID[t.ZoneID]; ok {
			data.ZoneDescriptions = append(data.ZoneDescriptions, z.Description)
		}
	}

	seenTeam := make(map[int]struct{})
	for _, t := range related {
		for _, teamID := range t.TeamIDs {
			if _, ok := seenTeam[teamID]; ok {
				continue
			}
			seenTeam[teamID] = struct{}{}
			team, ok := cc.teamByID[teamID]
			if !ok {
				continue
			}
			detail := TeamDetail{TeamName: team.Name, UserNames: make([]string, 0, len(team.UserIDs))}
			for _, userID := range team.UserIDs {
				if u, found := cc.userByID[userID]; found {
					detail.UserNames = append(detail.UserNames, u.UserName)
				}
			}
			data.TeamDetails = append(data.TeamDetails, detail)
		}
	}

	seenMachine := make(map[int]struct{})
	for _, t := range related {
		if _, ok := seenMachine[t.MachineID]; ok {
			continue
		}
		seenMachine[t.MachineID] = struct{}{}
		if m, ok := cc.machineByID[t.MachineID]; ok {
			data.MachineNames = append(data.MachineNames, m.Name)
		}
	}

	return data
}
