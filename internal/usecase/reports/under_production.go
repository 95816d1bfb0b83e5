package reports

import (
	"context"
	"time"

	"presstrack/internal/domain/production"
	"presstrack/internal/errs"
	"presstrack/internal/ports"
)

// UnderProductionRow is the backlog of one (project, lot): open catches
// that have not yet been dispatched.
type UnderProductionRow struct {
	ProjectID    int       `json:"ProjectId"`
	Name         string    `json:"Name"`
	GroupID      int       `json:"GroupId"`
	FromDate     time.Time `json:"FromDate"`
	ToDate       time.Time `json:"ToDate"`
	TypeID       int       `json:"TypeId"`
	LotNo        string    `json:"LotNo"`
	TotalCatchNo int       `json:"TotalCatchNo"`
	TotalQuantity int      `json:"TotalQuantity"`
}

// UnderProduction lists every (project, lot) with open catches whose lot
// has not been dispatched. Rows follow project listing order, lots in
// first-seen catch order within a project.
func (s *Service) UnderProduction(ctx context.Context) ([]UnderProductionRow, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list projects")
	}
	catches, err := s.repo.ListOpenCatches(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list open catches")
	}
	dispatches, err := s.repo.ListDispatches(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list dispatches")
	}

	dispatched := make(map[string]struct{}, len(dispatches))
	for _, d := range dispatches {
		dispatched[production.LotKey(d.ProjectID, d.LotNo)] = struct{}{}
	}

	catchesByProject := make(map[int][]ports.Catch)
	for _, c := range catches {
		catchesByProject[c.ProjectID] = append(catchesByProject[c.ProjectID], c)
	}

	rows := make([]UnderProductionRow, 0)
	for _, p := range projects {
		lotOrder := make([]string, 0)
		byLot := make(map[string][]ports.Catch)
		for _, c := range catchesByProject[p.ProjectID] {
			if _, ok := byLot[c.LotNo]; !ok {
				lotOrder = append(lotOrder, c.LotNo)
			}
			byLot[c.LotNo] = append(byLot[c.LotNo], c)
		}

		for _, lot := range lotOrder {
			if _, ok := dispatched[production.LotKey(p.ProjectID, lot)]; ok {
				continue
			}
			group := byLot[lot]

			examDates := make([]string, 0, len(group))
			quantity := 0
			for _, c := range group {
				examDates = append(examDates, c.ExamDate)
				quantity += c.Quantity
			}
			from, to := production.ExamDateSpan(examDates)

			rows = append(rows, UnderProductionRow{
				ProjectID:     p.ProjectID,
				Name:          p.Name,
				GroupID:       p.GroupID,
				FromDate:      from,
				ToDate:        to,
				TypeID:        p.TypeID,
				LotNo:         lot,
				TotalCatchNo:  len(group),
				TotalQuantity: quantity,
			})
		}
	}
	return rows, nil
}
