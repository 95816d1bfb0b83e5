package reports

import (
	"context"
	"strconv"
	"time"

	"presstrack/internal/errs"
	"presstrack/internal/ports"
)

type GroupInfo struct {
	ID     int    `json:"Id"`
	Name   string `json:"Name"`
	Status bool   `json:"Status"`
}

type ProjectInfo struct {
	ProjectID int    `json:"ProjectId"`
	Name      string `json:"Name"`
}

// CatchNumbersResult pairs a project's open catch numbers with its
// production-category audit entries.
type CatchNumbersResult struct {
	CatchNumbers []string          `json:"CatchNumbers"`
	Events       []ProductionEvent `json:"Events"`
}

type ProductionEvent struct {
	NewValue string    `json:"NewValue"`
	LoggedAt time.Time `json:"LoggedAT"`
}

// AllGroups lists every group in the registry.
func (s *Service) AllGroups(ctx context.Context) ([]GroupInfo, error) {
	groups, err := s.repo.ListGroups(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list groups")
	}
	if len(groups) == 0 {
		return nil, noDataf("No groups found.")
	}

	infos := make([]GroupInfo, 0, len(groups))
	for _, g := range groups {
		infos = append(infos, GroupInfo{ID: g.GroupID, Name: g.Name, Status: g.Status})
	}
	return infos, nil
}

// ProjectsByGroup lists the projects belonging to one group.
func (s *Service) ProjectsByGroup(ctx context.Context, groupID int) ([]ProjectInfo, error) {
	projects, err := s.repo.ListProjectsByGroup(ctx, groupID)
	if err != nil {
		return nil, errs.Wrap(err, "list projects")
	}
	if len(projects) == 0 {
		return nil, noDataf("No projects found for the given GroupId.")
	}

	infos := make([]ProjectInfo, 0, len(projects))
	for _, p := range projects {
		infos = append(infos, ProjectInfo{ProjectID: p.ProjectID, Name: p.Name})
	}
	return infos, nil
}

// LotNumbers lists the distinct non-empty lot numbers of a project.
func (s *Service) LotNumbers(ctx context.Context, projectID int) ([]string, error) {
	lots, err := s.repo.ListLotNumbers(ctx, projectID)
	if err != nil {
		return nil, errs.Wrap(err, "list lot numbers")
	}
	if len(lots) == 0 {
		return nil, noDataf("No LotNos found for the given ProjectId.")
	}
	return lots, nil
}

// CatchNumbersByProject lists a project's open catch numbers alongside the
// production-category audit entries that mention the project id. Each half
// reports absence separately.
func (s *Service) CatchNumbersByProject(ctx context.Context, projectID int) (CatchNumbersResult, error) {
	catchNumbers, err := s.repo.ListCatchNumbers(ctx, projectID, 1)
	if err != nil {
		return CatchNumbersResult{}, errs.Wrap(err, "list catch numbers")
	}
	if len(catchNumbers) == 0 {
		return CatchNumbersResult{}, noDataf("No records found with Status = 1 for the given ProjectId.")
	}

	events, err := s.repo.ListEvents(ctx, ports.EventFilter{
		Category:      "Production",
		ValueContains: strconv.Itoa(projectID),
	})
	if err != nil {
		return CatchNumbersResult{}, errs.Wrap(err, "list production events")
	}
	if len(events) == 0 {
		return CatchNumbersResult{}, noDataf("No event logs found for the given ProjectId.")
	}

	result := CatchNumbersResult{
		CatchNumbers: catchNumbers,
		Events:       make([]ProductionEvent, 0, len(events)),
	}
	for _, e := range events {
		result.Events = append(result.Events, ProductionEvent{NewValue: e.NewValue, LoggedAt: e.LoggedAt})
	}
	return result, nil
}
