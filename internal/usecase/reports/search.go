package reports

import (
	"context"
	"strings"

	"presstrack/internal/errs"
	"presstrack/internal/ports"
)

type SearchInput struct {
	Query     string
	Page      int
	PageSize  int
	GroupID   *int
	ProjectID *int
}

// SearchHit is one matching catch with the column that matched attributed.
// Attribution priority mirrors the match predicate: CatchNo, then Subject,
// Course, Paper.
type SearchHit struct {
	CatchNo       string `json:"CatchNo"`
	MatchedColumn string `json:"MatchedColumn"`
	MatchedValue  string `json:"MatchedValue"`
	ProjectID     int    `json:"ProjectId"`
	LotNo         string `json:"LotNo"`
}

type SearchResult struct {
	TotalRecords int64       `json:"TotalRecords"`
	Results      []SearchHit `json:"Results"`
}

// Search runs a paginated prefix search over catch numbers, subjects,
// courses and papers.
func (s *Service) Search(ctx context.Context, in SearchInput) (SearchResult, error) {
	if strings.TrimSpace(in.Query) == "" {
		return SearchResult{}, validationf("Search query cannot be empty.")
	}

	page := in.Page
	if page <= 0 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = s.cfg.SearchDefaultPerPage
	}

	total, catches, err := s.repo.SearchCatches(ctx, ports.SearchFilter{
		Query:     in.Query,
		GroupID:   in.GroupID,
		ProjectID: in.ProjectID,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
	})
	if err != nil {
		return SearchResult{}, errs.Wrap(err, "search catches")
	}

	hits := make([]SearchHit, 0, len(catches))
	for _, c := range catches {
		hit := SearchHit{CatchNo: c.CatchNo, ProjectID: c.ProjectID, LotNo: c.LotNo}
		switch {
		case strings.HasPrefix(c.CatchNo, in.Query):
			hit.MatchedColumn, hit.MatchedValue = "CatchNo", c.CatchNo
		case strings.HasPrefix(c.Subject, in.Query):
			hit.MatchedColumn, hit.MatchedValue = "Subject", c.Subject
		case strings.HasPrefix(c.Course, in.Query):
			hit.MatchedColumn, hit.MatchedValue = "Course", c.Course
		default:
			hit.MatchedColumn, hit.MatchedValue = "Paper", c.Paper
		}
		hits = append(hits, hit)
	}

	return SearchResult{TotalRecords: total, Results: hits}, nil
}
