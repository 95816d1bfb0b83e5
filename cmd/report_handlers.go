package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"presstrack/internal/bootstrap/logging"
	"presstrack/internal/errs"
	"presstrack/internal/usecase/reports"
)

type reportService interface {
	CreateReport(ctx context.Context, in reports.CreateReportInput) (int64, error)
	AllGroups(ctx context.Context) ([]reports.GroupInfo, error)
	ProjectsByGroup(ctx context.Context, groupID int) ([]reports.ProjectInfo, error)
	LotNumbers(ctx context.Context, projectID int) ([]string, error)
	CatchSummariesByLot(ctx context.Context, projectID int, lotNo string) ([]reports.CatchSummary, error)
	CatchSummariesByCatchNo(ctx context.Context, projectID int, catchNo string) ([]reports.CatchSummary, error)
	CatchNumbersByProject(ctx context.Context, projectID int) (reports.CatchNumbersResult, error)
	ProcessTimeline(ctx context.Context, catchNo string) ([]reports.TimelineEntry, error)
	DailyProduction(ctx context.Context, in reports.DateWindowInput) ([]reports.DailyProductionRow, error)
	DailyProductionSummary(ctx context.Context, in reports.DateWindowInput) (reports.DailyProductionSummary, error)
	QuickCompletion(ctx context.Context, in reports.QuickCompletionInput) (reports.QuickCompletionResult, error)
	UnderProduction(ctx context.Context) ([]reports.UnderProductionRow, error)
	Search(ctx context.Context, in reports.SearchInput) (reports.SearchResult, error)
}

type reportHTTPHandler struct {
	svc     reportService
	baseCtx context.Context
}

type apiErrorResponse struct {
	Message string `json:"Message"`
	Details string `json:"Details,omitempty"`
}

type createReportResponse struct {
	Message  string `json:"Message"`
	ReportID int64  `json:"ReportId"`
}

func newReportHandler(svc reportService, baseCtx context.Context) http.Handler {
	h := &reportHTTPHandler{svc: svc, baseCtx: baseCtx}

	r := chi.NewRouter()
	r.Use(h.requestScope)
	r.Route("/api/reports", func(r chi.Router) {
		r.Post("/", h.handleCreateReport)
		r.Get("/groups", h.handleAllGroups)
		r.Get("/groups/{groupID}/projects", h.handleProjectsByGroup)
		r.Get("/projects/{projectID}/lots", h.handleLotNumbers)
		r.Get("/projects/{projectID}/lots/{lotNo}/catches", h.handleCatchesByLot)
		r.Get("/projects/{projectID}/catches/{catchNo}", h.handleCatchesByCatchNo)
		r.Get("/projects/{projectID}/catch-numbers", h.handleCatchNumbers)
		r.Get("/catches/{catchNo}/timeline", h.handleTimeline)
		r.Get("/daily-production", h.handleDailyProduction)
		r.Get("/daily-production/summary", h.handleDailyProductionSummary)
		r.Get("/quick-completion", h.handleQuickCompletion)
		r.Get("/under-production", h.handleUnderProduction)
		r.Get("/search", h.handleSearch)
	})
	return r
}

// requestScope attaches the base logger and a per-request id to the
// request context.
func (h *reportHTTPHandler) requestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithLogger(r.Context(), logging.Logger(h.baseCtx))
		ctx = logging.WithAttrs(ctx,
			slog.String("request_id", uuid.NewString()),
			slog.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *reportHTTPHandler) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var in reports.CreateReportInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeAPIJSON(w, http.StatusBadRequest, apiErrorResponse{Message: "Invalid report data."})
		return
	}

	id, err := h.svc.CreateReport(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, createReportResponse{Message: "Report created successfully.", ReportID: id})
}

func (h *reportHTTPHandler) handleAllGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.AllGroups(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, groups)
}

func (h *reportHTTPHandler) handleProjectsByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathInt(w, r, "groupID")
	if !ok {
		return
	}
	projects, err := h.svc.ProjectsByGroup(r.Context(), groupID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, projects)
}

func (h *reportHTTPHandler) handleLotNumbers(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathInt(w, r, "projectID")
	if !ok {
		return
	}
	lots, err := h.svc.LotNumbers(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, lots)
}

func (h *reportHTTPHandler) handleCatchesByLot(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathInt(w, r, "projectID")
	if !ok {
		return
	}
	summaries, err := h.svc.CatchSummariesByLot(r.Context(), projectID, chi.URLParam(r, "lotNo"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, summaries)
}

func (h *reportHTTPHandler) handleCatchesByCatchNo(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathInt(w, r, "projectID")
	if !ok {
		return
	}
	summaries, err := h.svc.CatchSummariesByCatchNo(r.Context(), projectID, chi.URLParam(r, "catchNo"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, summaries)
}

func (h *reportHTTPHandler) handleCatchNumbers(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathInt(w, r, "projectID")
	if !ok {
		return
	}
	result, err := h.svc.CatchNumbersByProject(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, result)
}

func (h *reportHTTPHandler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ProcessTimeline(r.Context(), chi.URLParam(r, "catchNo"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, entries)
}

func (h *reportHTTPHandler) handleDailyProduction(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.DailyProduction(r.Context(), dateWindowFromQuery(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, rows)
}

func (h *reportHTTPHandler) handleDailyProductionSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.DailyProductionSummary(r.Context(), dateWindowFromQuery(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, summary)
}

func (h *reportHTTPHandler) handleQuickCompletion(w http.ResponseWriter, r *http.Request) {
	in := reports.QuickCompletionInput{
		DateWindowInput: dateWindowFromQuery(r),
		Page:            queryInt(r, "page"),
		PageSize:        queryInt(r, "pageSize"),
	}
	result, err := h.svc.QuickCompletion(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, result)
}

func (h *reportHTTPHandler) handleUnderProduction(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.UnderProduction(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, rows)
}

func (h *reportHTTPHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	in := reports.SearchInput{
		Query:    r.URL.Query().Get("query"),
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "pageSize"),
	}
	if v := r.URL.Query().Get("groupId"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			in.GroupID = &id
		}
	}
	if v := r.URL.Query().Get("projectId"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			in.ProjectID = &id
		}
	}

	result, err := h.svc.Search(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, result)
}

func (h *reportHTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *reports.ValidationError
	switch {
	case errors.As(err, &validation):
		http.Error(w, validation.Message, http.StatusBadRequest)
	case errors.Is(err, reports.ErrNoData):
		writeAPIJSON(w, http.StatusNotFound, apiErrorResponse{Message: noDataMessage(err)})
	default:
		logging.Error(r.Context(), "report request failed", slog.Any("err", errs.Loggable(err)))
		writeAPIJSON(w, http.StatusInternalServerError, apiErrorResponse{
			Message: "An error occurred.",
			Details: err.Error(),
		})
	}
}

// noDataMessage strips the sentinel prefix so clients see only the
// endpoint-specific text.
func noDataMessage(err error) string {
	msg := err.Error()
	prefix := reports.ErrNoData.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

func dateWindowFromQuery(r *http.Request) reports.DateWindowInput {
	q := r.URL.Query()
	return reports.DateWindowInput{
		Date:      q.Get("date"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeAPIJSON(w, http.StatusBadRequest, apiErrorResponse{Message: "Invalid " + name + "."})
		return 0, false
	}
	return value, true
}

func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}

func writeAPIJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
