package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"presstrack/internal/errs"
	"presstrack/internal/infrastructure/persistence/sqlite/model"
	"presstrack/internal/ports"
)

// ProductionRepository implements ports.ProductionRepository with gorm.
type ProductionRepository struct {
	db *gorm.DB
}

var _ ports.ProductionRepository = (*ProductionRepository)(nil)

func NewProductionRepository(db *gorm.DB) *ProductionRepository {
	return &ProductionRepository{db: db}
}

func (r *ProductionRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *ProductionRepository) ListGroups(ctx context.Context) ([]ports.Group, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Group
	if err := db.Order("group_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query groups")
	}
	return mapSlice(rows, mapGroup), nil
}

func (r *ProductionRepository) ListGroupsByIDs(ctx context.Context, ids []int) ([]ports.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Group
	if err := db.Where("group_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query groups by ids")
	}
	return mapSlice(rows, mapGroup), nil
}

func (r *ProductionRepository) ListProjects(ctx context.Context) ([]ports.Project, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Project
	if err := db.Order("project_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query projects")
	}
	return mapSlice(rows, mapProject), nil
}

func (r *ProductionRepository) ListProjectsByGroup(ctx context.Context, groupID int) ([]ports.Project, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Project
	if err := db.Where("group_id = ?", groupID).Order("project_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query projects by group")
	}
	return mapSlice(rows, mapProject), nil
}

func (r *ProductionRepository) ListProjectsByIDs(ctx context.Context, ids []int) ([]ports.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Project
	if err := db.Where("project_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query projects by ids")
	}
	return mapSlice(rows, mapProject), nil
}

func (r *ProductionRepository) ListLotNumbers(ctx context.Context, projectID int) ([]string, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var lots []string
	if err := db.Model(&model.QuantitySheet{}).
		Distinct("lot_no").
		Where("project_id = ? AND lot_no <> ''", projectID).
		Order("lot_no asc").
		Pluck("lot_no", &lots).Error; err != nil {
		return nil, errs.Wrap(err, "query lot numbers")
	}
	return lots, nil
}

func (r *ProductionRepository) ListCatchesByLot(ctx context.Context, projectID int, lotNo string) ([]ports.Catch, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.QuantitySheet
	if err := db.Where("project_id = ? AND lot_no = ?", projectID, lotNo).
		Order("quantity_sheet_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query catches by lot")
	}
	return mapSlice(rows, mapCatch), nil
}

func (r *ProductionRepository) ListCatchesByCatchNo(ctx context.Context, projectID int, catchNo string) ([]ports.Catch, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.QuantitySheet
	if err := db.Where("project_id = ? AND catch_no = ?", projectID, catchNo).
		Order("quantity_sheet_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query catches by catch no")
	}
	return mapSlice(rows, mapCatch), nil
}

func (r *ProductionRepository) FirstCatchByCatchNo(ctx context.Context, catchNo string) (ports.Catch, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Catch{}, err
	}

	var row model.QuantitySheet
	if err := db.Where("catch_no = ?", catchNo).
		Order("quantity_sheet_id asc").
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Catch{}, ports.ErrCatchNotFound
		}
		return ports.Catch{}, errs.Wrap(err, "query catch by catch no")
	}
	return mapCatch(row), nil
}

func (r *ProductionRepository) ListCatchNumbers(ctx context.Context, projectID int, status int) ([]string, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var catchNos []string
	if err := db.Model(&model.QuantitySheet{}).
		Where("project_id = ? AND status = ?", projectID, status).
		Order("quantity_sheet_id asc").
		Pluck("catch_no", &catchNos).Error; err != nil {
		return nil, errs.Wrap(err, "query catch numbers")
	}
	return catchNos, nil
}

func (r *ProductionRepository) ListOpenCatches(ctx context.Context) ([]ports.Catch, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.QuantitySheet
	if err := db.Where("status = ?", 1).Order("quantity_sheet_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query open catches")
	}
	return mapSlice(rows, mapCatch), nil
}

func (r *ProductionRepository) ListCatchesByIDs(ctx context.Context, ids []int) ([]ports.Catch, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.QuantitySheet
	if err := db.Where("quantity_sheet_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query catches by ids")
	}
	return mapSlice(rows, mapCatch), nil
}

func (r *ProductionRepository) SearchCatches(ctx context.Context, filter ports.SearchFilter) (int64, []ports.Catch, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, nil, err
	}

	prefix := likePrefix(filter.Query)
	query := db.Model(&model.QuantitySheet{}).
		Where(
			`catch_no LIKE ? ESCAPE '\' OR subject LIKE ? ESCAPE '\' OR course LIKE ? ESCAPE '\' OR paper LIKE ? ESCAPE '\'`,
			prefix, prefix, prefix, prefix,
		)

	if filter.GroupID != nil {
		sub := db.Model(&model.Project{}).
			Select("project_id").
			Where("group_id = ?", *filter.GroupID)
		query = query.Where("project_id IN (?)", sub)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, nil, errs.Wrap(err, "count search matches")
	}

	var rows []model.QuantitySheet
	page := query.Order("quantity_sheet_id asc").Offset(filter.Offset)
	if filter.Limit > 0 {
		page = page.Limit(filter.Limit)
	}
	if err := page.Find(&rows).Error; err != nil {
		return 0, nil, errs.Wrap(err, "query search matches")
	}
	return total, mapSlice(rows, mapCatch), nil
}

func (r *ProductionRepository) ListTransactionsByProject(ctx context.Context, projectID int) ([]ports.Transaction, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.ProcessTransaction
	if err := db.Where("project_id = ?", projectID).
		Order("transaction_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query transactions by project")
	}
	return mapSlice(rows, mapTransaction), nil
}

func (r *ProductionRepository) ListTransactionsByCatch(ctx context.Context, catchID int) ([]ports.Transaction, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.ProcessTransaction
	if err := db.Where("quantity_sheet_id = ?", catchID).
		Order("transaction_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query transactions by catch")
	}
	return mapSlice(rows, mapTransaction), nil
}

func (r *ProductionRepository) ListTransactionsByIDs(ctx context.Context, ids []int64) ([]ports.Transaction, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.ProcessTransaction
	if err := db.Where("transaction_id IN ?", ids).
		Order("transaction_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query transactions by ids")
	}
	return mapSlice(rows, mapTransaction), nil
}

// ListEvents orders by event id so downstream tie-breaks are
// deterministic across runs.
func (r *ProductionRepository) ListEvents(ctx context.Context, filter ports.EventFilter) ([]ports.EventLogEntry, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.EventLog{})
	if filter.Event != "" {
		query = query.Where("event = ?", filter.Event)
	}
	if filter.NewValue != "" {
		query = query.Where("new_value = ?", filter.NewValue)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ValueContains != "" {
		contains := "%" + filter.ValueContains + "%"
		query = query.Where("old_value LIKE ? OR new_value LIKE ?", contains, contains)
	}
	if filter.From != nil {
		query = query.Where("logged_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("logged_at < ?", *filter.To)
	}
	if len(filter.TransactionIDs) > 0 {
		query = query.Where("transaction_id IN ?", filter.TransactionIDs)
	}

	var rows []model.EventLog
	if err := query.Order("event_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query event logs")
	}
	return mapSlice(rows, mapEvent), nil
}

func (r *ProductionRepository) ListDispatches(ctx context.Context) ([]ports.Dispatch, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Dispatch
	if err := db.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query dispatches")
	}
	return mapSlice(rows, mapDispatch), nil
}

func (r *ProductionRepository) ListDispatchesForLot(ctx context.Context, projectID int, lotNo string) ([]ports.Dispatch, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Dispatch
	if err := db.Where("project_id = ? AND lot_no = ?", projectID, lotNo).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query dispatches for lot")
	}
	return mapSlice(rows, mapDispatch), nil
}

func (r *ProductionRepository) ListDispatchesByLots(ctx context.Context, lotNos []string) ([]ports.Dispatch, error) {
	if len(lotNos) == 0 {
		return nil, nil
	}
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Dispatch
	if err := db.Where("lot_no IN ?", lotNos).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query dispatches by lots")
	}
	return mapSlice(rows, mapDispatch), nil
}

func (r *ProductionRepository) ListProcesses(ctx context.Context) ([]ports.Process, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Process
	if err := db.Order("process_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query processes")
	}
	return mapSlice(rows, mapProcess), nil
}

func (r *ProductionRepository) ListProjectProcesses(ctx context.Context, projectID int) ([]ports.ProjectProcess, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.ProjectProcess
	if err := db.Where("project_id = ?", projectID).
		Order("sequence asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query project processes")
	}
	return mapSlice(rows, mapProjectProcess), nil
}

func (r *ProductionRepository) ListZones(ctx context.Context) ([]ports.Zone, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Zone
	if err := db.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query zones")
	}
	return mapSlice(rows, mapZone), nil
}

func (r *ProductionRepository) ListTeams(ctx context.Context) ([]ports.Team, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Team
	if err := db.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query teams")
	}
	return mapSlice(rows, mapTeam), nil
}

func (r *ProductionRepository) ListUsers(ctx context.Context) ([]ports.User, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.User
	if err := db.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query users")
	}
	return mapSlice(rows, mapUser), nil
}

func (r *ProductionRepository) ListMachines(ctx context.Context) ([]ports.Machine, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Machine
	if err := db.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query machines")
	}
	return mapSlice(rows, mapMachine), nil
}

// likePrefix escapes LIKE metacharacters so the search stays a literal
// prefix match.
func likePrefix(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return escaped + "%"
}

func mapSlice[M any, P any](rows []M, mapRow func(M) P) []P {
	out := make([]P, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapRow(row))
	}
	return out
}

func mapCatch(row model.QuantitySheet) ports.Catch {
	return ports.Catch{
		CatchID:       row.QuantitySheetID,
		ProjectID:     row.ProjectID,
		LotNo:         row.LotNo,
		CatchNo:       row.CatchNo,
		Course:        row.Course,
		Subject:       row.Subject,
		Paper:         row.Paper,
		ExamDate:      row.ExamDate,
		ExamTime:      row.ExamTime,
		InnerEnvelope: row.InnerEnvelope,
		OuterEnvelope: row.OuterEnvelope,
		Quantity:      row.Quantity,
		Pages:         row.Pages,
		Status:        row.Status,
		ProcessIDs:    row.ProcessIDs,
	}
}

func mapTransaction(row model.ProcessTransaction) ports.Transaction {
	return ports.Transaction{
		TransactionID: row.TransactionID,
		CatchID:       row.QuantitySheetID,
		ProjectID:     row.ProjectID,
		LotNo:         row.LotNo,
		ProcessID:     row.ProcessID,
		ZoneID:        row.ZoneID,
		MachineID:     row.MachineID,
		TeamIDs:       row.TeamIDs,
		Status:        row.Status,
	}
}

func mapEvent(row model.EventLog) ports.EventLogEntry {
	return ports.EventLogEntry{
		EventID:       row.EventID,
		TransactionID: row.TransactionID,
		Event:         row.Event,
		Category:      row.Category,
		OldValue:      row.OldValue,
		NewValue:      row.NewValue,
		LoggedAt:      row.LoggedAt,
		TriggeredBy:   row.TriggeredBy,
	}
}

func mapDispatch(row model.Dispatch) ports.Dispatch {
	return ports.Dispatch{
		ProjectID: row.ProjectID,
		LotNo:     row.LotNo,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapProject(row model.Project) ports.Project {
	return ports.Project{
		ProjectID: row.ProjectID,
		Name:      row.Name,
		GroupID:   row.GroupID,
		TypeID:    row.TypeID,
	}
}

func mapGroup(row model.Group) ports.Group {
	return ports.Group{
		GroupID: row.GroupID,
		Name:    row.Name,
		Status:  row.Status,
	}
}

func mapProcess(row model.Process) ports.Process {
	return ports.Process{ProcessID: row.ProcessID, Name: row.Name}
}

func mapProjectProcess(row model.ProjectProcess) ports.ProjectProcess {
	return ports.ProjectProcess{
		ProjectID: row.ProjectID,
		ProcessID: row.ProcessID,
		Sequence:  row.Sequence,
	}
}

func mapZone(row model.Zone) ports.Zone {
	return ports.Zone{ZoneID: row.ZoneID, ZoneNo: row.ZoneNo, Description: row.Description}
}

func mapTeam(row model.Team) ports.Team {
	return ports.Team{TeamID: row.TeamID, Name: row.Name, UserIDs: row.UserIDs}
}

func mapUser(row model.User) ports.User {
	return ports.User{
		UserID:    row.UserID,
		UserName:  row.UserName,
		FirstName: row.FirstName,
		LastName:  row.LastName,
	}
}

func mapMachine(row model.Machine) ports.Machine {
	return ports.Machine{MachineID: row.MachineID, Name: row.Name}
}
