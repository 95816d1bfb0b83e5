package ports

import (
	"context"
	"errors"
	"time"
)

var ErrCatchNotFound = errors.New("catch not found")

// Catch is one unit of production work (a quantity sheet row) tracked
// through the workflow.
type Catch struct {
	CatchID       int
	ProjectID     int
	LotNo         string
	CatchNo       string
	Course        string
	Subject       string
	Paper         string
	ExamDate      string
	ExamTime      string
	InnerEnvelope string
	OuterEnvelope string
	Quantity      int
	Pages         int
	Status        int
	ProcessIDs    []int
}

// Transaction is one recorded execution of a process against a catch.
// LotNo is denormalized from the catch at write time.
type Transaction struct {
	TransactionID int64
	CatchID       int
	ProjectID     int
	LotNo         string
	ProcessID     int
	ZoneID        int
	MachineID     int
	TeamIDs       []int
	Status        int
}

// EventLogEntry is an append-only audit record. TransactionID is nil for
// entries not tied to a transaction.
type EventLogEntry struct {
	EventID       int64
	TransactionID *int64
	Event         string
	Category      string
	OldValue      string
	NewValue      string
	LoggedAt      time.Time
	TriggeredBy   int
}

type Dispatch struct {
	ProjectID int
	LotNo     string
	UpdatedAt *time.Time
}

type Project struct {
	ProjectID int
	Name      string
	GroupID   int
	TypeID    int
}

type Group struct {
	GroupID int
	Name    string
	Status  bool
}

type ProjectProcess struct {
	ProjectID int
	ProcessID int
	Sequence  int
}

type Process struct {
	ProcessID int
	Name      string
}

type Zone struct {
	ZoneID      int
	ZoneNo      string
	Description string
}

type Team struct {
	TeamID  int
	Name    string
	UserIDs []int
}

type User struct {
	UserID    int
	UserName  string
	FirstName string
	LastName  string
}

type Machine struct {
	MachineID int
	Name      string
}

// EventFilter narrows event-log reads. Zero fields are ignored.
// From/To form a half-open [From, To) window on LoggedAt.
type EventFilter struct {
	Event          string
	NewValue       string
	Category       string
	ValueContains  string
	From           *time.Time
	To             *time.Time
	TransactionIDs []int64
}

// SearchFilter drives the paginated prefix search over catches.
type SearchFilter struct {
	Query     string
	GroupID   *int
	ProjectID *int
	Offset    int
	Limit     int
}

// ProductionRepository is the read-only data access gateway. Every report
// fetches its slice through it and computes in memory; no method mutates
// production state.
type ProductionRepository interface {
	ListGroups(ctx context.Context) ([]Group, error)
	ListGroupsByIDs(ctx context.Context, ids []int) ([]Group, error)
	ListProjects(ctx context.Context) ([]Project, error)
	ListProjectsByGroup(ctx context.Context, groupID int) ([]Project, error)
	ListProjectsByIDs(ctx context.Context, ids []int) ([]Project, error)

	ListLotNumbers(ctx context.Context, projectID int) ([]string, error)
	ListCatchesByLot(ctx context.Context, projectID int, lotNo string) ([]Catch, error)
	ListCatchesByCatchNo(ctx context.Context, projectID int, catchNo string) ([]Catch, error)
	FirstCatchByCatchNo(ctx context.Context, catchNo string) (Catch, error)
	ListCatchNumbers(ctx context.Context, projectID int, status int) ([]string, error)
	ListOpenCatches(ctx context.Context) ([]Catch, error)
	ListCatchesByIDs(ctx context.Context, ids []int) ([]Catch, error)
	SearchCatches(ctx context.Context, filter SearchFilter) (int64, []Catch, error)

	ListTransactionsByProject(ctx context.Context, projectID int) ([]Transaction, error)
	ListTransactionsByCatch(ctx context.Context, catchID int) ([]Transaction, error)
	ListTransactionsByIDs(ctx context.Context, ids []int64) ([]Transaction, error)

	ListEvents(ctx context.Context, filter EventFilter) ([]EventLogEntry, error)

	ListDispatches(ctx context.Context) ([]Dispatch, error)
	ListDispatchesForLot(ctx context.Context, projectID int, lotNo string) ([]Dispatch, error)
	ListDispatchesByLots(ctx context.Context, lotNos []string) ([]Dispatch, error)

	ListProcesses(ctx context.Context) ([]Process, error)
	ListProjectProcesses(ctx context.Context, projectID int) ([]ProjectProcess, error)
	ListZones(ctx context.Context) ([]Zone, error)
	ListTeams(ctx context.Context) ([]Team, error)
	ListUsers(ctx context.Context) ([]User, error)
	ListMachines(ctx context.Context) ([]Machine, error)
}
