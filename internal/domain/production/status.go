package production

// Status is the derived lifecycle state of a catch.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusRunning   Status = "Running"
	StatusCompleted Status = "Completed"
)

// CompletedTransactionStatus is the transaction status code meaning the
// process execution finished.
const CompletedTransactionStatus = 2

// ProcessExecution is the slice of a transaction that status derivation
// looks at.
type ProcessExecution struct {
	TransactionID int64
	ProcessID     int
	Status        int
}

// DeriveStatus computes the lifecycle status of a catch from its
// transaction set. Only the first transaction on the terminal process is
// consulted for completion; a later terminal retry does not override it.
func DeriveStatus(executions []ProcessExecution, terminalProcessID int) Status {
	if len(executions) == 0 {
		return StatusPending
	}

	for _, e := range executions {
		if e.ProcessID != terminalProcessID {
			continue
		}
		if e.Status == CompletedTransactionStatus {
			return StatusCompleted
		}
		break
	}

	for _, e := range executions {
		if e.ProcessID != terminalProcessID {
			return StatusRunning
		}
	}
	return StatusPending
}

// CurrentProcessID returns the process of the transaction with the largest
// transaction id. This is an id-order tie-break, not a timestamp one: ids
// stand in for recency even though the event log would be a stronger
// ordering.
func CurrentProcessID(executions []ProcessExecution) (int, bool) {
	if len(executions) == 0 {
		return 0, false
	}

	latest := executions[0]
	for _, e := range executions[1:] {
		if e.TransactionID > latest.TransactionID {
			latest = e
		}
	}
	return latest.ProcessID, true
}

// SeenProcess reports whether any execution ran on the given process.
func SeenProcess(executions []ProcessExecution, processID int) bool {
	for _, e := range executions {
		if e.ProcessID == processID {
			return true
		}
	}
	return false
}
