package production

import "testing"

const terminalID = 12

func TestDeriveStatusNoTransactions(t *testing.T) {
	if got := DeriveStatus(nil, terminalID); got != StatusPending {
		t.Fatalf("DeriveStatus() = %v, want Pending", got)
	}
}

func TestDeriveStatusCompletedOnFirstTerminal(t *testing.T) {
	executions := []ProcessExecution{
		{TransactionID: 1, ProcessID: 3, Status: 2},
		{TransactionID: 2, ProcessID: terminalID, Status: 2},
	}
	if got := DeriveStatus(executions, terminalID); got != StatusCompleted {
		t.Fatalf("DeriveStatus() = %v, want Completed", got)
	}
}

func TestDeriveStatusOnlyFirstTerminalConsulted(t *testing.T) {
	// The unfinished first terminal execution pins the answer; a later
	// finished retry does not flip it to Completed.
	executions := []ProcessExecution{
		{TransactionID: 1, ProcessID: terminalID, Status: 1},
		{TransactionID: 2, ProcessID: terminalID, Status: 2},
	}
	if got := DeriveStatus(executions, terminalID); got != StatusPending {
		t.Fatalf("DeriveStatus() = %v, want Pending", got)
	}
}

func TestDeriveStatusRunningOnNonTerminalWork(t *testing.T) {
	executions := []ProcessExecution{
		{TransactionID: 1, ProcessID: terminalID, Status: 1},
		{TransactionID: 2, ProcessID: 7, Status: 1},
	}
	if got := DeriveStatus(executions, terminalID); got != StatusRunning {
		t.Fatalf("DeriveStatus() = %v, want Running", got)
	}
}

func TestCurrentProcessIDUsesLargestTransactionID(t *testing.T) {
	executions := []ProcessExecution{
		{TransactionID: 5, ProcessID: 3},
		{TransactionID: 9, ProcessID: 7},
		{TransactionID: 2, ProcessID: 12},
	}
	got, ok := CurrentProcessID(executions)
	if !ok || got != 7 {
		t.Fatalf("CurrentProcessID() = %d, %v, want 7, true", got, ok)
	}
}

func TestCurrentProcessIDEmpty(t *testing.T) {
	if _, ok := CurrentProcessID(nil); ok {
		t.Fatalf("CurrentProcessID(nil) ok = true, want false")
	}
}

func TestSeenProcess(t *testing.T) {
	executions := []ProcessExecution{{TransactionID: 1, ProcessID: 3}}
	if !SeenProcess(executions, 3) {
		t.Fatalf("SeenProcess(3) = false, want true")
	}
	if SeenProcess(executions, terminalID) {
		t.Fatalf("SeenProcess(12) = true, want false")
	}
}
