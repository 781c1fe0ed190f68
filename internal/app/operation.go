package app

// Operation tracks one CLI run: which command was invoked and how its
// admissions turned out. It is summarised in the log when the app closes.
type Operation struct {
	ID         string
	Operation  string
	Parameters string
	Status     string // "success", "rejected" or "error"
	Accepted   int
	Rejected   int
}

// NewOperation creates a new in-memory operation.
func NewOperation(id, operation, parameters string) *Operation {
	return &Operation{
		ID:         id,
		Operation:  operation,
		Parameters: parameters,
		Status:     "success",
	}
}

// Record counts a decision. A single rejection marks the whole run rejected;
// an invalid request marks it as an error.
func (op *Operation) Record(d Decision) {
	if d.Accepted() {
		op.Accepted++
		return
	}
	op.Rejected++
	if d.Reason == ReasonInvalidRequest {
		op.Status = "error"
	} else if op.Status == "success" {
		op.Status = "rejected"
	}
}

// Total returns the number of decisions recorded.
func (op *Operation) Total() int {
	return op.Accepted + op.Rejected
}
