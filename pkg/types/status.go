package types

// Status is what happened to a single action during a pipeline run
type Status string

const (
	// StatusDone means the handler ran successfully
	StatusDone Status = "done"

	// StatusSkipped means the destination already existed and was left alone
	StatusSkipped Status = "skipped"

	// StatusSourceMissing means the source template could not be read
	StatusSourceMissing Status = "missing-source"

	// StatusFailed means the handler returned an error
	StatusFailed Status = "failed"

	// StatusNotRun means an earlier failure stopped the pipeline first
	StatusNotRun Status = "not-run"
)

// Outcome records the status of one action
type Outcome struct {
	Action Action
	Status Status
	Err    error
}

// Result summarises a pipeline run in action order
type Result struct {
	Template string
	Outcomes []Outcome
}

// Count returns how many outcomes have the given status
func (r *Result) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any action failed
func (r *Result) Failed() bool {
	return r.Count(StatusFailed) > 0
}
