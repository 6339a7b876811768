package pipeline

import "fmt"

// Stage identifies the step of posting processing an outcome refers to.
type Stage string

const (
	StageOpen     Stage = "open"
	StageExtract  Stage = "extract"
	StageDedup    Stage = "dedup"
	StageClassify Stage = "classify"
	StageDocument Stage = "document"
	StageSubmit   Stage = "submit"
	StageRecord   Stage = "record"
)

// OutcomeKind is the terminal disposition of a single posting.
type OutcomeKind string

const (
	// OutcomeRecorded means the application was submitted and stored.
	OutcomeRecorded OutcomeKind = "recorded"
	// OutcomeSkipped means the posting was already applied to.
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeRejected means the classifier ruled the posting out.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeFailed means a stage errored; later postings still run.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is the terminal result for one posting.
type Outcome struct {
	Link   string
	Kind   OutcomeKind
	Stage  Stage  // populated when Kind is OutcomeFailed
	Reason string // populated when Kind is OutcomeRejected
	Err    error  // populated when Kind is OutcomeFailed
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeRecorded:
		return fmt.Sprintf("recorded %s", o.Link)
	case OutcomeSkipped:
		return fmt.Sprintf("skipped %s (already applied)", o.Link)
	case OutcomeRejected:
		return fmt.Sprintf("rejected %s: %s", o.Link, o.Reason)
	case OutcomeFailed:
		return fmt.Sprintf("failed %s at %s: %v", o.Link, o.Stage, o.Err)
	default:
		return fmt.Sprintf("unknown outcome for %s", o.Link)
	}
}

func recorded(link string) Outcome {
	return Outcome{Link: link, Kind: OutcomeRecorded}
}

func skipped(link string) Outcome {
	return Outcome{Link: link, Kind: OutcomeSkipped}
}

func rejected(link, reason string) Outcome {
	return Outcome{Link: link, Kind: OutcomeRejected, Reason: reason}
}

func failed(link string, stage Stage, err error) Outcome {
	return Outcome{Link: link, Kind: OutcomeFailed, Stage: stage, Err: err}
}

// Summary aggregates the outcomes of one batch run.
type Summary struct {
	Total     int
	Submitted int
	Skipped   int
	Rejected  int
	Failed    int
	Outcomes  []Outcome
}

func (s *Summary) add(o Outcome) {
	s.Total++
	s.Outcomes = append(s.Outcomes, o)
	switch o.Kind {
	case OutcomeRecorded:
		s.Submitted++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeRejected:
		s.Rejected++
	case OutcomeFailed:
		s.Failed++
	}
}
