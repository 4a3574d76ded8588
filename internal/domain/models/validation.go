package models

// ExistenceOutcome is the result of checking one issue reference against the tracker.
type ExistenceOutcome int

const (
	OutcomeExists ExistenceOutcome = iota
	OutcomeDoesNotExist
	OutcomeUnreachable
)

func (o ExistenceOutcome) String() string {
	switch o {
	case OutcomeExists:
		return "exists"
	case OutcomeDoesNotExist:
		return "does_not_exist"
	case OutcomeUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

type Severity string

const (
	SeverityAdvisory          Severity = "advisory"
	SeverityBlockingCandidate Severity = "blocking-candidate"
)

type (
	// ValidationMessage is a note produced while validating a commit. Cause records
	// which existence outcome produced it, so unreachable trackers never escalate.
	ValidationMessage struct {
		Synopsis string           `json:"synopsis"`
		Details  string           `json:"details"`
		Severity Severity         `json:"severity"`
		Cause    ExistenceOutcome `json:"-"`
	}

	// Classification is the terminal outcome for one extracted reference.
	Classification struct {
		Reference  string
		Outcome    ExistenceOutcome
		Diagnostic *ValidationMessage
	}
)

func (m ValidationMessage) String() string {
	return m.Synopsis + "\n" + m.Details
}

// IsBlockingCandidate reports whether the message may reject the commit.
func (m ValidationMessage) IsBlockingCandidate() bool {
	return m.Severity == SeverityBlockingCandidate && m.Cause != OutcomeUnreachable
}

type VerdictKind string

const (
	VerdictAccepted VerdictKind = "accepted"
	VerdictRejected VerdictKind = "rejected"
)

// Verdict is the decision for one commit. Rejected verdicts always carry at least one message.
type Verdict struct {
	Kind            VerdictKind
	Policy          AssociationPolicy
	Messages        []ValidationMessage
	Classifications []Classification
}

// Accepted builds an accepted verdict. Its messages are annotations only, so
// every severity is lowered to advisory while the cause is kept.
func Accepted(messages []ValidationMessage) Verdict {
	advisory := make([]ValidationMessage, len(messages))
	for i, m := range messages {
		m.Severity = SeverityAdvisory
		advisory[i] = m
	}
	return Verdict{Kind: VerdictAccepted, Messages: advisory}
}

func Rejected(messages []ValidationMessage) Verdict {
	return Verdict{Kind: VerdictRejected, Messages: messages}
}

func (v Verdict) IsRejected() bool {
	return v.Kind == VerdictRejected
}
