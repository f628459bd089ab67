package booking

import "fmt"

// FailureKind is the terminal classification of a failed submission.
type FailureKind string

const (
	FailureValidation        FailureKind = "validation"
	FailureInvalidIdentifier FailureKind = "invalid-identifier"
	FailureClientCreation    FailureKind = "client-creation"
	FailureBookingCreation   FailureKind = "booking-creation"
	FailureNetwork           FailureKind = "network"
)

// SubmissionError is the single terminal error of the orchestrator state
// machine. ClientID is set when the failure happened after the client record
// was created, so support staff can reconcile the partial submission.
type SubmissionError struct {
	Kind     FailureKind
	Message  string
	ClientID string
}

func (e *SubmissionError) Error() string {
	if e.ClientID != "" {
		return fmt.Sprintf("%s: %s (created client %s)", e.Kind, e.Message, e.ClientID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Partial reports whether a client record was created before the failure.
func (e *SubmissionError) Partial() bool {
	return e.ClientID != ""
}
