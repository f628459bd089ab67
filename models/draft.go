package models

import "time"

// Wizard steps. The flow advances forward under normal use but may move
// backward through explicit edit actions.
const (
	StepService      = 1
	StepSchedule     = 2
	StepClientInfo   = 3
	StepConfirmation = 4
	StepMax          = StepConfirmation
)

// TimeSlot is one selectable slot on the chosen date.
type TimeSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Available bool   `json:"available"`
}

// ClientInfo holds the step-3 contact and case details.
type ClientInfo struct {
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	CaseType         string  `json:"caseType"`
	EstimatedLoss    float64 `json:"estimatedLoss"`
	UrgencyLevel     string  `json:"urgencyLevel"`
	Notes            string  `json:"notes,omitempty"`
	ConsentToContact bool    `json:"consentToContact"`
	TermsAccepted    bool    `json:"termsAccepted"`
}

// Draft is the single mutable aggregate of a booking in progress. Every
// wizard surface reads and writes the same draft through the store; no
// surface ever holds an authoritative private copy.
type Draft struct {
	SessionID         string                `json:"sessionId"`
	SelectedService   *ServiceCatalogEntry  `json:"selectedService,omitempty"`
	SelectedDate      string                `json:"selectedDate,omitempty"` // "YYYY-MM-DD"
	SelectedTimeSlot  *TimeSlot             `json:"selectedTimeSlot,omitempty"`
	ClientInfo        *ClientInfo           `json:"clientInfo,omitempty"`
	AvailableServices []ServiceCatalogEntry `json:"availableServices,omitempty"`
	CurrentStep       int                   `json:"currentStep"`

	// Generation increments on every reset. A submission outcome carrying a
	// stale generation is discarded rather than applied to a fresh draft.
	Generation int64 `json:"generation"`

	// Submitting marks the draft read-only while the two-phase submission is
	// in flight.
	Submitting bool `json:"submitting"`

	// IdempotencyKey is minted per draft lifetime and sent on both
	// submission requests so the backend can deduplicate retries.
	IdempotencyKey string `json:"idempotencyKey"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MaxStep returns the furthest step the draft may legally sit on:
// 1 + the number of prior steps whose fields are populated.
func (d *Draft) MaxStep() int {
	step := StepService
	if d.SelectedService != nil {
		step = StepSchedule
		if d.SelectedDate != "" && d.SelectedTimeSlot != nil {
			step = StepClientInfo
			if d.ClientInfo != nil {
				step = StepConfirmation
			}
		}
	}
	return step
}

// ReadyForSubmission reports whether every field the orchestrator needs is
// populated.
func (d *Draft) ReadyForSubmission() bool {
	return d.SelectedService != nil &&
		d.SelectedDate != "" &&
		d.SelectedTimeSlot != nil &&
		d.ClientInfo != nil
}
