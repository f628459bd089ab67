package models

// ClientCreateRequest is the payload for POST /clients on the backend API.
type ClientCreateRequest struct {
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	CaseType         string  `json:"caseType"`
	EstimatedLoss    float64 `json:"estimatedLoss"`
	UrgencyLevel     string  `json:"urgencyLevel"`
	Notes            string  `json:"notes,omitempty"`
	ConsentToContact bool    `json:"consentToContact"`
}

// ClientCreateResponse echoes the created client; only the identifier is
// load-bearing for the flow.
type ClientCreateResponse struct {
	ID        string `json:"identifier"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// BookingCreateRequest is the payload for POST /bookings on the backend API.
type BookingCreateRequest struct {
	ClientID       string  `json:"clientId"`
	ServiceID      string  `json:"serviceId"`
	ServiceName    string  `json:"serviceName"`
	Date           string  `json:"date"`
	TimeSlot       string  `json:"timeSlot"`
	Notes          string  `json:"notes,omitempty"`
	UrgencyLevel   string  `json:"urgencyLevel"`
	EstimatedValue float64 `json:"estimatedValue"`
}

// BookingCreateResponse carries the created booking identifier plus the
// advisory email-dispatch flags.
type BookingCreateResponse struct {
	ID                       string `json:"identifier"`
	Reference                string `json:"reference,omitempty"`
	ConfirmationEmailSent    bool   `json:"confirmationEmailSent,omitempty"`
	InternalNotificationSent bool   `json:"internalNotificationSent,omitempty"`
}

// SubmissionResult is produced once per submission attempt.
type SubmissionResult struct {
	Success                  bool   `json:"success"`
	BookingReference         string `json:"bookingReference,omitempty"`
	ClientID                 string `json:"clientId,omitempty"`
	BookingID                string `json:"bookingId,omitempty"`
	ConfirmationEmailSent    bool   `json:"confirmationEmailSent"`
	InternalNotificationSent bool   `json:"internalNotificationSent"`
	ErrorKind                string `json:"errorKind,omitempty"`
	ErrorMessage             string `json:"errorMessage,omitempty"`
}
