package booking

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"recoveryoffice/clients"
	"recoveryoffice/models"
	"recoveryoffice/services/draft"
	"recoveryoffice/services/identity"
	"recoveryoffice/services/validation"
)

// DefaultSubmissionService implements SubmissionService.
type DefaultSubmissionService struct {
	Drafts  draft.Store
	Backend clients.BackendAPI
	Checker *identity.Checker
	Logger  *zap.Logger
}

// Submit executes Idle → Submitting(client) → Submitting(booking) →
// Succeeded | Failed. The draft is locked read-only for the whole sequence
// and only reset on success, so a failed attempt leaves the user's input in
// place for correction and resubmission. No step is retried automatically.
func (s *DefaultSubmissionService) Submit(ctx context.Context, sessionID string) (*models.SubmissionResult, error) {
	snapshot, err := s.Drafts.BeginSubmission(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	generation := snapshot.Generation

	result, subErr := s.run(ctx, snapshot)
	if subErr != nil {
		if err := s.Drafts.CompleteSubmission(ctx, sessionID, generation, false); err != nil && !errors.Is(err, draft.ErrNotFound) {
			s.Logger.Error("Failed to unlock draft after submission failure",
				zap.String("sessionId", sessionID), zap.Error(err))
		}
		s.Logger.Warn("Booking submission failed",
			zap.String("sessionId", sessionID),
			zap.String("kind", string(subErr.Kind)),
			zap.String("clientId", subErr.ClientID),
			zap.String("message", subErr.Message))
		return nil, subErr
	}

	if err := s.Drafts.CompleteSubmission(ctx, sessionID, generation, true); err != nil && !errors.Is(err, draft.ErrNotFound) {
		s.Logger.Error("Failed to reset draft after successful submission",
			zap.String("sessionId", sessionID), zap.Error(err))
	}
	s.Logger.Info("Booking submission succeeded",
		zap.String("sessionId", sessionID),
		zap.String("bookingId", result.BookingID),
		zap.String("reference", result.BookingReference))
	return result, nil
}

func (s *DefaultSubmissionService) run(ctx context.Context, d *models.Draft) (*models.SubmissionResult, *SubmissionError) {
	if subErr := s.validate(d); subErr != nil {
		return nil, subErr
	}

	state := StateSubmittingClient
	s.Logger.Debug("Submission state", zap.String("state", string(state)), zap.String("sessionId", d.SessionID))

	clientResp, err := s.Backend.CreateClient(ctx, clientRequestFromDraft(d), d.IdempotencyKey)
	if err != nil {
		return nil, classify(err, FailureClientCreation, "")
	}

	// The gate between the phases: the captured client identifier and the
	// selected service identifier must both be canonical, or the booking
	// request is never issued. This is what keeps fallback-catalog
	// placeholders out of the backend.
	check := s.Checker.ValidateForSubmission(ctx, d.SelectedService.ID, clientResp.ID)
	if !check.CanSubmit {
		return nil, &SubmissionError{
			Kind:     FailureInvalidIdentifier,
			Message:  "a non-canonical identifier was detected; the booking request was not sent",
			ClientID: clientResp.ID,
		}
	}

	state = StateSubmittingBooking
	s.Logger.Debug("Submission state", zap.String("state", string(state)), zap.String("sessionId", d.SessionID))

	bookingResp, err := s.Backend.CreateBooking(ctx, bookingRequestFromDraft(d, clientResp.ID), d.IdempotencyKey)
	if err != nil {
		return nil, classify(err, FailureBookingCreation, clientResp.ID)
	}

	reference := bookingResp.Reference
	if reference == "" {
		reference = GenerateReference()
	}

	return &models.SubmissionResult{
		Success:                  true,
		BookingReference:         reference,
		ClientID:                 clientResp.ID,
		BookingID:                bookingResp.ID,
		ConfirmationEmailSent:    bookingResp.ConfirmationEmailSent,
		InternalNotificationSent: bookingResp.InternalNotificationSent,
	}, nil
}

// validate re-checks the accumulated draft immediately before submission.
func (s *DefaultSubmissionService) validate(d *models.Draft) *SubmissionError {
	if !d.ReadyForSubmission() {
		return &SubmissionError{
			Kind:    FailureValidation,
			Message: "the booking draft is incomplete; finish all steps before submitting",
		}
	}

	errs := validation.ValidateForm(validation.ClientInfoValues(*d.ClientInfo), validation.ClientInfoSchema(), nil)
	if validation.HasErrors(errs) {
		return &SubmissionError{
			Kind:    FailureValidation,
			Message: firstErrorMessage(errs),
		}
	}

	if !d.ClientInfo.TermsAccepted {
		return &SubmissionError{
			Kind:    FailureValidation,
			Message: "the terms of engagement must be accepted before submitting",
		}
	}
	return nil
}

// classify splits backend failures: a server rejection keeps the server's
// wording verbatim under the phase's kind, a transport failure is "network".
func classify(err error, kind FailureKind, clientID string) *SubmissionError {
	if apiErr, ok := clients.IsAPIError(err); ok {
		return &SubmissionError{Kind: kind, Message: apiErr.Message, ClientID: clientID}
	}
	return &SubmissionError{Kind: FailureNetwork, Message: err.Error(), ClientID: clientID}
}

func clientRequestFromDraft(d *models.Draft) models.ClientCreateRequest {
	info := d.ClientInfo
	return models.ClientCreateRequest{
		FirstName:        info.FirstName,
		LastName:         info.LastName,
		Email:            info.Email,
		Phone:            info.Phone,
		CaseType:         info.CaseType,
		EstimatedLoss:    info.EstimatedLoss,
		UrgencyLevel:     info.UrgencyLevel,
		Notes:            info.Notes,
		ConsentToContact: info.ConsentToContact,
	}
}

func bookingRequestFromDraft(d *models.Draft, clientID string) models.BookingCreateRequest {
	return models.BookingCreateRequest{
		ClientID:       clientID,
		ServiceID:      d.SelectedService.ID,
		ServiceName:    d.SelectedService.Name,
		Date:           d.SelectedDate,
		TimeSlot:       d.SelectedTimeSlot.StartTime + "-" + d.SelectedTimeSlot.EndTime,
		Notes:          d.ClientInfo.Notes,
		UrgencyLevel:   d.ClientInfo.UrgencyLevel,
		EstimatedValue: d.ClientInfo.EstimatedLoss,
	}
}

func firstErrorMessage(errs map[string]*validation.FieldError) string {
	for _, ferr := range errs {
		if ferr != nil && ferr.Severity == validation.SeverityError {
			return ferr.Message
		}
	}
	return "validation failed"
}
