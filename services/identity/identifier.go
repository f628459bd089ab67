// Package identity guards the submission path against non-canonical
// identifiers. The backend persistence layer only accepts 24-character hex
// ObjectIDs; placeholder identifiers from the fallback catalog (e.g.
// "emergency-crypto") must never reach it.
package identity

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// IsCanonicalIdentifier reports whether s is a canonical backend
// identifier: exactly 24 hexadecimal characters.
func IsCanonicalIdentifier(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// CheckResult is the verdict for a single identifier. ExistsRemotely is nil
// when the best-effort remote check could not run.
type CheckResult struct {
	IsValidFormat  bool  `json:"isValidFormat"`
	ExistsRemotely *bool `json:"existsRemotely,omitempty"`
}

// SubmissionCheck is the combined verdict consulted between the two
// submission phases.
type SubmissionCheck struct {
	ServiceID CheckResult `json:"serviceId"`
	ClientID  CheckResult `json:"clientId"`
	CanSubmit bool        `json:"canSubmit"`
}

// RemoteVerifier confirms identifiers against the backend. Optional.
type RemoteVerifier interface {
	ServiceExists(ctx context.Context, id string) (bool, error)
	ClientExists(ctx context.Context, id string) (bool, error)
}

// Checker validates identifiers immediately before submission.
type Checker struct {
	Remote RemoteVerifier
	Logger *zap.Logger
}

// ValidateForSubmission runs the format check on both identifiers and, when
// a remote verifier is wired, a best-effort existence check. CanSubmit
// depends on format only; remote unavailability degrades gracefully.
func (c *Checker) ValidateForSubmission(ctx context.Context, serviceID, clientID string) SubmissionCheck {
	check := SubmissionCheck{
		ServiceID: CheckResult{IsValidFormat: IsCanonicalIdentifier(serviceID)},
		ClientID:  CheckResult{IsValidFormat: IsCanonicalIdentifier(clientID)},
	}
	check.CanSubmit = check.ServiceID.IsValidFormat && check.ClientID.IsValidFormat

	if !check.CanSubmit {
		if c.Logger != nil {
			c.Logger.Warn("Identifier format check failed",
				zap.String("serviceId", serviceID),
				zap.Bool("serviceIdValid", check.ServiceID.IsValidFormat),
				zap.Bool("clientIdValid", check.ClientID.IsValidFormat))
		}
		return check
	}

	if c.Remote != nil {
		if exists, err := c.Remote.ServiceExists(ctx, serviceID); err == nil {
			check.ServiceID.ExistsRemotely = &exists
		}
		if exists, err := c.Remote.ClientExists(ctx, clientID); err == nil {
			check.ClientID.ExistsRemotely = &exists
		}
	}
	return check
}
