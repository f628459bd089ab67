package validation

import "recoveryoffice/models"

// Case types and urgency levels accepted from the intake form.
var (
	knownCaseTypes = map[string]bool{
		"investment-fraud": true,
		"cryptocurrency":   true,
		"romance-scam":     true,
		"pension-fraud":    true,
		"banking-fraud":    true,
		"other":            true,
	}
	knownUrgencyLevels = map[string]bool{
		"low":      true,
		"standard": true,
		"high":     true,
		"critical": true,
	}
)

// ClientInfoSchema is the rule set gating the client-details step.
func ClientInfoSchema() Schema {
	return Schema{
		"firstName": {
			Required("First name is required"),
		},
		"lastName": {
			Required("Last name is required"),
		},
		"email": {
			Required("Email address is required"),
			Email("Please enter a valid email address"),
		},
		"phone": {
			Required("Phone number is required"),
			Phone("Please enter a valid phone number"),
		},
		"caseType": {
			Required("Please select a case type"),
			Custom(func(value any, _ Context) bool {
				s, ok := value.(string)
				return ok && knownCaseTypes[s]
			}, "Unknown case type", SeverityError),
		},
		"estimatedLoss": {
			Currency("Estimated loss must be a valid amount"),
			Min(0, "Estimated loss cannot be negative"),
		},
		"urgencyLevel": {
			Custom(func(value any, _ Context) bool {
				s, ok := value.(string)
				return ok && knownUrgencyLevels[s]
			}, "Unknown urgency level", SeverityWarning),
		},
		"notes": {
			Custom(func(value any, _ Context) bool {
				s, ok := value.(string)
				return ok && len(s) <= 2000
			}, "Notes are limited to 2000 characters", SeverityError),
		},
	}
}

// ClientInfoValues flattens the aggregate into the value map ValidateForm
// consumes. EstimatedLoss zero means "not provided" and maps to nil so the
// optional currency rules skip it.
func ClientInfoValues(info models.ClientInfo) map[string]any {
	values := map[string]any{
		"firstName": info.FirstName,
		"lastName":  info.LastName,
		"email":     info.Email,
		"phone":     info.Phone,
		"caseType":  info.CaseType,
	}
	if info.EstimatedLoss != 0 {
		values["estimatedLoss"] = info.EstimatedLoss
	}
	if info.UrgencyLevel != "" {
		values["urgencyLevel"] = info.UrgencyLevel
	}
	if info.Notes != "" {
		values["notes"] = info.Notes
	}
	return values
}
