package validation

// Schema maps a field name to its ordered rule chain.
type Schema map[string][]Rule

// ValidateField evaluates rules in order and returns the first failure.
// Later rules in the chain are not consulted once one fails.
func ValidateField(field string, value any, rules []Rule, ctx Context) *FieldError {
	for _, rule := range rules {
		if rule.Validate == nil {
			continue
		}
		if ferr := rule.Validate(value, ctx); ferr != nil {
			ferr.Field = field
			return ferr
		}
	}
	return nil
}

// ValidateForm evaluates every schema field independently. Values without a
// schema entry pass silently; schema fields missing from values are
// validated against nil (so Required still catches them).
func ValidateForm(values map[string]any, schema Schema, ctx Context) map[string]*FieldError {
	result := make(map[string]*FieldError, len(schema))
	for field, rules := range schema {
		result[field] = ValidateField(field, values[field], rules, ctx)
	}
	return result
}

// HasErrors reports whether at least one entry carries severity "error".
// Warnings and infos never block submission.
func HasErrors(errs map[string]*FieldError) bool {
	for _, ferr := range errs {
		if ferr != nil && ferr.Severity == SeverityError {
			return true
		}
	}
	return false
}
