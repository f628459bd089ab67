// Package validation implements the pure rule engine used to gate wizard
// step advancement. Rules are deterministic over (value, context) and hold
// no state of their own.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Severity classifies how a failed rule is treated. Only "error" blocks
// submission; "warning" and "info" are advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Context carries cross-field values a rule may consult.
type Context map[string]any

// FieldError is a single failed rule for a single field.
type FieldError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Rule pairs a validator with its failure message and severity.
type Rule struct {
	Validate func(value any, ctx Context) *FieldError
	Message  string
	Severity Severity
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s().-]{7,20}$`)
)

// isEmpty mirrors the "not applicable" convention: every rule except
// Required passes on nil or empty string so a field can be optional and
// still type-checked.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

// parseNumber accepts the numeric types a draft field may carry plus
// numeric strings. The second return is false for malformed input.
func parseNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func fail(msg string, severity Severity) *FieldError {
	return &FieldError{Message: msg, Severity: severity}
}

// Required fails on nil and empty strings.
func Required(message string) Rule {
	return Rule{
		Message:  message,
		Severity: SeverityError,
		Validate: func(value any, _ Context) *FieldError {
			if isEmpty(value) {
				return fail(message, SeverityError)
			}
			if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
				return fail(message, SeverityError)
			}
			return nil
		},
	}
}

// Min fails when the value parses below min. Malformed numerics are
// reported as range violations to keep the error surface small.
func Min(min float64, message string) Rule {
	return Rule{
		Message:  message,
		Severity: SeverityError,
		Validate: func(value any, _ Context) *FieldError {
			if isEmpty(value) {
				return nil
			}
			n, ok := parseNumber(value)
			if !ok || n < min {
				return fail(message, SeverityError)
			}
			return nil
		},
	}
}

// Max fails when the value parses above max.
func Max(max float64, message string) Rule {
	return Rule{
		Message:  message,
		Severity: SeverityError,
		Validate: func(value any, _ Context) *FieldError {
			if isEmpty(value) {
				return nil
			}
			n, ok := parseNumber(value)
			if !ok || n > max {
				return fail(message, SeverityError)
			}
			return nil
		},
	}
}

// Range fails outside [min, max].
func Range(min, max float64, message string) Rule {
	return Rule{
		Message:  message,
		Severity: SeverityError,
		Validate: func(value any, _ Context) *FieldError {
			if isEmpty(value) {
				return nil
			}
			n, ok := parseNumber(value)
			if !ok || n < min || n > max {
				return fail(message, SeverityError)
			}
			return nil
		},
	}
}

// Email checks basic address shape.
func Email(message string) Rule {
	return stringShape(emailPattern, message)
}

// Phone accepts international formats with separators.
func Phone(message string) Rule {
	return stringShape(phonePattern, message)
}

func stringShape(pattern *regexp.Regexp, message string) Rule {
	return Rule{
		Message:  message,
		Severity: SeverityError,
		Validate: func(value any, _ Context) *FieldError {
			if isEmpty(value) {
				return nil
			}
			s, ok := value.(string)
			if !ok || !pattern.MatchString(strings.TrimSpace(s)) {
				return fail(message, SeverityError)
			}
			return nil
		},
	}
}

// Currency accepts amounts with an optional symbol and thousands
// separators, e.g. "£12,500.50".
func Currency(message string) Rule {
	return Rule{
		Message:  message,
		Severity: SeverityError,
		Validate: func(value any, _ Context) *FieldError {
			if isEmpty(value) {
				return nil
			}
			if _, ok := parseCurrency(value); !ok {
				return fail(message, SeverityError)
			}
			return nil
		},
	}
}

// Percentage accepts 0-100 with an optional trailing percent sign.
func Percentage(message string) Rule {
	return Rule{
		Message:  message,
		Severity: SeverityError,
		Validate: func(value any, _ Context) *FieldError {
			if isEmpty(value) {
				return nil
			}
			raw := value
			if s, ok := value.(string); ok {
				raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
			}
			n, ok := parseNumber(raw)
			if !ok || n < 0 || n > 100 {
				return fail(message, SeverityError)
			}
			return nil
		},
	}
}

// DateParseable checks "YYYY-MM-DD" calendar dates.
func DateParseable(message string) Rule {
	return Rule{
		Message:  message,
		Severity: SeverityError,
		Validate: func(value any, _ Context) *FieldError {
			if isEmpty(value) {
				return nil
			}
			if _, ok := parseDate(value); !ok {
				return fail(message, SeverityError)
			}
			return nil
		},
	}
}

// FutureDate fails on dates before today.
func FutureDate(message string) Rule {
	return Rule{
		Message:  message,
		Severity: SeverityError,
		Validate: func(value any, _ Context) *FieldError {
			if isEmpty(value) {
				return nil
			}
			d, ok := parseDate(value)
			if !ok {
				return fail(message, SeverityError)
			}
			today := time.Now().Truncate(24 * time.Hour)
			if d.Before(today) {
				return fail(message, SeverityError)
			}
			return nil
		},
	}
}

// PastDate fails on dates after today.
func PastDate(message string) Rule {
	return Rule{
		Message:  message,
		Severity: SeverityError,
		Validate: func(value any, _ Context) *FieldError {
			if isEmpty(value) {
				return nil
			}
			d, ok := parseDate(value)
			if !ok {
				return fail(message, SeverityError)
			}
			if d.After(time.Now()) {
				return fail(message, SeverityError)
			}
			return nil
		},
	}
}

// CardChecksum runs the Luhn check over the digits of the value.
func CardChecksum(message string) Rule {
	return Rule{
		Message:  message,
		Severity: SeverityError,
		Validate: func(value any, _ Context) *FieldError {
			if isEmpty(value) {
				return nil
			}
			s, ok := value.(string)
			if !ok || !luhnValid(s) {
				return fail(message, SeverityError)
			}
			return nil
		},
	}
}

// Custom wraps an arbitrary predicate into a rule. The predicate is only
// consulted for non-empty values.
func Custom(predicate func(value any, ctx Context) bool, message string, severity Severity) Rule {
	if severity == "" {
		severity = SeverityError
	}
	return Rule{
		Message:  message,
		Severity: severity,
		Validate: func(value any, ctx Context) *FieldError {
			if isEmpty(value) {
				return nil
			}
			if !predicate(value, ctx) {
				return fail(message, severity)
			}
			return nil
		},
	}
}

func parseCurrency(value any) (float64, bool) {
	s, ok := value.(string)
	if !ok {
		return parseNumber(value)
	}
	s = strings.TrimSpace(s)
	for _, symbol := range []string{"£", "$", "€"} {
		s = strings.TrimPrefix(s, symbol)
	}
	s = strings.ReplaceAll(s, ",", "")
	return parseNumber(strings.TrimSpace(s))
}

func parseDate(value any) (time.Time, bool) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func luhnValid(s string) bool {
	var digits []int
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == ' ' || r == '-':
			// separators are allowed
		default:
			return false
		}
	}
	if len(digits) < 12 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
