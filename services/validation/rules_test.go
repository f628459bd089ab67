package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	rule := Required("required")

	assert.NotNil(t, rule.Validate(nil, nil))
	assert.NotNil(t, rule.Validate("", nil))
	assert.NotNil(t, rule.Validate("   ", nil))
	assert.Nil(t, rule.Validate("value", nil))
	assert.Nil(t, rule.Validate(0, nil))
}

func TestEmptyValuesSkipNonRequiredRules(t *testing.T) {
	rules := []Rule{
		Min(10, "min"),
		Max(20, "max"),
		Range(1, 5, "range"),
		Email("email"),
		Phone("phone"),
		Currency("currency"),
		Percentage("percentage"),
		DateParseable("date"),
		FutureDate("future"),
		PastDate("past"),
		CardChecksum("card"),
		Custom(func(any, Context) bool { return false }, "custom", SeverityError),
	}

	for _, rule := range rules {
		assert.Nil(t, rule.Validate(nil, nil), "rule %q should pass on nil", rule.Message)
		assert.Nil(t, rule.Validate("", nil), "rule %q should pass on empty string", rule.Message)
	}
}

func TestNumericRules(t *testing.T) {
	assert.Nil(t, Min(5, "m").Validate(7, nil))
	assert.NotNil(t, Min(5, "m").Validate(3, nil))
	assert.Nil(t, Max(5, "m").Validate("4.5", nil))
	assert.NotNil(t, Max(5, "m").Validate("5.1", nil))
	assert.Nil(t, Range(1, 10, "r").Validate(10, nil))
	assert.NotNil(t, Range(1, 10, "r").Validate(0, nil))
}

func TestMalformedNumericsReportedAsRangeViolations(t *testing.T) {
	ferr := Range(0, 100, "must be between 0 and 100").Validate("not a number", nil)

	assert.NotNil(t, ferr)
	assert.Equal(t, "must be between 0 and 100", ferr.Message)
	assert.Equal(t, SeverityError, ferr.Severity)
}

func TestEmail(t *testing.T) {
	rule := Email("bad email")

	assert.Nil(t, rule.Validate("jane.doe@example.co.uk", nil))
	assert.NotNil(t, rule.Validate("not-an-email", nil))
	assert.NotNil(t, rule.Validate("two@@example.com", nil))
	assert.NotNil(t, rule.Validate(42, nil))
}

func TestPhone(t *testing.T) {
	rule := Phone("bad phone")

	assert.Nil(t, rule.Validate("+44 7700 900123", nil))
	assert.Nil(t, rule.Validate("(020) 7946-0958", nil))
	assert.NotNil(t, rule.Validate("call me", nil))
	assert.NotNil(t, rule.Validate("12", nil))
}

func TestCurrency(t *testing.T) {
	rule := Currency("bad amount")

	assert.Nil(t, rule.Validate("£12,500.50", nil))
	assert.Nil(t, rule.Validate("$300", nil))
	assert.Nil(t, rule.Validate(250.75, nil))
	assert.NotNil(t, rule.Validate("twelve pounds", nil))
}

func TestPercentage(t *testing.T) {
	rule := Percentage("bad percentage")

	assert.Nil(t, rule.Validate("85%", nil))
	assert.Nil(t, rule.Validate(42.5, nil))
	assert.NotNil(t, rule.Validate("120%", nil))
	assert.NotNil(t, rule.Validate(-1, nil))
}

func TestDateRules(t *testing.T) {
	assert.Nil(t, DateParseable("d").Validate("2026-09-15", nil))
	assert.NotNil(t, DateParseable("d").Validate("15/09/2026", nil))
	assert.NotNil(t, FutureDate("f").Validate("2020-01-01", nil))
	assert.Nil(t, PastDate("p").Validate("2020-01-01", nil))
	assert.NotNil(t, PastDate("p").Validate("2999-01-01", nil))
}

func TestCardChecksum(t *testing.T) {
	rule := CardChecksum("bad card")

	// Standard test PAN, passes Luhn.
	assert.Nil(t, rule.Validate("4539 1488 0343 6467", nil))
	assert.NotNil(t, rule.Validate("4539 1488 0343 6468", nil))
	assert.NotNil(t, rule.Validate("not a card", nil))
	assert.NotNil(t, rule.Validate("1234", nil))
}

func TestCustomSeverity(t *testing.T) {
	rule := Custom(func(any, Context) bool { return false }, "advisory", SeverityWarning)

	ferr := rule.Validate("value", nil)
	assert.NotNil(t, ferr)
	assert.Equal(t, SeverityWarning, ferr.Severity)
}
