package booking

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var referencePattern = regexp.MustCompile(`^RO-\d{6}-[A-Z0-9]{6}$`)

func TestGenerateReferenceShape(t *testing.T) {
	for i := 0; i < 500; i++ {
		ref := GenerateReference()
		assert.Regexp(t, referencePattern, ref)
	}
}
