package booking

import (
	"math/rand"
	"strings"
	"time"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateReference builds a display-only booking reference used when the
// backend does not supply one: "RO-" + last six digits of the epoch-millis
// timestamp + "-" + six random base36 characters. It is never authoritative.
func GenerateReference() string {
	millis := time.Now().UnixMilli() % 1000000

	var sb strings.Builder
	sb.WriteString("RO-")
	sb.WriteString(padLeft(millis, 6))
	sb.WriteByte('-')
	for i := 0; i < 6; i++ {
		sb.WriteByte(base36Alphabet[rand.Intn(len(base36Alphabet))])
	}
	return sb.String()
}

func padLeft(n int64, width int) string {
	s := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		s[i] = byte('0' + n%10)
		n /= 10
	}
	return string(s)
}
