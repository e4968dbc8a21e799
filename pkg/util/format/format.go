package format

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	_  = iota
	KB = 1 << (10 * iota)
	MB
	GB
	TB
)

var units = []struct {
	suffix string
	size   int64
}{
	{"TB", TB},
	{"GB", GB},
	{"MB", MB},
	{"KB", KB},
}

// FormatBytes renders b in the largest unit it reaches, avoiding .00 for whole numbers.
func FormatBytes(b int64) string {
	for _, u := range units {
		if b < u.size {
			continue
		}
		val := float64(b) / float64(u.size)
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f%s", val, u.suffix)
		}
		return fmt.Sprintf("%.2f%s", val, u.suffix)
	}
	return fmt.Sprintf("%dB", b)
}

// ParseBytes is the inverse of FormatBytes: it accepts a plain number of
// bytes or a number followed by B, KB, MB, GB or TB. An empty string is 0.
func ParseBytes(s string) (uint64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}

	mul := int64(1)
	num := s
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			mul = u.size
			num = strings.TrimSuffix(s, u.suffix)
			break
		}
	}
	if mul == 1 {
		num = strings.TrimSuffix(num, "B")
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || val < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return uint64(val * float64(mul)), nil
}
