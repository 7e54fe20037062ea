package config

import (
	"fmt"
	"strconv"
	"strings"
)

// sizeUnits maps a size suffix to its multiplier. Units are binary:
// 1KB is 1024 bytes.
var sizeUnits = map[string]int64{
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// ParseSize converts a human size string such as "5MB" or "512 KB" to
// a byte count. A bare number is taken as bytes. Suffixes are
// case-insensitive and the result must be positive.
func ParseSize(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("invalid size: %q", s)
	}

	upper := strings.ToUpper(trimmed)
	numPart := upper
	multiplier := int64(1)
	for _, suffix := range []string{"TB", "GB", "MB", "KB", "B"} {
		if strings.HasSuffix(upper, suffix) {
			numPart = strings.TrimSpace(strings.TrimSuffix(upper, suffix))
			multiplier = sizeUnits[suffix]
			break
		}
	}

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid size: %q (must be positive)", s)
	}
	if n > (1<<63-1)/multiplier {
		return 0, fmt.Errorf("invalid size: %q (overflows)", s)
	}
	return n * multiplier, nil
}
