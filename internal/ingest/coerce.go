package ingest

import (
	"math"
	"strconv"
	"strings"
)

var numberNoise = strings.NewReplacer(",", "", "%", "", "$", "", " ", "")

// ParseNumber strips thousands separators, percent and currency signs.
// Anything that still fails to parse is 0.
func ParseNumber(s string) float64 {
	s = numberNoise.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseCount is ParseNumber truncated to a non-negative integer.
func ParseCount(s string) int {
	f := ParseNumber(s)
	if f >= math.MaxInt {
		return math.MaxInt
	}
	return max0(int(f))
}

// ParseSeconds accepts plain seconds or clock notation (m:ss, h:mm:ss).
func ParseSeconds(s string) int {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ":") {
		return ParseCount(s)
	}
	total := 0
	for _, part := range strings.Split(s, ":") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}

var truthy = map[string]struct{}{"true": {}, "yes": {}, "1": {}, "significant": {}}

// ParseBool is true only for the tokens true, yes, 1 and significant
// (any case).
func ParseBool(s string) bool {
	_, ok := truthy[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

func maxf(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
