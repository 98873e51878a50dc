package provider

import (
	"strconv"
	"strings"
)

func parseFloatString(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseIntString(v string) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	// CFTC occasionally reports counts as "12345.0"
	if i := strings.IndexByte(v, '.'); i >= 0 {
		v = v[:i]
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
