package types

import "strings"

// NormalizeFlightNumber trims a flight number and drops its leading zeros so
// "0100", " 100" and "100" compare equal. An all-zero number becomes "0".
func NormalizeFlightNumber(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	trimmed := strings.TrimLeft(number, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
