package extension

import "strings"

// IsEmpty reports whether a configured value switches a feature off:
// "", "false", "0", "null" and "N/A", compared case-insensitively.
func IsEmpty(value string) bool {
	switch strings.ToLower(value) {
	case "", "false", "0", "null", "n/a":
		return true
	default:
		return false
	}
}

// IsDefault reports whether a configured value asks for the default extension.
func IsDefault(value string) bool {
	return strings.EqualFold(value, "true") || strings.EqualFold(value, DefaultName)
}
