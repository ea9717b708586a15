package stringsutil

import "strings"

// SplitTrimmed splits a comma-separated value and drops empty entries after
// trimming whitespace.
func SplitTrimmed(s string) []string {
	if s == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
