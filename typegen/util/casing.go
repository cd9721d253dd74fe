package util

import (
	"strings"
)

// SnakeToCamel converts snake_case to PascalCase by capitalizing every
// underscore-separated segment. Empty segments contribute nothing.
// e.g. "unlocked_until" -> "UnlockedUntil"
func SnakeToCamel(s string) string {
	var result strings.Builder
	for _, part := range strings.Split(s, "_") {
		result.WriteString(CapitalizeFirst(part))
	}
	return result.String()
}

// CamelToSnake converts camelCase or PascalCase to snake_case.
// Every ASCII uppercase letter starts a new lowercase segment; leading empty
// segments (input starting with an uppercase letter) are dropped.
// e.g. "unlockedUntil" -> "unlocked_until", "TxId" -> "tx_id"
//
// Unlike a general-purpose converter, acronyms are not kept together:
// "HTTPPort" -> "h_t_t_p_port". Annotation field names never contain them and
// this keeps the function a near-inverse of SnakeToCamel.
func CamelToSnake(s string) string {
	segments := []string{""}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			segments = append(segments, string(c+('a'-'A')))
			continue
		}
		segments[len(segments)-1] += string(c)
	}

	for len(segments) > 0 && segments[0] == "" {
		segments = segments[1:]
	}
	return strings.Join(segments, "_")
}

// CapitalizeFirst uppercases the first byte of s if it is an ASCII letter.
// The empty string is returned unchanged.
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-('a'-'A')) + s[1:]
	}
	return s
}
