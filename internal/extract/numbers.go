package extract

import (
	"strconv"
	"strings"
	"unicode"
)

// parseCount pulls the first integer out of a count string, tolerating
// thousands separators and trailing words: "1,234 open roles" -> 1234.
// Returns ok=false when the string carries no digits.
func parseCount(s string) (int, bool) {
	s = strings.ReplaceAll(s, ",", "")
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
