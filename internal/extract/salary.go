package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// salaryPattern matches the lower bound of a currency-prefixed salary range
// as rendered on the posting page, e.g. "IDR 5.000.000 - 8.000.000/Bulan".
var salaryPattern = regexp.MustCompile(`IDR\s*(\d[\d.,]*)\s*-`)

// whitespacePattern collapses runs of whitespace, including newlines inside
// the salary badge.
var whitespacePattern = regexp.MustCompile(`\s+`)

// ParseSalaryFloor extracts the lower bound of a salary range from the raw
// badge text. Thousands separators are stripped. When no range token is
// present the floor is 0, which downstream code treats as
// negotiable/unspecified rather than free.
func ParseSalaryFloor(text string) int64 {
	text = whitespacePattern.ReplaceAllString(text, " ")

	match := salaryPattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}

	digits := strings.NewReplacer(".", "", ",", "").Replace(match[1])
	value, err := strconv.ParseInt(strings.TrimSpace(digits), 10, 64)
	if err != nil {
		return 0
	}
	return value
}
