package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// maxCommandLength bounds a single textual command.
const maxCommandLength = 256

// ParseValue parses a tree value from user input. Surrounding whitespace is
// ignored; anything else that is not a base-10 integer is rejected.
func ParseValue(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, New(ErrCodeInvalidInput, "value cannot be empty")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, New(ErrCodeInvalidInput, "not an integer: %q", s)
	}
	return v, nil
}

// ParseValues parses a comma or whitespace separated list of values.
// An empty string yields an empty list.
func ParseValues(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := ParseValue(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ValidateCommand checks a raw command line before it is tokenised.
//
// Validation rules:
//   - Maximum length of 256 characters
//   - No control characters other than tabs
func ValidateCommand(line string) error {
	if len(line) > maxCommandLength {
		return New(ErrCodeInvalidCommand, "command too long (max %d characters)", maxCommandLength)
	}
	for _, r := range line {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidCommand, "command contains invalid control characters")
		}
	}
	return nil
}
