package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoValues is returned by ValuesFrom when a value holds no items.
var ErrNoValues = errors.New("no values")

type noValuesError struct{ value string }

func (e *noValuesError) Error() string { return fmt.Sprintf("No values in value %q", e.value) }

func (e *noValuesError) Unwrap() error { return ErrNoValues }

// ValuesFrom splits a list input. Without a delimiter, a value containing a
// newline is split on newlines and anything else on commas. Quoted items may
// contain the delimiter; their quotes are stripped. Items are trimmed and
// blank items dropped.
func ValuesFrom(value, delimiter string) ([]string, error) {
	var raw []string
	if delimiter == "" && strings.Contains(value, "\n") {
		raw = strings.Split(value, "\n")
	} else {
		if delimiter == "" {
			delimiter = ","
		}
		raw = itemPattern(delimiter).FindAllString(value, -1)
	}

	values := make([]string, 0, len(raw))
	for _, item := range raw {
		item = unquote(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		values = append(values, item)
	}
	if len(values) == 0 {
		return nil, &noValuesError{value: value}
	}
	return values, nil
}

func itemPattern(delimiter string) *regexp.Regexp {
	d := regexp.QuoteMeta(delimiter)
	return regexp.MustCompile(`"[^"]*"|'[^']*'|[^"'` + d + `]+`)
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
