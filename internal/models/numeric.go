package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// jsonNumber matches the JSON number grammar (RFC 8259).
var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// NumericText is a number as entered in a form field. It keeps the exact text
// so an editor can show what the user typed, including invalid input such as
// "abc" or a half-typed "1.". Arithmetic must go through calculator.CoerceNumeric.
type NumericText string

// Number formats f as NumericText using the shortest representation.
func Number(f float64) NumericText {
	return NumericText(strconv.FormatFloat(f, 'f', -1, 64))
}

// String returns the raw text.
func (n NumericText) String() string {
	return string(n)
}

// MarshalJSON emits a JSON number when the text is a valid number literal and
// a JSON string otherwise.
func (n NumericText) MarshalJSON() ([]byte, error) {
	if jsonNumber.MatchString(string(n)) {
		return []byte(n), nil
	}
	return json.Marshal(string(n))
}

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (n *NumericText) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("numeric text: empty input")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("numeric text: %w", err)
		}
		*n = NumericText(s)
	case 'n':
		*n = ""
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("numeric text: %w", err)
		}
		*n = NumericText(num.String())
	}
	return nil
}
