package phone

import (
	"fmt"
	"strings"
	"unicode"
)

// Number is a Russian phone number stored as its dialable digits.
type Number string

// Parse keeps only the digits of raw; it requires the 11-digit domestic form.
func Parse(raw string) (Number, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, raw)
	if len(digits) != 11 {
		return "", fmt.Errorf("phone %q must have 11 digits", raw)
	}
	return Number(digits), nil
}

// MustParse is Parse for compile-time constants.
func MustParse(raw string) Number {
	n, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return n
}

// Digits returns the dialable form.
func (n Number) Digits() string {
	return string(n)
}

// TelURI returns the tel: link that hands the call to the device dialer.
func (n Number) TelURI() string {
	return "tel:" + string(n)
}

// Display renders 89226125076 as "8 (922) 612-50-76".
func (n Number) Display() string {
	s := string(n)
	if len(s) != 11 {
		return s
	}
	return fmt.Sprintf("%s (%s) %s-%s-%s", s[0:1], s[1:4], s[4:7], s[7:9], s[9:11])
}
