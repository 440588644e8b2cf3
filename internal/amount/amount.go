// Package amount implements the masking contract of a currency text input:
// digits are extracted from whatever the user typed, the numeric value is
// kept as a non-negative integer and the input text is rewritten with
// ko-KR thousands grouping.
package amount

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// Parse strips every character that is not an ASCII digit and parses the
// rest as a base-10 integer. Empty or out-of-range input yields 0.
func Parse(text string) int64 {
	digits := digitsOnly(text)
	if digits == "" {
		return 0
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Reformat parses raw and returns the value with its grouped display text.
// The display is empty whenever nothing parseable was typed.
func Reformat(raw string) (int64, string) {
	digits := digitsOnly(raw)
	if digits == "" {
		return 0, ""
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, ""
	}
	return v, Group(v)
}

// Group renders v with the ko-KR grouping separator.
func Group(v int64) string {
	return printer.Sprintf("%d", v)
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

type unit struct {
	size uint64
	name string
}

var koreanUnits = []unit{
	{size: 1_000_000_000_000, name: "조"},
	{size: 100_000_000, name: "억"},
	{size: 10_000, name: "만"},
	{size: 1, name: ""},
}

// MagnitudeLabel approximates n with the two largest 4-digit Korean units,
// e.g. 150_000_000 → "약 1억 5000만 원". Zero components are dropped and
// 0 yields "". The label is a display aid only.
func MagnitudeLabel(n int64) string {
	if n == 0 {
		return ""
	}

	sign := ""
	abs := uint64(n)
	if n < 0 {
		sign = "-"
		abs = uint64(-(n + 1)) + 1
	}

	start := len(koreanUnits) - 1
	for i, u := range koreanUnits {
		if abs >= u.size {
			start = i
			break
		}
	}

	parts := make([]string, 0, 2)
	lead := abs / koreanUnits[start].size
	parts = append(parts, fmt.Sprintf("%s%d%s", sign, lead, koreanUnits[start].name))

	if next := start + 1; next < len(koreanUnits) {
		rest := (abs % koreanUnits[start].size) / koreanUnits[next].size
		if rest != 0 {
			parts = append(parts, fmt.Sprintf("%d%s", rest, koreanUnits[next].name))
		}
	}

	return "약 " + strings.Join(parts, " ") + " 원"
}
