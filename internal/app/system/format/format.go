// Package format turns raw metric values into abbreviated display strings.
//
// Tier boundaries are inclusive: exactly 1,000 renders in the K tier and
// exactly 1,000,000 renders in the M tier.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	thousand = 1_000
	million  = 1_000_000
)

// Number abbreviates n: "999", "1.5K", "2.0M".
// Values below 1,000 are returned unchanged as a plain decimal string.
func Number(n float64) string {
	switch {
	case n >= million:
		return fmt.Sprintf("%.1fM", n/million)
	case n >= thousand:
		return fmt.Sprintf("%.1fK", n/thousand)
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// NumberOf is Number for an optional value; nil renders as "0".
func NumberOf(n *float64) string {
	if n == nil {
		return "0"
	}
	return Number(*n)
}

// Volume abbreviates a currency amount: "$500", "$1.5K", "$2.0M".
// Values below 1,000 are floored to a whole number.
func Volume(n float64) string {
	switch {
	case n >= million:
		return fmt.Sprintf("$%.1fM", n/million)
	case n >= thousand:
		return fmt.Sprintf("$%.1fK", n/thousand)
	default:
		return "$" + strconv.FormatFloat(math.Floor(n), 'f', 0, 64)
	}
}

// VolumeOf is Volume for an optional value; nil renders as "$0".
func VolumeOf(n *float64) string {
	if n == nil {
		return "$0"
	}
	return Volume(*n)
}

// Count renders an optional count without abbreviation (e.g. the number of
// distinct blockchains). nil renders as "0".
func Count(n *float64) string {
	if n == nil {
		return "0"
	}
	return strconv.FormatFloat(math.Trunc(*n), 'f', 0, 64)
}

// Percent renders a percentage with at most two decimals: "12.5%".
func Percent(p float64) string {
	return strconv.FormatFloat(math.Round(p*100)/100, 'f', -1, 64) + "%"
}

// ShortDate trims a "2006-01-02" day to its "01-02" month-day part for axis
// ticks. Anything that is not a full day string is returned unchanged.
func ShortDate(day string) string {
	if len(day) == len("2006-01-02") && strings.Count(day, "-") == 2 {
		return day[5:]
	}
	return day
}
