package helpers

import (
	"strings"
)

// Date is a decomposed stored date. Empty parts were absent or "00".
type Date struct {
	Year  string
	Month string
	Day   string
}

// ParseDate decomposes "YYYYMMDD", "YYYYMM", "YYYY" or their dashed forms.
// Dashed month and day parts may be unpadded ("2006-4-3").
func ParseDate(s string) Date {
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		for i := 1; i < len(parts); i++ {
			parts[i] = padPart(onlyDigits(parts[i]))
		}
		s = strings.Join(parts, "")
	}
	digits := onlyDigits(s)

	var d Date
	d.Year = segment(digits, 0, 4)
	if d.Year == "0000" {
		d.Year = ""
	}
	d.Month = segment(digits, 4, 6)
	d.Day = segment(digits, 6, 8)
	return d
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func padPart(p string) string {
	if len(p) == 1 {
		return "0" + p
	}
	return p
}

func segment(s string, from, to int) string {
	if len(s) < to {
		return ""
	}
	part := s[from:to]
	if part == "00" {
		return ""
	}
	return part
}

// IsZero reports whether no part is known.
func (d Date) IsZero() bool {
	return d == Date{}
}

// ISO returns YYYY-MM-DD, filling unknown month and day with "01".
func (d Date) ISO() string {
	if d.Year == "" {
		return ""
	}
	return d.Year + "-" + or(d.Month, "01") + "-" + or(d.Day, "01")
}

// YearMonth returns YYYY-MM, or YYYY when the month is unknown.
func (d Date) YearMonth() string {
	if d.Month == "" {
		return d.Year
	}
	return d.Year + "-" + d.Month
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
