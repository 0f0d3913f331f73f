// Package calendar converts dates between the Gregorian (AD) and Bikram Sambat
// (BS) calendars using a fixed offset of 56 years, 8 months and 15 days.
//
// The offset is an approximation: real BS months have year-dependent lengths.
// The arithmetic here is internally consistent and round-trips for dates whose
// intermediate values stay inside the unclamped range, but it is not an almanac.
//
// Every function is total. Empty input yields empty output, and a component
// that is not an integer propagates as NaN instead of failing, so the caller
// always gets a date-shaped string back.
package calendar

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Offsets between the two calendars.
const (
	YearOffset  = 56
	MonthOffset = 8
	DayOffset   = 15

	monthsPerYear = 12
	daysPerMonth  = 30

	// MaxBSDay and MaxADDay bound the day component after conversion.
	MaxBSDay = 32
	MaxADDay = 31
)

// Layout is the wire format shared by both calendars.
const Layout = "2006-01-02"

// AdToBs converts an AD date string into its BS counterpart.
func AdToBs(adDate string) string {
	if adDate == "" {
		return ""
	}
	year, month, day := split(adDate)

	bsYear := year + YearOffset
	bsMonth := month + MonthOffset
	if bsMonth > monthsPerYear {
		bsMonth -= monthsPerYear
		bsYear++
	}

	bsDay := day + DayOffset
	if bsDay > daysPerMonth {
		bsDay -= daysPerMonth
		bsMonth++
		if bsMonth > monthsPerYear {
			bsMonth -= monthsPerYear
			bsYear++
		}
	}

	return format(bsYear, bsMonth, clamp(bsDay, MaxBSDay))
}

// BsToAd converts a BS date string into its AD counterpart.
func BsToAd(bsDate string) string {
	if bsDate == "" {
		return ""
	}
	year, month, day := split(bsDate)

	adYear := year - YearOffset
	adMonth := month - MonthOffset
	if adMonth <= 0 {
		adMonth += monthsPerYear
		adYear--
	}

	adDay := day - DayOffset
	if adDay <= 0 {
		adDay += daysPerMonth
		adMonth--
		if adMonth <= 0 {
			adMonth += monthsPerYear
			adYear--
		}
	}

	return format(adYear, adMonth, clamp(adDay, MaxADDay))
}

// CalculateAge returns the number of whole years between an AD birth date and
// now. The result drops by one while the birthday has not yet occurred in
// now's year. Components are compared as numbers, so unpadded dates and the
// out-of-range days BsToAd can produce (such as 02-30) still count. Empty
// input or a non-numeric component yields 0.
func CalculateAge(adDate string, now time.Time) int {
	if strings.TrimSpace(adDate) == "" {
		return 0
	}
	year, month, day := split(adDate)
	if math.IsNaN(year) || math.IsNaN(month) || math.IsNaN(day) {
		return 0
	}

	age := now.Year() - int(year)
	nowMonth, nowDay := int(now.Month()), now.Day()
	if nowMonth < int(month) || (nowMonth == int(month) && nowDay < int(day)) {
		age--
	}
	return age
}

// Age is CalculateAge against the wall clock.
func Age(adDate string) int {
	return CalculateAge(adDate, time.Now())
}

// split reads the first three dash-separated components. Missing components
// are NaN, blank ones are zero.
func split(date string) (year, month, day float64) {
	parts := strings.Split(date, "-")
	component := func(i int) float64 {
		if i >= len(parts) {
			return math.NaN()
		}
		return parseComponent(parts[i])
	}
	return component(0), component(1), component(2)
}

func parseComponent(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return math.NaN()
	}
	return float64(n)
}

// clamp bounds day to [1, upper]. NaN passes through untouched.
func clamp(day float64, upper float64) float64 {
	if day > upper {
		day = upper
	}
	if day < 1 {
		day = 1
	}
	return day
}

func format(year, month, day float64) string {
	return itoa(year) + "-" + pad2(itoa(month)) + "-" + pad2(itoa(day))
}

func itoa(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.Itoa(int(v))
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
